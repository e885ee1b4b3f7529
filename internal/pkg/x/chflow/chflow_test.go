package chflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReceive(t *testing.T) {
	t.Run("buffered value", func(t *testing.T) {
		ch := make(chan string, 1)
		ch <- "block_mined"

		v, ok := Receive(t.Context(), ch)

		assert.True(t, ok)
		assert.Equal(t, "block_mined", v)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		v, ok := Receive(ctx, make(chan int))

		assert.False(t, ok)
		assert.Zero(t, v)
	})

	t.Run("closed channel", func(t *testing.T) {
		ch := make(chan int)
		close(ch)

		_, ok := Receive(t.Context(), ch)

		assert.False(t, ok)
	})
}

func TestSend(t *testing.T) {
	t.Run("delivers", func(t *testing.T) {
		ch := make(chan int, 1)

		assert.True(t, Send(t.Context(), ch, 7))
		assert.Equal(t, 7, <-ch)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		ch := make(chan int)
		assert.False(t, Send(ctx, ch, 7))

		select {
		case <-ch:
			t.Fatal("value must not be delivered")
		default:
		}
	})

	t.Run("unblocks on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan bool)

		go func() { done <- Send(ctx, make(chan int), 1) }()
		cancel()

		select {
		case ok := <-done:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("send did not return after cancellation")
		}
	})
}

func TestSendAll(t *testing.T) {
	t.Run("delivers every value in order", func(t *testing.T) {
		ch := make(chan int, 3)

		n := SendAll(t.Context(), ch, 1, 2, 3)

		assert.Equal(t, 3, n)
		assert.Equal(t, 1, <-ch)
		assert.Equal(t, 2, <-ch)
		assert.Equal(t, 3, <-ch)
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		ch := make(chan int, 1)
		n := SendAll(ctx, ch, 1, 2)

		assert.LessOrEqual(t, n, 1)
	})

	t.Run("no values", func(t *testing.T) {
		assert.Zero(t, SendAll[int](t.Context(), nil))
	})
}

func TestPipeline(t *testing.T) {
	in := make(chan int, 3)
	out := make(chan int, 3)
	in <- 1
	in <- 2
	in <- 3
	close(in)

	go func() {
		defer close(out)
		for {
			v, ok := Receive(t.Context(), in)
			if !ok {
				return
			}
			if !Send(t.Context(), out, v*10) {
				return
			}
		}
	}()

	var got []int
	for v := range out {
		got = append(got, v)
	}

	assert.Equal(t, []int{10, 20, 30}, got)
}
