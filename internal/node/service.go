// Package node connects the ledger core to the inter-layer message bus. It
// consumes submissions and mining triggers addressed to the blockchain layer
// and publishes the outcomes to the presentation and analytics layers.
package node

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/resilience/retry"

	"go.uber.org/ratelimit"
)

var (
	// ErrServiceAlreadyStarted is returned if Start is called more than once.
	ErrServiceAlreadyStarted = errors.New("service already started")

	// ErrNoValidator is returned for a mine_block event that names no
	// validator when no default validator is configured.
	ErrNoValidator = errors.New("mine request names no validator")
)

const (
	outboxBufferSize = 32

	defaultClaimTTL = 24 * time.Hour
)

// notifiedLayers receive every outbound event.
var notifiedLayers = []Layer{LayerPresentation, LayerAnalytics}

// Service is the node lifecycle.
type Service interface {
	// Start subscribes to the blockchain layer and launches the event loops.
	// Returns ErrServiceAlreadyStarted if called twice without Close.
	Start(ctx context.Context) error

	// Close stops the event loops and waits for them to return. It is safe
	// to call Close on a service that was never started.
	Close()
}

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc

	chain      Chain
	subscriber Subscriber
	publisher  Publisher

	guard    IdempotencyGuard
	claimTTL time.Duration

	limiter          ratelimit.Limiter
	retry            retry.Retry
	defaultValidator string
	purgeAfter       int
}

// Compile-time check to ensure *service implements the Service interface.
var _ Service = (*service)(nil)

// Start implements Service.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)

	eventsCh, err := s.subscriber.Subscribe(ctx, LayerBlockchain)
	if err != nil {
		cancel()
		return err
	}

	outboxCh := make(chan Event, outboxBufferSize)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer close(outboxCh)
		s.consume(ctx, eventsCh, outboxCh)
	}()
	go func() {
		defer wg.Done()
		s.publishOutbox(ctx, outboxCh)
	}()

	s.closeFunc = func() {
		cancel()
		wg.Wait()
	}
	s.isStarted = true
	return nil
}

// Close implements Service.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}

	s.closeFunc = nil
	s.isStarted = false
}

type config struct {
	guard            IdempotencyGuard
	claimTTL         time.Duration
	limiter          ratelimit.Limiter
	retry            retry.Retry
	defaultValidator string
	purgeAfter       int
}

// Option customizes the node.
type Option func(*config)

// WithRateLimit caps the number of inbound events handled per second. A
// non-positive rate disables the limit.
func WithRateLimit(perSecond int) Option {
	return func(c *config) {
		if perSecond <= 0 {
			c.limiter = ratelimit.NewUnlimited()
			return
		}
		c.limiter = ratelimit.New(perSecond)
	}
}

// WithIdempotencyGuard drops inbound events already claimed by another
// node. Claims expire after ttl.
func WithIdempotencyGuard(g IdempotencyGuard, ttl time.Duration) Option {
	return func(c *config) {
		c.guard = g
		c.claimTTL = ttl
	}
}

// WithRetry sets the policy used when publishing outbound events.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithDefaultValidator sets the proposer used by mine_block events that do
// not name one.
func WithDefaultValidator(id string) Option {
	return func(c *config) {
		c.defaultValidator = id
	}
}

// WithAutoPurge drops pending transactions rejected at least n times after
// every successful mining cycle. Zero disables it.
func WithAutoPurge(n int) Option {
	return func(c *config) {
		c.purgeAfter = n
	}
}

// New creates a node driving c with events read from sub and outcomes
// written to pub.
func New(c Chain, sub Subscriber, pub Publisher, opts ...Option) *service {
	cfg := config{
		guard:    nopGuard{},
		claimTTL: defaultClaimTTL,
		limiter:  ratelimit.NewUnlimited(),
		retry:    retry.New(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		chain:            c,
		subscriber:       sub,
		publisher:        pub,
		guard:            cfg.guard,
		claimTTL:         cfg.claimTTL,
		limiter:          cfg.limiter,
		retry:            cfg.retry,
		defaultValidator: cfg.defaultValidator,
		purgeAfter:       cfg.purgeAfter,
	}
}
