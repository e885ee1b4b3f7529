package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMap_Get(t *testing.T) {
	t.Run("returns existing value", func(t *testing.T) {
		dm := NewDefaultMap[string](func() int { return 0 })
		dm.Set("existing", 100)

		assert.Equal(t, 100, dm.Get("existing"))
	})

	t.Run("inserts default for missing key", func(t *testing.T) {
		dm := NewDefaultMap[string](func() []string { return []string{} })

		value := dm.Get("patient_001")

		assert.Empty(t, value)
		assert.Equal(t, 1, dm.Len())
	})

	t.Run("appending through get and set", func(t *testing.T) {
		dm := NewDefaultMap[string](func() []string { return nil })
		dm.Set("p", append(dm.Get("p"), "c1"))
		dm.Set("p", append(dm.Get("p"), "c2"))

		assert.Equal(t, []string{"c1", "c2"}, dm.Get("p"))
	})
}

func TestDefaultMap_Lookup(t *testing.T) {
	dm := NewDefaultMap[string](func() int { return 7 })

	_, ok := dm.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, dm.Len(), "lookup must not insert")

	dm.Set("present", 3)
	value, ok := dm.Lookup("present")
	assert.True(t, ok)
	assert.Equal(t, 3, value)
}

func TestDefaultMap_ToMap(t *testing.T) {
	dm := NewDefaultMap[string](func() int { return 0 })
	dm.Set("a", 1)

	assert.Equal(t, map[string]int{"a": 1}, dm.ToMap())
}
