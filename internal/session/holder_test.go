package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHolder_Lifecycle(t *testing.T) {
	var h Holder
	assert.False(t, h.Active())
	assert.Empty(t, h.ID())

	h.SetKey("pw")
	assert.True(t, h.Active())
	assert.Equal(t, "pw", h.Key())
	first := h.ID()
	assert.NotEmpty(t, first)

	h.SetKey("pw")
	assert.NotEqual(t, first, h.ID(), "each login starts a new session")

	h.Clear()
	assert.False(t, h.Active())
	assert.Empty(t, h.Key())
	assert.Empty(t, h.ID())
}

func TestHolder_SetEmptyKeyLogsOut(t *testing.T) {
	h := NewHolder()
	h.SetKey("pw")
	h.SetKey("")
	assert.False(t, h.Active())
	assert.Empty(t, h.ID())
}

func TestHolder_ConcurrentAccess(t *testing.T) {
	h := NewHolder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.SetKey("k")
		}()
		go func() {
			defer wg.Done()
			_ = h.Key()
			_ = h.ID()
		}()
	}
	wg.Wait()
	assert.Equal(t, "k", h.Key())
}
