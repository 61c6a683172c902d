// Package session holds the admin session key: the password used to decrypt
// and encrypt the persisted system config. It lives only in memory.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Holder is a single mutable cell shared by the resolver, the store and the
// admin services. The zero value is a logged-out holder.
type Holder struct {
	mu  sync.RWMutex
	key string
	id  string
}

func NewHolder() *Holder {
	return &Holder{}
}

// SetKey stores key and starts a new session. An empty key logs out.
func (h *Holder) SetKey(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.key = key
	if key == "" {
		h.id = ""
		return
	}
	h.id = uuid.NewString()
}

func (h *Holder) Key() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.key
}

func (h *Holder) Active() bool {
	return h.Key() != ""
}

func (h *Holder) Clear() {
	h.SetKey("")
}

// ID identifies the current session; it changes on every SetKey and is
// empty when logged out.
func (h *Holder) ID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.id
}
