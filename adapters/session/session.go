// Package session provides cookie-identified, store-backed sessions for gin.
// The cookie carries only an opaque session id; all data stays server-side.
package session

import (
	"context"
	"fmt"
)

type sessionImpl struct {
	id    string
	ctx   context.Context
	data  map[string]string
	dirty bool
	store IStore
}

// NewSession wraps a session id with lazy access to its stored data.
func NewSession(ctx context.Context, id string, store IStore) ISession {
	if ctx == nil {
		ctx = context.Background()
	}
	return &sessionImpl{id: id, ctx: ctx, store: store}
}

func (s *sessionImpl) Load() error {
	const op = "sessionImpl.Load"
	if s.data != nil {
		return nil
	}
	data, err := s.store.Load(s.ctx, s.id)
	if err != nil {
		return fmt.Errorf("%s: failed to load session: %w", op, err)
	}
	s.data = data
	if s.data == nil {
		s.data = make(map[string]string)
	}
	return nil
}

func (s *sessionImpl) Get(key string) string {
	if s.data == nil {
		return ""
	}
	return s.data[key]
}

func (s *sessionImpl) Set(key, value string) {
	if s.data == nil {
		s.data = make(map[string]string)
	}
	s.data[key] = value
	s.dirty = true
}

func (s *sessionImpl) Delete(key string) {
	if s.data == nil {
		return
	}
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.dirty = true
	}
}

func (s *sessionImpl) Clear() {
	s.data = make(map[string]string)
	s.dirty = true
}

// Save writes the session back to the store. Sessions that were only read
// are not rewritten.
func (s *sessionImpl) Save() error {
	const op = "sessionImpl.Save"
	if !s.dirty {
		return nil
	}
	if err := s.store.Save(s.ctx, s.id, s.data); err != nil {
		return fmt.Errorf("%s: failed to save session: %w", op, err)
	}
	s.dirty = false
	return nil
}
