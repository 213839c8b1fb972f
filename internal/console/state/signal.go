// Package state holds the console's reactive client state: the auth
// manager, the logout broadcast, secure navigation, and the generic
// search/detail/mutation controller the resource screens instantiate.
package state

import (
	"context"
	"sync"
)

// LogoutSignal is the process-wide logout broadcast. The HTTP pipeline
// publishes into it on any 401 and the auth manager subscribes; neither
// side imports the other, which keeps the dependency edge one-way.
type LogoutSignal struct {
	mu   sync.Mutex
	subs map[int]func(context.Context)
	next int
}

func NewLogoutSignal() *LogoutSignal {
	return &LogoutSignal{subs: make(map[int]func(context.Context))}
}

// Subscribe registers fn and returns its unsubscribe function.
func (s *LogoutSignal) Subscribe(fn func(context.Context)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// NotifyLogout delivers the signal to every subscriber synchronously.
// It satisfies the pipeline's LogoutNotifier interface.
func (s *LogoutSignal) NotifyLogout(ctx context.Context) {
	s.mu.Lock()
	fns := make([]func(context.Context), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ctx)
	}
}
