package anim

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/logging"
	"github.com/san-kum/eduverse/internal/scene"
)

// Session is one mount of a scene on a host.
type Session struct {
	Driver *Driver

	mu     sync.Mutex
	scene  *scene.Scene
	cancel func()
	closed bool
	once   sync.Once
}

// Mount attaches a fresh driver to sc and subscribes it to host.
func Mount(host Host, sc *scene.Scene, bindings []Binding, log logging.Logger) (*Session, error) {
	if host == nil || sc == nil {
		return nil, errors.New("anim: mount needs a host and a scene")
	}
	d := NewDriver(log)
	if err := d.Attach(sc, bindings); err != nil {
		return nil, err
	}
	s := &Session{Driver: d, scene: sc}
	s.cancel = host.Subscribe(s.tick)
	return s, nil
}

func (s *Session) tick(t ClockSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.Driver.Tick(t)
}

func (s *Session) Scene() *scene.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// Regenerate swaps in the contents of next. Bindings stay valid because the
// scene keeps its group values.
func (s *Session) Regenerate(next *scene.Scene) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("anim: regenerate after unmount")
	}
	return s.scene.Refresh(next)
}

// Unmount cancels the subscription, releases driver handles and tears the
// scene down. Only the first call has any effect; once it returns no
// further tick reaches the driver.
func (s *Session) Unmount() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		s.cancel()
		s.Driver.Release()
		s.scene.Teardown()
	})
}

func (s *Session) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}
