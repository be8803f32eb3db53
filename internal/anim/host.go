package anim

import (
	"context"
	"sync"
	"time"
)

// Host is a clock source. Cancel stops further deliveries to fn.
type Host interface {
	Subscribe(fn func(ClockSample)) (cancel func())
}

// FrameHost delivers samples only when Emit is called. The terminal
// preview feeds it from its frame tick.
type FrameHost struct {
	mu   sync.Mutex
	next int
	subs map[int]func(ClockSample)
}

func NewFrameHost() *FrameHost {
	return &FrameHost{subs: make(map[int]func(ClockSample))}
}

func (h *FrameHost) Subscribe(fn func(ClockSample)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Emit delivers t to every current subscriber in subscription order.
func (h *FrameHost) Emit(t ClockSample) {
	h.mu.Lock()
	fns := make([]func(ClockSample), 0, len(h.subs))
	for id := 0; id < h.next; id++ {
		if fn, ok := h.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(t)
	}
}

func (h *FrameHost) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// TickerHost emits the elapsed seconds since subscription at a fixed
// interval until its context or the subscription is cancelled.
type TickerHost struct {
	ctx      context.Context
	interval time.Duration
}

func NewTickerHost(ctx context.Context, interval time.Duration) *TickerHost {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickerHost{ctx: ctx, interval: interval}
}

// Subscribe starts a ticker goroutine. The returned cancel blocks until the
// goroutine has exited, so it must not be called from fn.
func (h *TickerHost) Subscribe(fn func(ClockSample)) func() {
	ctx, cancel := context.WithCancel(h.ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				fn(ClockSample(now.Sub(start).Seconds()))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
