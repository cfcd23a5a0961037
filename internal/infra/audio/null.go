package audio

import (
	"sync"
	"time"

	"github.com/AyabongaQwabi/espazza-player/internal/app/binder"
)

// Null is a no-op device for headless deployments and tests. It accepts
// every call and never emits events.
type Null struct {
	events    chan binder.Event
	closeOnce sync.Once
}

// NewNull creates a null device.
func NewNull() *Null {
	return &Null{events: make(chan binder.Event)}
}

func (n *Null) SetSource(string) error { return nil }

func (n *Null) Play() error { return nil }

func (n *Null) Pause() {}

func (n *Null) Seek(time.Duration) {}

func (n *Null) SetVolume(float64) {}

func (n *Null) Events() <-chan binder.Event { return n.events }

func (n *Null) Close() error {
	n.closeOnce.Do(func() { close(n.events) })
	return nil
}
