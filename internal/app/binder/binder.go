package binder

import (
	"context"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/AyabongaQwabi/espazza-player/internal/app/playback"
)

// Binder performs one-way synchronization from store state to the audio
// device, and dispatches device events back into the store. It is the
// sole writer to the device; every playback request in the process goes
// through the shared store and ends up here.
type Binder struct {
	store  *playback.Store
	device Device

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeOnce sync.Once
}

// New creates a binder for the given store and device.
func New(store *playback.Store, device Device) *Binder {
	ctx, cancel := context.WithCancel(context.Background())
	return &Binder{
		store:  store,
		device: device,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start subscribes to the store and begins consuming device events.
// State dispatched before Start (the configured volume, a restored
// queue) is pushed to the device up front; diffing alone would never
// deliver it.
func (b *Binder) Start() {
	b.store.Subscribe(b.onStateChange)

	state := b.store.State()
	b.device.SetVolume(state.EffectiveVolume())
	if state.CurrentTrack != nil {
		if err := b.device.SetSource(state.CurrentTrack.URL); err != nil {
			zlog.Warn().Err(err).Msgf("binder: failed to load source: track=%s", state.CurrentTrack.ID)
			b.store.Dispatch(playback.Pause{})
		} else if state.IsPlaying {
			b.playOrPause()
		}
	}

	b.wg.Add(1)
	go b.consumeDeviceEvents()
}

// Seek moves the device position and mirrors it into the store. Seeking
// goes through the binder rather than the reducer because position is
// device-owned state; the store only mirrors it.
func (b *Binder) Seek(pos time.Duration) {
	b.device.Seek(pos)
	b.store.Dispatch(playback.SetCurrentTime{Time: pos})
}

// Close stops the binder and releases the device.
func (b *Binder) Close() error {
	var err error
	b.closeOnce.Do(func() {
		b.cancel()
		err = b.device.Close()
		b.wg.Wait()
	})
	return err
}

func (b *Binder) onStateChange(prev, next playback.State, _ playback.Action) {
	if prev.EffectiveVolume() != next.EffectiveVolume() {
		b.device.SetVolume(next.EffectiveVolume())
	}

	switch {
	case trackChanged(prev, next):
		if next.CurrentTrack == nil {
			b.device.Pause()
			return
		}
		if err := b.device.SetSource(next.CurrentTrack.URL); err != nil {
			zlog.Warn().Err(err).Msgf("binder: failed to load source: track=%s", next.CurrentTrack.ID)
			b.store.Dispatch(playback.Pause{})
			return
		}
		if next.IsPlaying {
			b.playOrPause()
		}

	case prev.IsPlaying != next.IsPlaying:
		if next.IsPlaying {
			b.playOrPause()
		} else {
			b.device.Pause()
		}
	}
}

// playOrPause calls Play on the device, downgrading a refusal to a
// Pause dispatch instead of propagating the error.
func (b *Binder) playOrPause() {
	if err := b.device.Play(); err != nil {
		zlog.Warn().Err(err).Msg("binder: device refused to play, pausing")
		b.store.Dispatch(playback.Pause{})
	}
}

func (b *Binder) consumeDeviceEvents() {
	defer b.wg.Done()

	for {
		select {
		case <-b.ctx.Done():
			return
		case ev, ok := <-b.device.Events():
			if !ok {
				return
			}
			b.handleDeviceEvent(ev)
		}
	}
}

func (b *Binder) handleDeviceEvent(ev Event) {
	switch ev.Type {
	case EventPosition:
		b.store.Dispatch(playback.SetCurrentTime{Time: ev.Position})

	case EventDuration:
		b.store.Dispatch(playback.SetDuration{Duration: ev.Duration})

	case EventEnded:
		// Repeat-one is device-local: replay without a queue transition.
		if b.store.State().RepeatMode == playback.RepeatOne {
			b.device.Seek(0)
			b.store.Dispatch(playback.SetCurrentTime{Time: 0})
			b.playOrPause()
			return
		}
		b.store.Dispatch(playback.NextTrack{})
	}
}

func trackChanged(prev, next playback.State) bool {
	switch {
	case prev.CurrentTrack == nil && next.CurrentTrack == nil:
		return false
	case prev.CurrentTrack == nil || next.CurrentTrack == nil:
		return true
	default:
		return prev.CurrentTrack.ID != next.CurrentTrack.ID
	}
}
