package binder

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AyabongaQwabi/espazza-player/internal/app/playback"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/track"
)

// fakeDevice records calls and lets tests emit device events.
type fakeDevice struct {
	mu      sync.Mutex
	calls   []string
	source  string
	volume  float64
	playErr error
	events  chan Event
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{events: make(chan Event, 16)}
}

func (d *fakeDevice) record(call string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, call)
}

func (d *fakeDevice) SetSource(url string) error {
	d.mu.Lock()
	d.source = url
	d.mu.Unlock()
	d.record("source:" + url)
	return nil
}

func (d *fakeDevice) Play() error {
	d.mu.Lock()
	err := d.playErr
	d.mu.Unlock()
	if err != nil {
		d.record("play:refused")
		return err
	}
	d.record("play")
	return nil
}

func (d *fakeDevice) Pause() { d.record("pause") }

func (d *fakeDevice) Seek(pos time.Duration) { d.record("seek:" + pos.String()) }

func (d *fakeDevice) SetVolume(v float64) {
	d.mu.Lock()
	d.volume = v
	d.mu.Unlock()
	d.record("volume")
}

func (d *fakeDevice) Events() <-chan Event { return d.events }

func (d *fakeDevice) Close() error {
	close(d.events)
	return nil
}

func (d *fakeDevice) callList() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func newTestBinder(t *testing.T) (*playback.Store, *fakeDevice, *Binder) {
	t.Helper()
	store := playback.NewStore(playback.NewReducer(rand.NewSource(1)))
	device := newFakeDevice()
	b := New(store, device)
	b.Start()
	t.Cleanup(func() { _ = b.Close() })
	return store, device, b
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

// State dispatched before Start, like the configured volume seeded at
// boot, must reach the device when the binder comes up.
func TestBinder_StartPushesSeededState(t *testing.T) {
	store := playback.NewStore(playback.NewReducer(rand.NewSource(1)))
	store.Dispatch(playback.SetVolume{Volume: 0.5})
	store.Dispatch(playback.SetQueue{Tracks: []track.Track{{ID: "a", URL: "ua"}}})

	device := newFakeDevice()
	b := New(store, device)
	b.Start()
	t.Cleanup(func() { _ = b.Close() })

	device.mu.Lock()
	assert.Equal(t, 0.5, device.volume)
	device.mu.Unlock()

	calls := device.callList()
	assert.Contains(t, calls, "source:ua")
	assert.Contains(t, calls, "play")
}

func TestBinder_TrackChangeLoadsSourceAndPlays(t *testing.T) {
	store, device, _ := newTestBinder(t)

	store.Dispatch(playback.SetTrack{Track: track.Track{
		ID:  "a",
		URL: "https://cdn.example.com/audio/a.mp3",
	}})

	calls := device.callList()
	assert.Contains(t, calls, "source:https://cdn.example.com/audio/a.mp3")
	assert.Contains(t, calls, "play")
}

func TestBinder_PlayPauseDriveDevice(t *testing.T) {
	store, device, _ := newTestBinder(t)
	store.Dispatch(playback.SetTrack{Track: track.Track{ID: "a", URL: "u"}})

	store.Dispatch(playback.Pause{})
	assert.Contains(t, device.callList(), "pause")

	store.Dispatch(playback.Play{})
	calls := device.callList()
	assert.Equal(t, "play", calls[len(calls)-1])
}

func TestBinder_PlayRefusalDowngradesToPause(t *testing.T) {
	store, device, _ := newTestBinder(t)
	device.playErr = errors.New("output busy")

	store.Dispatch(playback.SetTrack{Track: track.Track{ID: "a", URL: "u"}})

	assert.False(t, store.State().IsPlaying, "refused play becomes a pause, not an error")
}

func TestBinder_VolumeAndMute(t *testing.T) {
	store, device, _ := newTestBinder(t)

	store.Dispatch(playback.SetVolume{Volume: 0.5})
	device.mu.Lock()
	assert.Equal(t, 0.5, device.volume)
	device.mu.Unlock()

	store.Dispatch(playback.ToggleMute{})
	device.mu.Lock()
	assert.Equal(t, float64(0), device.volume)
	device.mu.Unlock()

	store.Dispatch(playback.ToggleMute{})
	device.mu.Lock()
	assert.Equal(t, 0.5, device.volume)
	device.mu.Unlock()
}

func TestBinder_PositionAndDurationEventsMirrorIntoStore(t *testing.T) {
	store, device, _ := newTestBinder(t)

	device.events <- Event{Type: EventDuration, Duration: 3 * time.Minute}
	device.events <- Event{Type: EventPosition, Position: 42 * time.Second}

	waitFor(t, func() bool {
		s := store.State()
		return s.Duration == 3*time.Minute && s.CurrentTime == 42*time.Second
	})
}

func TestBinder_EndedAdvancesQueue(t *testing.T) {
	store, device, _ := newTestBinder(t)
	store.Dispatch(playback.SetQueue{Tracks: []track.Track{
		{ID: "a", URL: "ua"},
		{ID: "b", URL: "ub"},
	}})

	device.events <- Event{Type: EventEnded}

	waitFor(t, func() bool {
		s := store.State()
		return s.CurrentTrack != nil && s.CurrentTrack.ID == "b"
	})
	assert.Contains(t, device.callList(), "source:ub")
}

func TestBinder_EndedWithRepeatOneReplaysOnDevice(t *testing.T) {
	store, device, _ := newTestBinder(t)
	store.Dispatch(playback.SetQueue{Tracks: []track.Track{
		{ID: "a", URL: "ua"},
		{ID: "b", URL: "ub"},
	}})
	store.Dispatch(playback.ToggleRepeat{}) // all
	store.Dispatch(playback.ToggleRepeat{}) // one

	device.events <- Event{Type: EventEnded}

	waitFor(t, func() bool {
		for _, c := range device.callList() {
			if c == "seek:0s" {
				return true
			}
		}
		return false
	})

	// The queue transition is bypassed: still on track a.
	s := store.State()
	require.NotNil(t, s.CurrentTrack)
	assert.Equal(t, "a", s.CurrentTrack.ID)
}

func TestBinder_SeekDrivesDeviceAndMirrorsState(t *testing.T) {
	store, device, b := newTestBinder(t)
	store.Dispatch(playback.SetTrack{Track: track.Track{ID: "a", URL: "u"}})

	b.Seek(90 * time.Second)

	assert.Contains(t, device.callList(), "seek:1m30s")
	assert.Equal(t, 90*time.Second, store.State().CurrentTime)
}

func TestBinder_ClearQueuePausesDevice(t *testing.T) {
	store, device, _ := newTestBinder(t)
	store.Dispatch(playback.SetQueue{Tracks: []track.Track{{ID: "a", URL: "u"}}})

	store.Dispatch(playback.ClearQueue{})

	calls := device.callList()
	assert.Equal(t, "pause", calls[len(calls)-1])
}
