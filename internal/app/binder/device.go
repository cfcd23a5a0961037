// Package binder keeps a single audio output device in sync with the
// player store, and feeds device events back into it.
package binder

import "time"

// Device is the audio output handle the binder drives. Implementations
// must tolerate redundant calls: Play while playing and Pause while
// paused are harmless.
type Device interface {
	// SetSource loads a new audio source. Playback does not start until
	// Play is called.
	SetSource(url string) error
	// Play starts or resumes playback. An error means the device refused
	// to play (the binder downgrades this to a pause, it is not fatal).
	Play() error
	// Pause suspends playback, keeping the source loaded.
	Pause()
	// Seek moves the playback position.
	Seek(pos time.Duration)
	// SetVolume sets the output gain in the range 0.0 to 1.0.
	SetVolume(v float64)
	// Events returns the device event stream. The channel is closed when
	// the device is closed.
	Events() <-chan Event
	// Close releases the device.
	Close() error
}

// EventType represents a device event type.
type EventType int

const (
	EventPosition EventType = iota // Playback position changed
	EventDuration                  // Source duration became known
	EventEnded                     // Source played to the end
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventPosition:
		return "position"
	case EventDuration:
		return "duration"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Event is a device-originated playback event.
type Event struct {
	Type     EventType
	Position time.Duration // Set for EventPosition
	Duration time.Duration // Set for EventDuration
}
