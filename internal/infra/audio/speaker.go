// Package audio provides audio output device implementations for the
// binder: a real speaker backed by beep and a null device.
package audio

import (
	"context"
	"io"
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/AyabongaQwabi/espazza-player/internal/app/binder"
)

// SpeakerSettings holds the speaker device configuration.
type SpeakerSettings struct {
	BufferSizeKB       int `mapstructure:"buffer_size_kb" default:"256" validate:"gt=0"`
	PositionIntervalMs int `mapstructure:"position_interval_ms" default:"500" validate:"gt=0"`
}

// Speaker plays audio through the system output using beep. The speaker
// is initialized lazily with the sample rate of the first source; later
// sources with a different rate are resampled.
type Speaker struct {
	settings SpeakerSettings
	events   chan binder.Event

	mu          sync.Mutex
	initialized bool
	outputRate  beep.SampleRate
	streamer    beep.StreamSeekCloser
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	format      beep.Format
	reader      io.ReadCloser
	gain        float64
	stopTicker  context.CancelFunc
	closed      bool
}

// NewSpeaker creates a speaker device from an output settings map.
func NewSpeaker(settings map[string]any) (*Speaker, error) {
	var cfg SpeakerSettings
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode speaker settings")
	}
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "speaker settings validation failed")
	}

	return &Speaker{
		settings: cfg,
		events:   make(chan binder.Event, 16),
		gain:     1.0,
	}, nil
}

// SetSource stops the current source and loads a new one, paused.
func (s *Speaker) SetSource(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("speaker is closed")
	}

	s.stopCurrentLocked()

	reader, err := newStreamReader(url, s.settings.BufferSizeKB*1024)
	if err != nil {
		return err
	}

	streamer, format, err := mp3.Decode(reader)
	if err != nil {
		_ = reader.Close()
		return errors.Wrap(err, "failed to decode audio source")
	}

	if !s.initialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5)); err != nil {
			_ = streamer.Close()
			_ = reader.Close()
			return errors.Wrap(err, "failed to initialize speaker")
		}
		s.initialized = true
		s.outputRate = format.SampleRate
	}

	s.streamer = streamer
	s.format = format
	s.reader = reader
	s.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}

	var chain beep.Streamer = s.ctrl
	if format.SampleRate != s.outputRate {
		chain = beep.Resample(4, format.SampleRate, s.outputRate, s.ctrl)
	}
	s.volume = &effects.Volume{
		Streamer: chain,
		Base:     2,
		Volume:   gainToVolume(s.gain),
		Silent:   s.gain == 0,
	}

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		s.send(binder.Event{Type: binder.EventEnded})
	})))

	s.send(binder.Event{
		Type:     binder.EventDuration,
		Duration: format.SampleRate.D(streamer.Len()),
	})

	tickerCtx, cancel := context.WithCancel(context.Background())
	s.stopTicker = cancel
	go s.reportPosition(tickerCtx)

	return nil
}

// Play resumes the loaded source. Playing an already-playing source is
// harmless.
func (s *Speaker) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return errors.New("no source loaded")
	}

	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return
	}

	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// Seek moves the playback position. HTTP-streamed sources are not
// always seekable; a refused seek is logged and ignored.
func (s *Speaker) Seek(pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return
	}

	speaker.Lock()
	err := s.streamer.Seek(s.format.SampleRate.N(pos))
	speaker.Unlock()
	if err != nil {
		zlog.Warn().Err(err).Msgf("audio: seek failed: pos=%v", pos)
	}
}

func (s *Speaker) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gain = v
	if s.volume == nil {
		return
	}

	speaker.Lock()
	s.volume.Volume = gainToVolume(v)
	s.volume.Silent = v == 0
	speaker.Unlock()
}

func (s *Speaker) Events() <-chan binder.Event {
	return s.events
}

func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.stopCurrentLocked()
	close(s.events)
	return nil
}

// stopCurrentLocked tears down the active source. Must be called with
// s.mu held.
func (s *Speaker) stopCurrentLocked() {
	if s.stopTicker != nil {
		s.stopTicker()
		s.stopTicker = nil
	}
	if s.initialized && s.ctrl != nil {
		speaker.Clear()
	}
	if s.streamer != nil {
		_ = s.streamer.Close()
		s.streamer = nil
	}
	if s.reader != nil {
		_ = s.reader.Close()
		s.reader = nil
	}
	s.ctrl = nil
	s.volume = nil
}

func (s *Speaker) reportPosition(ctx context.Context) {
	interval := time.Duration(s.settings.PositionIntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.streamer == nil || s.closed {
				s.mu.Unlock()
				return
			}
			speaker.Lock()
			pos := s.format.SampleRate.D(s.streamer.Position())
			speaker.Unlock()
			s.mu.Unlock()

			s.send(binder.Event{Type: binder.EventPosition, Position: pos})
		}
	}
}

// send emits an event without blocking; events are dropped when the
// consumer falls behind.
func (s *Speaker) send(e binder.Event) {
	select {
	case s.events <- e:
	default:
	}
}

// gainToVolume maps a linear 0..1 gain onto beep's exponential volume
// scale (gain = Base^Volume with Base 2).
func gainToVolume(gain float64) float64 {
	if gain <= 0 {
		return 0
	}
	return math.Log2(gain)
}
