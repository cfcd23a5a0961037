package audio

import (
	"github.com/cockroachdb/errors"

	"github.com/AyabongaQwabi/espazza-player/internal/app/binder"
)

// New creates an audio device for the configured output type.
func New(outputType string, settings map[string]any) (binder.Device, error) {
	switch outputType {
	case "", "none":
		return NewNull(), nil
	case "speaker":
		return NewSpeaker(settings)
	default:
		return nil, errors.Newf("unknown audio output type: %s", outputType)
	}
}
