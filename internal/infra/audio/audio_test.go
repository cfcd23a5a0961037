package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		outputType string
		wantErr    bool
	}{
		{name: "empty defaults to null", outputType: ""},
		{name: "none", outputType: "none"},
		{name: "unknown", outputType: "pulse", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device, err := New(tt.outputType, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, device)
			assert.NoError(t, device.Close())
		})
	}
}

func TestNewSpeaker_Settings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := NewSpeaker(nil)
		require.NoError(t, err)
		assert.Equal(t, 256, s.settings.BufferSizeKB)
		assert.Equal(t, 500, s.settings.PositionIntervalMs)
	})

	t.Run("overrides", func(t *testing.T) {
		s, err := NewSpeaker(map[string]any{
			"buffer_size_kb":       512,
			"position_interval_ms": 250,
		})
		require.NoError(t, err)
		assert.Equal(t, 512, s.settings.BufferSizeKB)
		assert.Equal(t, 250, s.settings.PositionIntervalMs)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewSpeaker(map[string]any{"buffer_size_kb": -1})
		assert.Error(t, err)
	})
}

func TestNull_EventsCloseOnce(t *testing.T) {
	n := NewNull()
	require.NoError(t, n.SetSource("https://cdn.example.com/a.mp3"))
	require.NoError(t, n.Play())
	n.Pause()

	assert.NoError(t, n.Close())
	assert.NoError(t, n.Close())

	_, ok := <-n.Events()
	assert.False(t, ok)
}
