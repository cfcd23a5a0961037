package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrack_SameAs(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Track
		equal bool
	}{
		{
			name:  "same id different metadata",
			a:     Track{ID: "t1", Title: "Umlilo"},
			b:     Track{ID: "t1", Title: "Umlilo (Remix)"},
			equal: true,
		},
		{
			name:  "different ids",
			a:     Track{ID: "t1"},
			b:     Track{ID: "t2"},
			equal: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.SameAs(tt.b))
		})
	}
}

func TestIndexByID(t *testing.T) {
	tracks := []Track{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	assert.Equal(t, 0, IndexByID(tracks, "a"))
	assert.Equal(t, 2, IndexByID(tracks, "c"))
	assert.Equal(t, -1, IndexByID(tracks, "missing"))
	assert.Equal(t, -1, IndexByID(nil, "a"))
}
