package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingNotifier struct {
	got []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) {
	r.got = append(r.got, n)
}

func TestMultiNotifier(t *testing.T) {
	first := &recordingNotifier{}
	second := &recordingNotifier{}
	m := MultiNotifier{first, second}

	n := Notification{Title: "Success", Description: "Song added to playlist", Variant: VariantSuccess}
	m.Notify(context.Background(), n)

	assert.Equal(t, []Notification{n}, first.got)
	assert.Equal(t, []Notification{n}, second.got)
}

func TestLogNotifier_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		LogNotifier{}.Notify(context.Background(), Notification{
			Title:   "Error",
			Variant: VariantDestructive,
		})
	})
}
