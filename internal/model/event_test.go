package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tiliavir/babylog/internal/model"
)

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []model.Kind{
		model.KindDiaper,
		model.KindFeedingStart,
		model.KindFeedingStop,
		model.KindSleepStart,
		model.KindSleepStop,
	} {
		got, ok := model.ParseKind(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
}

func TestParseKindUnknown(t *testing.T) {
	k, ok := model.ParseKind("bath")
	assert.False(t, ok)
	assert.Equal(t, model.KindDiaper, k)
	assert.Equal(t, "unknown", model.Kind(42).String())
}

func TestIsStop(t *testing.T) {
	assert.True(t, model.KindFeedingStop.IsStop())
	assert.True(t, model.KindSleepStop.IsStop())
	assert.False(t, model.KindFeedingStart.IsStop())
	assert.False(t, model.KindDiaper.IsStop())
}
