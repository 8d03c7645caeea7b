package eta_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/papinesquik/SmokeRider/internal/eta"
)

func floatPtr(v float64) *float64 { return &v }

func TestSanitize(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, eta.Sanitize(nil))
	})

	t.Run("invalid values collapse to nil", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -3} {
			assert.Nil(t, eta.Sanitize(floatPtr(v)), "value %v", v)
		}
	})

	t.Run("positive value passes through", func(t *testing.T) {
		got := eta.Sanitize(floatPtr(12.5))
		if assert.NotNil(t, got) {
			assert.Equal(t, 12.5, *got)
		}
	})
}

func TestCorrect(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"short trip", 3, 14},
		{"mid trip", 7, 17},
		{"upper bucket boundary", 10, 20},
		{"long trip", 11, 20},
		{"lower bucket boundary", 5, 15},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, rule := eta.Correct(tc.in)
			assert.Equal(t, tc.want, got)
			assert.NotEmpty(t, rule)
		})
	}
}

func TestEstimate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	from := eta.LatLng{Lat: 55.75, Lng: 37.61}
	to := eta.LatLng{Lat: 55.76, Lng: 37.64}

	t.Run("valid raw produces adjusted estimate", func(t *testing.T) {
		res := eta.Estimate(floatPtr(7), from, to, now)

		if assert.NotNil(t, res.Adjusted) {
			assert.Equal(t, 17.0, *res.Adjusted)
		}
		assert.Equal(t, now, res.Debug.CalculatedAt)
		assert.Equal(t, from, res.Debug.From)
		assert.Equal(t, to, res.Debug.To)
		assert.Equal(t, 7.0, *res.Debug.RawMinutes)
		assert.Equal(t, 7.0, *res.Debug.SanitizedMinutes)
		assert.Equal(t, 17.0, *res.Debug.AdjustedMinutes)
		assert.NotEmpty(t, res.Debug.RuleApplied)
	})

	t.Run("invalid raw yields no estimate but full debug", func(t *testing.T) {
		res := eta.Estimate(floatPtr(math.NaN()), from, to, now)

		assert.Nil(t, res.Adjusted)
		assert.Nil(t, res.Debug.SanitizedMinutes)
		assert.Nil(t, res.Debug.AdjustedMinutes)
		assert.Empty(t, res.Debug.RuleApplied)
	})

	t.Run("nil raw yields no estimate", func(t *testing.T) {
		res := eta.Estimate(nil, from, to, now)
		assert.Nil(t, res.Adjusted)
		assert.Nil(t, res.Debug.RawMinutes)
	})
}

func TestDecrementForDispatch(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"short estimate", 8, 3},
		{"mid estimate", 12, 5},
		{"long estimate", 20, 12},
		{"clamps to one minute", 4, 1},
		{"mid bucket boundary", 15, 8},
		{"lower bucket boundary", 10, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, eta.DecrementForDispatch(tc.in))
		})
	}
}
