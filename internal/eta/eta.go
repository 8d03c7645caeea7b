// Package eta sanitizes raw travel durations and applies the delivery-time
// correction rules. Raw driving time underestimates dispatch and preparation
// overhead, so a bucketed additive correction is applied once at acceptance.
package eta

import (
	"math"
	"time"
)

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Debug captures how an estimate was produced. Persisted alongside the order
// for auditability; nothing reads it back.
type Debug struct {
	CalculatedAt     time.Time `json:"calculatedAt"`
	From             LatLng    `json:"from"`
	To               LatLng    `json:"to"`
	RawMinutes       *float64  `json:"rawMinutes"`
	SanitizedMinutes *float64  `json:"sanitizedMinutes"`
	RuleApplied      string    `json:"ruleApplied,omitempty"`
	AdjustedMinutes  *float64  `json:"adjustedMinutes"`
}

// Result is a sanitized, corrected estimate. Adjusted is nil when the raw
// input collapsed to "no estimate".
type Result struct {
	Adjusted *float64
	Debug    Debug
}

// Sanitize collapses nil, NaN, infinite and non-positive durations to
// "no estimate". A returned estimate is always positive.
func Sanitize(raw *float64) *float64 {
	if raw == nil {
		return nil
	}
	v := *raw
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}
	return &v
}

// Correct applies the acceptance-time correction to a sanitized duration and
// reports which bucket fired.
func Correct(t float64) (float64, string) {
	switch {
	case t < 5:
		return t + 11, "<5 => +11"
	case t <= 10:
		return t + 10, "5..10 => +10"
	default:
		return t + 9, ">10 => +9"
	}
}

// Estimate runs sanitization and correction over a raw travel duration,
// recording the full derivation in the debug metadata.
func Estimate(raw *float64, from, to LatLng, now time.Time) Result {
	sanitized := Sanitize(raw)

	debug := Debug{
		CalculatedAt:     now,
		From:             from,
		To:               to,
		RawMinutes:       raw,
		SanitizedMinutes: sanitized,
	}

	if sanitized == nil {
		return Result{Debug: debug}
	}

	adjusted, rule := Correct(*sanitized)
	debug.RuleApplied = rule
	debug.AdjustedMinutes = &adjusted

	return Result{Adjusted: &adjusted, Debug: debug}
}

// DecrementForDispatch shrinks a prior estimate when the rider sets off,
// clamping the result to at least one minute.
func DecrementForDispatch(t float64) float64 {
	var next float64
	switch {
	case t < 10:
		next = t - 5
	case t <= 15:
		next = t - 7
	default:
		next = t - 8
	}
	if next <= 0 {
		next = 1
	}
	return next
}
