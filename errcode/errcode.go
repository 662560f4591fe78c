package errcode

import "strconv"

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Clock bring-up taxonomy. Every code is terminal for the probe pass
	// that raised it; none are retried.
	NoClocksConfigured     Code = "no_clocks_configured"
	ClockAcquisitionFailed Code = "clock_acquisition_failed"
	FrequencyConfigMissing Code = "freq_config_missing"
	RateSetFailed          Code = "rate_set_failed"
	EnableFailed           Code = "enable_failed"

	InvalidConfig  Code = "invalid_config"
	InvalidPayload Code = "invalid_payload"
	InvalidTopic   Code = "invalid_topic"
	Unsupported    Code = "unsupported"

	Error Code = "error" // generic fallback
)

// NoClock marks an E that is not about one particular clock.
const NoClock = -1

// E is the structured wrapper: a code plus the clock ordinal and requested
// rate it concerns, and an optional cause.
type E struct {
	C     Code
	Clock int    // clock ordinal, NoClock when set-wide
	Hz    uint32 // requested rate, 0 when not applicable
	Op    string
	Err   error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Clock != NoClock {
		s += ": clock " + strconv.Itoa(e.Clock)
	}
	if e.Hz != 0 {
		s += " @ " + strconv.FormatUint(uint64(e.Hz), 10) + " Hz"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// ClockOf extracts the clock ordinal from an error, or NoClock.
func ClockOf(err error) int {
	if x, ok := err.(*E); ok {
		return x.Clock
	}
	return NoClock
}
