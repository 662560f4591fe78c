// Package hz renders and parses clock rates for configs and diagnostics.
package hz

import (
	"errors"
	"strconv"
	"strings"
)

// Format renders a rate with the largest unit that keeps it readable,
// e.g. 1000000 -> "1 MHz", 32768 -> "32.768 kHz", 250 -> "250 Hz".
func Format(v uint32) string {
	switch {
	case v >= 1_000_000:
		return scaled(v, 1_000_000) + " MHz"
	case v >= 1_000:
		return scaled(v, 1_000) + " kHz"
	default:
		return strconv.FormatUint(uint64(v), 10) + " Hz"
	}
}

func scaled(v, unit uint32) string {
	whole := v / unit
	frac := v % unit
	s := strconv.FormatUint(uint64(whole), 10)
	if frac == 0 {
		return s
	}
	f := strconv.FormatUint(uint64(frac+unit), 10)[1:] // zero-padded fraction
	f = strings.TrimRight(f, "0")
	return s + "." + f
}

var errBadRate = errors.New("unparseable rate")

// Parse accepts a bare integer ("1000000") or a value with a unit suffix
// ("1 MHz", "32.768kHz", "250 hz"). The result must be a whole, positive
// number of Hz that fits in 32 bits.
func Parse(s string) (uint32, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, errBadRate
	}

	mult := uint64(1)
	lower := strings.ToLower(t)
	switch {
	case strings.HasSuffix(lower, "ghz"):
		mult = 1_000_000_000
		t = t[:len(t)-3]
	case strings.HasSuffix(lower, "mhz"):
		mult = 1_000_000
		t = t[:len(t)-3]
	case strings.HasSuffix(lower, "khz"):
		mult = 1_000
		t = t[:len(t)-3]
	case strings.HasSuffix(lower, "hz"):
		t = t[:len(t)-2]
	}
	t = strings.TrimSpace(t)

	whole, frac, hasFrac := strings.Cut(t, ".")
	n, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, errBadRate
	}
	v := n * mult

	if hasFrac {
		if frac == "" || mult == 1 {
			return 0, errBadRate
		}
		// Scale the fraction by the unit; reject sub-Hz remainders.
		f, err := strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, errBadRate
		}
		scale := mult
		for range frac {
			scale /= 10
		}
		if scale == 0 {
			return 0, errBadRate
		}
		v += f * scale
	}

	if v == 0 || v >= 1<<32 {
		return 0, errBadRate
	}
	return uint32(v), nil
}
