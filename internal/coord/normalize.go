// Package coord converts coordinate cells into signed decimal degrees.
//
// Accepted encodings:
//
//	numeric Go values (float64, int, ...)   passed through unchanged
//	"40 26 46"  "40° 26' 46\""  "40 26 46 S"  "74° 0' 21.5\" W"   degrees minutes seconds
//
// Anything else is reported as unparsed and carries the original text, so the caller
// can decide whether a plain numeric string ("40.4461") is still usable.
package coord

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const dmsParts = 3

// markers are the glyphs removed before a DMS value is split into tokens.
var markers = strings.NewReplacer("°", "", "'", "", `"`, "")

// Result is the outcome of normalizing one coordinate value.
// Exactly one of the two cases holds: Parsed with Value set, or unparsed with Raw set
// to the original text.
type Result struct {
	Value  float64 // Value in decimal degrees, valid only when Parsed.
	Raw    string  // Raw is the original text of an unparsed value.
	Parsed bool    // Parsed reports whether Value holds a decimal-degree value.
}

// Decimal returns a parsed result.
func Decimal(v float64) Result { return Result{Value: v, Parsed: true} }

// Unparsed returns a result carrying the original text.
func Unparsed(raw string) Result { return Result{Raw: raw} }

// Normalize converts v into decimal degrees.
// Numeric values pass through, strings go through ParseDMS, nil is unparsed with empty text
// and any other type is unparsed with its default formatting.
func Normalize(v any) Result {
	switch val := v.(type) {
	case nil:
		return Unparsed("")
	case float64:
		return Decimal(val)
	case float32:
		return Decimal(float64(val))
	case int:
		return Decimal(float64(val))
	case int16:
		return Decimal(float64(val))
	case int32:
		return Decimal(float64(val))
	case int64:
		return Decimal(float64(val))
	case uint32:
		return Decimal(float64(val))
	case uint64:
		return Decimal(float64(val))
	case string:
		return ParseDMS(val)
	case []byte:
		return ParseDMS(string(val))
	default:
		return Unparsed(fmt.Sprint(val))
	}
}

// ParseDMS parses a degrees-minutes-seconds string.
//
// The marker glyphs ° ' " are stripped and a single trailing hemisphere letter (N, S, E, W)
// is set aside; the rest must split on whitespace into exactly three numbers. A value that
// ends in S or W is negated, N and E stay positive. Any other shape returns the input unchanged.
func ParseDMS(s string) Result {
	text := strings.TrimSpace(s)
	if text == "" {
		return Unparsed(s)
	}

	negative := false
	switch text[len(text)-1] {
	case 'S', 'W':
		negative = true
		text = text[:len(text)-1]
	case 'N', 'E':
		text = text[:len(text)-1]
	}

	tokens := strings.Fields(markers.Replace(text))
	if len(tokens) != dmsParts {
		return Unparsed(s)
	}

	var parts [dmsParts]float64
	for i, token := range tokens {
		val, ok := parseDecimal(token)
		if !ok {
			return Unparsed(s)
		}
		parts[i] = val
	}

	dd := parts[0] + parts[1]/60 + parts[2]/3600
	if negative {
		dd = -dd
	}

	return Decimal(dd)
}

// Float coerces a result into a finite float64.
// Parsed values are returned as is; unparsed text is tried as a plain decimal number.
// Empty text, non-numeric text, hexadecimal floats, NaN and infinities report false.
func Float(r Result) (float64, bool) {
	if r.Parsed {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return 0, false
		}
		return r.Value, true
	}

	return parseDecimal(strings.TrimSpace(r.Raw))
}

// parseDecimal accepts finite decimal notation only. Hexadecimal floats, which strconv
// would take, are rejected.
func parseDecimal(text string) (float64, bool) {
	digits := strings.TrimLeft(text, "+-")
	if text == "" || strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, false
	}

	val, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}

	return val, true
}
