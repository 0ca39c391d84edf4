package coord_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDMS(t *testing.T) {
	t.Parallel()
	want := 40 + 26.0/60 + 46.0/3600

	tests := []struct {
		name   string
		input  string
		value  float64
		parsed bool
	}{
		{name: "north hemisphere", input: "40 26 46 N", value: want, parsed: true},
		{name: "south hemisphere", input: "40 26 46 S", value: -want, parsed: true},
		{name: "west hemisphere", input: "40 26 46 W", value: -want, parsed: true},
		{name: "east hemisphere", input: "40 26 46 E", value: want, parsed: true},
		{name: "no hemisphere", input: "40 26 46", value: want, parsed: true},
		{name: "marker glyphs", input: `40° 26' 46" N`, value: want, parsed: true},
		{name: "attached hemisphere", input: `40° 26' 46"S`, value: -want, parsed: true},
		{name: "fractional seconds", input: "12 30 36.5", value: 12 + 30.0/60 + 36.5/3600, parsed: true},
		{name: "surrounding whitespace", input: "  40 26 46 N  ", value: want, parsed: true},
		{name: "two tokens", input: "40 26", parsed: false},
		{name: "four tokens", input: "40 26 46 12", parsed: false},
		{name: "non numeric token", input: "forty 26 46", parsed: false},
		{name: "plain decimal", input: "40.4461", parsed: false},
		{name: "empty", input: "", parsed: false},
		{name: "hemisphere only", input: "N", parsed: false},
		{name: "not a number token", input: "NaN 0 0", parsed: false},
		{name: "hex token", input: "0x28 26 46 N", parsed: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := coord.ParseDMS(tc.input)

			require.Equal(t, tc.parsed, res.Parsed)
			if tc.parsed {
				assert.InDelta(t, tc.value, res.Value, 1e-12)
				assert.Empty(t, res.Raw)
				return
			}
			assert.Equal(t, tc.input, res.Raw, "unparsed input must come back unchanged")
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("numeric values pass through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, coord.Decimal(28.61), coord.Normalize(28.61))
		assert.Equal(t, coord.Decimal(77), coord.Normalize(77))
		assert.Equal(t, coord.Decimal(-3), coord.Normalize(int64(-3)))
		assert.InDelta(t, 1.5, coord.Normalize(float32(1.5)).Value, 1e-9)
	})

	t.Run("strings are parsed as DMS", func(t *testing.T) {
		t.Parallel()
		res := coord.Normalize("10 30 0 W")

		require.True(t, res.Parsed)
		assert.InDelta(t, -10.5, res.Value, 1e-12)
	})

	t.Run("nil is unparsed", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, coord.Unparsed(""), coord.Normalize(nil))
	})

	t.Run("unknown type is unparsed", func(t *testing.T) {
		t.Parallel()
		res := coord.Normalize(true)

		assert.False(t, res.Parsed)
		assert.Equal(t, "true", res.Raw)
	})
}

func TestFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input coord.Result
		value float64
		ok    bool
	}{
		{name: "parsed", input: coord.Decimal(12.5), value: 12.5, ok: true},
		{name: "decimal string", input: coord.Unparsed(" 28.7041 "), value: 28.7041, ok: true},
		{name: "negative string", input: coord.Unparsed("-3.25"), value: -3.25, ok: true},
		{name: "empty", input: coord.Unparsed(""), ok: false},
		{name: "text", input: coord.Unparsed("unknown"), ok: false},
		{name: "malformed dms", input: coord.Unparsed("40 26"), ok: false},
		{name: "nan string", input: coord.Unparsed("NaN"), ok: false},
		{name: "inf string", input: coord.Unparsed("Inf"), ok: false},
		{name: "parsed nan", input: coord.Decimal(math.NaN()), ok: false},
		{name: "hex float", input: coord.Unparsed("0x1p4"), ok: false},
		{name: "signed hex float", input: coord.Unparsed("-0X1.8p1"), ok: false},
		{name: "leading zero decimal", input: coord.Unparsed("0.5"), value: 0.5, ok: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			val, ok := coord.Float(tc.input)

			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.value, val, 1e-12)
			}
		})
	}
}
