package core

import (
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type side string

func (s side) String() string { return "side:" + string(s) }

func TestIsEmptyValue(t *testing.T) {
	var nilDecimal *apd.Decimal
	var nilMap map[string]int
	var nilSlice []int

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"empty_string", "", true},
		{"typed_nil_pointer", nilDecimal, true},
		{"nil_map", nilMap, true},
		{"nil_slice", nilSlice, true},
		{"zero_int", 0, false},
		{"zero_float", 0.0, false},
		{"false", false, false},
		{"string", "BTC", false},
		{"decimal", apd.New(1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmptyValue(tt.value))
		})
	}
}

func TestParams_Encode(t *testing.T) {
	var lendingRate *apd.Decimal

	p := Params{
		"command":      "buy",
		"currencyPair": "BTC_ETH",
		"rate":         *apd.New(15, -1),
		"amount":       0,
		"postOnly":     false,
		"lendingRate":  lendingRate,
		"account":      "",
		"start":        time.Unix(1577836800, 0),
	}

	body, err := p.Encode()
	require.NoError(t, err)
	assert.Equal(t, "amount=0&command=buy&currencyPair=BTC_ETH&postOnly=0&rate=1.5&start=1577836800", body)

	again, err := p.Encode()
	require.NoError(t, err)
	assert.Equal(t, body, again)

	assert.Len(t, p, 8, "encode must not mutate the params")
}

func TestParams_EncodeEscapes(t *testing.T) {
	body, err := Params{"address": "a b&c=d"}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "address=a+b%26c%3Dd", body)
}

func TestParams_EncodeUnsupported(t *testing.T) {
	_, err := Params{"bad": struct{}{}}.Encode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `param "bad"`)
}

func TestParams_SetMergeClone(t *testing.T) {
	p := Params{}.Set("command", "returnTicker")
	p.Merge(Params{"start": int64(1), "command": "returnChartData"})

	assert.Equal(t, "returnChartData", p["command"])
	assert.Equal(t, int64(1), p["start"])

	c := p.Clone()
	c["end"] = int64(2)
	assert.NotContains(t, p, "end")

	var empty Params
	assert.Nil(t, empty.Clone())
}

func TestFormatValue(t *testing.T) {
	ts := time.Unix(1500000000, 0)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "abc", "abc"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"uint8", uint8(9), "9"},
		{"float64", 0.0035, "0.0035"},
		{"float32", float32(1.5), "1.5"},
		{"true", true, "1"},
		{"false", false, "0"},
		{"decimal", *apd.New(12345, -4), "1.2345"},
		{"decimal_pointer", apd.New(2, -2), "0.02"},
		{"decimal_exponent", *apd.New(1, 3), "1000"},
		{"time", ts, "1500000000"},
		{"time_pointer", &ts, "1500000000"},
		{"stringer", side("buy"), "side:buy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := FormatValue([]int{1})
	assert.Error(t, err)
}
