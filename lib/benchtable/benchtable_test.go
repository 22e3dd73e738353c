package benchtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePercent(t *testing.T) {
	testCases := []struct {
		text     string
		expected float64
	}{
		{text: "2.57%", expected: 2.57},
		{text: "-0.46%", expected: -0.46},
		{text: "?1.03%", expected: 1.03},
		{text: " 0.00% ", expected: 0},
		{text: "12%", expected: 12},
	}

	for _, test := range testCases {
		v, err := ParsePercent(test.text)
		require.NoError(t, err, test.text)
		require.InDelta(t, test.expected, v, 1e-9, test.text)
	}

	_, err := ParsePercent("")
	require.Error(t, err)
	_, err = ParsePercent("n/a")
	require.Error(t, err)
}

func TestParseCount(t *testing.T) {
	testCases := []struct {
		text     string
		expected float64
	}{
		{text: "1,234,567", expected: 1234567},
		{text: "999", expected: 999},
		{text: "1,000,000.5", expected: 1000000.5},
	}

	for _, test := range testCases {
		v, err := ParseCount(test.text)
		require.NoError(t, err, test.text)
		require.InDelta(t, test.expected, v, 1e-9, test.text)
	}

	_, err := ParseCount(" ")
	require.Error(t, err)
}

func TestParseFactor(t *testing.T) {
	v, err := ParseFactor("12.23")
	require.NoError(t, err)
	require.InDelta(t, 12.23, v, 1e-9)

	_, err = ParseFactor("")
	require.Error(t, err)
}

func TestRawChange(t *testing.T) {
	r := Result{BeforeRaw: 1000000, AfterRaw: 1025700}
	require.InDelta(t, 25700, r.RawChange(), 1e-9)
}
