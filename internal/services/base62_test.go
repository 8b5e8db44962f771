package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBase62(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{n: 0, want: "0"},
		{n: 1, want: "1"},
		{n: 9, want: "9"},
		{n: 10, want: "A"},
		{n: 35, want: "Z"},
		{n: 36, want: "a"},
		{n: 61, want: "z"},
		{n: 62, want: "10"},
		{n: 3843, want: "zz"},
		{n: 3844, want: "100"},
		{n: math.MaxUint64, want: "LygHa16AHYF"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeBase62(tt.n))
		})
	}
}

func TestBase62RoundTrip(t *testing.T) {
	seen := make(map[string]uint64, 100_000)
	check := func(n uint64) {
		code := EncodeBase62(n)
		if prev, ok := seen[code]; ok {
			t.Fatalf("code %s produced by %d and %d", code, prev, n)
		}
		seen[code] = n

		got, err := DecodeBase62(code)
		require.NoError(t, err)
		require.Equal(t, n, got)
	}

	for n := range uint64(100_000) {
		check(n)
	}
	for _, n := range []uint64{math.MaxUint32, math.MaxUint64 - 1, math.MaxUint64} {
		check(n)
	}
}

func TestDecodeBase62Errors(t *testing.T) {
	for _, in := range []string{"", "ab-c", "абв", "LygHa16AHYG", "100000000000"} {
		t.Run(in, func(t *testing.T) {
			_, err := DecodeBase62(in)
			assert.Error(t, err)
		})
	}
}

func TestValidateShortcode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{code: "abcd", valid: true},
		{code: "AB_cd-12", valid: true},
		{code: "abcdefghijklmnopqrstuvwxyz012345", valid: true},
		{code: "abc", valid: false},
		{code: "abcdefghijklmnopqrstuvwxyz0123456", valid: false},
		{code: "ab cd", valid: false},
		{code: "ab/cd", valid: false},
		{code: "привет", valid: false},
		{code: "", valid: false},
		{code: "ping", valid: false},
		{code: "healthz", valid: false},
		{code: "shorturls", valid: false},
		{code: "Ping", valid: true},
		{code: "pings", valid: true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := ValidateShortcode(tt.code)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidShortcode)
			}
		})
	}
}
