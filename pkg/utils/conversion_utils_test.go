package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{50, "50"},
		{120.5, "120.50"},
		{1500, "1,500"},
		{1234.5, "1,234.50"},
		{1234567.89, "1,234,567.89"},
		{-9876.5, "-9,876.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatAmount(tc.in), "FormatAmount(%v)", tc.in)
	}
}

func TestStrToInt64(t *testing.T) {
	n, err := StrToInt64("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = StrToInt64("pen")
	assert.Error(t, err)
}
