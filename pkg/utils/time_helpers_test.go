package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSecondsShort(t *testing.T) {
	cases := map[float64]string{
		0:      "0s",
		59.4:   "59s",
		135:    "2m 15s",
		3600:   "1h 0m 0s",
		3723.6: "1h 2m 4s",
		-5:     "0s",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatSecondsShort(in), "input %v", in)
	}
}
