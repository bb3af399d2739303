package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		cents  int64
	}{
		{35.00, 3500},
		{70.00, 7000},
		{69.99, 6999},
		{69.995, 7000}, // rounds, never truncates
		{0.1 + 0.2, 30},
		{110.00, 11000},
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.cents, ToMinorUnits(tc.amount), "amount %.3f", tc.amount)
	}
}
