package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAwardAmount(t *testing.T) {
	tests := []struct {
		streak int
		want   int64
	}{
		{1, 50}, // first win, no streak bonus
		{2, 60},
		{3, 70},
		{6, 100}, // cap reached
		{10, 100},
	}
	for _, tc := range tests {
		assert.True(t, awardAmount(tc.streak).Equal(decimal.NewFromInt(tc.want)),
			"streak %d: got %s", tc.streak, awardAmount(tc.streak))
	}
}
