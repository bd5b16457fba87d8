package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 50},   // 未指定はdefault
		{-1, 50},  // 不正値もdefault
		{1, 1},
		{50, 50},
		{100, 100},
		{101, 100}, // 上限超過はresetではなくclamp
		{500, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, clampLimit(tt.in), "clampLimit(%d)", tt.in)
	}
}
