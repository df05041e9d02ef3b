package tzif

import (
	"math"
	"testing"
)

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		sec  int64
		want string
	}{
		{0, "+00:00:00"},
		{3600, "+01:00:00"},
		{-1800, "-00:30:00"},
		{-37886, "-10:31:26"},
		{19800, "+05:30:00"},
		{93599, "+25:59:59"},
		{-89999, "-24:59:59"},
		{360000, "+100:00:00"},
		{math.MinInt32, "-596523:14:08"},
		{math.MinInt64, "-2562047788015215:30:08"},
	}
	for _, tt := range tests {
		if got := FormatOffset(tt.sec); got != tt.want {
			t.Errorf("FormatOffset(%d) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}
