package uictl_test

import (
	"testing"

	"github.com/alkime/blogsmith/pkg/uictl"
	"github.com/stretchr/testify/assert"
)

func TestFraction(t *testing.T) {
	tests := []struct {
		name     string
		num, max int64
		want     float64
	}{
		{name: "empty", num: 0, max: 2000, want: 0},
		{name: "half", num: 1000, max: 2000, want: 0.5},
		{name: "full", num: 2000, max: 2000, want: 1},
		{name: "overshoot clamps", num: 2500, max: 2000, want: 1},
		{name: "negative clamps", num: -5, max: 2000, want: 0},
		{name: "zero cap", num: 10, max: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := uictl.CappedDialFunc[int64](func() (int64, int64) { return tt.num, tt.max })
			assert.InDelta(t, tt.want, uictl.Fraction[int64](d), 1e-9)
			assert.Equal(t, tt.num, d.Read())
		})
	}
}

func TestLampFunc(t *testing.T) {
	on := false
	lamp := uictl.LampFunc(func() bool { return on })

	assert.False(t, lamp.Lit())
	on = true
	assert.True(t, lamp.Lit())
}
