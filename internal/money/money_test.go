package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyPercent(t *testing.T) {
	cases := []struct {
		name    string
		in      Cents
		percent int
		want    Cents
	}{
		{"zero percent", 2000, 0, 2000},
		{"ten percent", 2000, 10, 1800},
		{"full discount", 2000, 100, 0},
		{"over full clamps", 2000, 120, 0},
		{"negative ignored", 2000, -5, 2000},
		{"rounds half up", 999, 50, 500},          // 4.995 -> 5.00
		{"rounds down below half", 1003, 33, 672}, // 672.01 -> 672.00
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.ApplyPercent(tc.percent))
		})
	}
}

func TestSubClamp(t *testing.T) {
	assert.Equal(t, Cents(500), Cents(2000).SubClamp(1500))
	assert.Equal(t, Cents(0), Cents(1000).SubClamp(1000))
	assert.Equal(t, Cents(0), Cents(1000).SubClamp(2500))
}

func TestString(t *testing.T) {
	assert.Equal(t, "54.00", Cents(5400).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-1.23", Cents(-123).String())
}

func TestFromMajor(t *testing.T) {
	assert.Equal(t, Cents(2000), FromMajor(20))
}
