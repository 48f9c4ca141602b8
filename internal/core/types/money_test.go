package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyToMinor(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"1", 100},
		{"123.45", 12345},
		{"123.4", 12340},
		{"0.01", 1},
		{"-15.50", -1550},
		// Rounded half away from zero at two places.
		{"1.005", 101},
		{"-1.005", -101},
		{"99.999", 10000},
	}

	for _, c := range cases {
		m, err := NewMoneyFromString(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, MoneyToMinor(m), "input %s", c.in)
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "0.01", "123.45", "-15.50", "1000000"} {
		m := MustMoney(s)
		restored := MoneyFromMinor(MoneyToMinor(m))
		assert.True(t, m.Equal(restored), "value %s came back as %s", s, restored)
	}
}

func TestMoneyFromMinor(t *testing.T) {
	assert.Equal(t, "123.45", MoneyFromMinor(12345).String())
	assert.Equal(t, "-0.01", MoneyFromMinor(-1).String())
	assert.True(t, MoneyFromMinor(0).Equal(ZeroMoney()))
}

func TestMustMoneyPanics(t *testing.T) {
	assert.Panics(t, func() { MustMoney("not a number") })
}
