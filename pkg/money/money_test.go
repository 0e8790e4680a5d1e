package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	assert := assert.New(t)

	sum, err := Amount(100).Add(250)
	assert.NoError(err)
	assert.Equal(Amount(350), sum)

	_, err = Amount(math.MaxInt64).Add(1)
	assert.ErrorIs(err, ErrAmountOverflow)
}

func TestSub(t *testing.T) {
	assert := assert.New(t)

	rest, err := Amount(100).Sub(80)
	assert.NoError(err)
	assert.Equal(Amount(20), rest)

	_, err = Amount(79).Sub(80)
	assert.ErrorIs(err, ErrNegativeBalance)
}

func TestCovers(t *testing.T) {
	assert.True(t, Amount(100).Covers(100))
	assert.True(t, Amount(101).Covers(100))
	assert.False(t, Amount(99).Covers(100))
}

func TestString(t *testing.T) {
	assert.Equal(t, "50.25", Amount(5025).String())
	assert.Equal(t, "-0.05", Amount(-5).String())
	assert.Equal(t, "0.00", Amount(0).String())
}
