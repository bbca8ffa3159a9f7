package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineAmountIsExact(t *testing.T) {
	total := LineAmount(5, MustMoney("10.00")).Add(LineAmount(2, MustMoney("3.50")))
	assert.True(t, total.Equal(MustMoney("57.00")), total.String())

	// 3 × 0.10 must not drift the way float64 does
	assert.True(t, LineAmount(3, MustMoney("0.10")).Equal(MustMoney("0.30")))
}

func TestPctChange(t *testing.T) {
	assert.Nil(t, PctChange(MustMoney("10"), Zero()))

	pct := PctChange(MustMoney("150"), MustMoney("100"))
	require.NotNil(t, pct)
	assert.Equal(t, 50.0, *pct)

	pct = PctChangeInt(1, 3)
	require.NotNil(t, pct)
	assert.Equal(t, -66.67, *pct)
}

func TestShare(t *testing.T) {
	assert.Nil(t, Share(MustMoney("1"), Zero()))

	s := ShareInt(1, 4)
	require.NotNil(t, s)
	assert.Equal(t, 25.0, *s)
}

func TestDivOrNil(t *testing.T) {
	assert.Nil(t, DivOrNil(MustMoney("10"), Zero()))

	v := DivOrNil(MustMoney("10"), MustMoney("4"))
	require.NotNil(t, v)
	assert.True(t, v.Equal(MustMoney("2.5")))
}
