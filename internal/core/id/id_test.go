package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOptionalIgnoresGarbage(t *testing.T) {
	assert.Nil(t, ParseOptional(""))
	assert.Nil(t, ParseOptional("not-a-uuid"))

	v := New()
	got := ParseOptional(" " + v.String() + " ")
	if assert.NotNil(t, got) {
		assert.Equal(t, v, *got)
	}
}

func TestParseListDropsInvalidAndDuplicates(t *testing.T) {
	a, b := New(), New()

	got := ParseList([]string{a.String(), "x", b.String() + "," + a.String(), ""})

	assert.Equal(t, []ID{a, b}, got)
}

func TestNewIsTimeOrdered(t *testing.T) {
	first := New()
	second := New()
	assert.Equal(t, 7, int(first.Version()))
	assert.NotEqual(t, first, second)
}
