package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownCodes(t *testing.T) {
	for _, c := range All() {
		got := Lookup(c.Code)
		assert.Equal(t, c, got)
	}
}

func TestLookupUnknownCodeFallsBack(t *testing.T) {
	for _, code := range []string{"", "crypto", "FOOD-DRINKS", "food_drinks"} {
		got := Lookup(code)
		assert.Equal(t, Default(), got, "code %q should degrade to the default", code)
	}
}

func TestRegistryShape(t *testing.T) {
	all := All()
	assert.Len(t, all, 13)
	assert.Equal(t, "food-drinks", all[0].Code)

	seen := make(map[string]bool)
	for _, c := range all {
		assert.NotEmpty(t, c.Label)
		assert.NotEmpty(t, c.Icon)
		assert.Regexp(t, `^#[0-9a-f]{6}$`, c.Color)
		assert.False(t, seen[c.Code], "duplicate code %q", c.Code)
		seen[c.Code] = true
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Label = "mutated"
	assert.Equal(t, "Food & Drinks", All()[0].Label)
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("utilities"))
	assert.False(t, IsKnown("unknown"))
}
