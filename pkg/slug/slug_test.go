package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Café Don Pepe":         "cafe-don-pepe",
		"  La   Ñapa  ":         "la-napa",
		"Pizzería #1!":          "pizzeria-1",
		"---":                   "",
		"Über Grill & Bar 2024": "uber-grill-bar-2024",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), in)
	}
}

func TestMake_TruncatesLongNames(t *testing.T) {
	got := Make(strings.Repeat("restaurante ", 20))
	assert.LessOrEqual(t, len(got), maxLen)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "cafe", WithSuffix("cafe", 1))
	assert.Equal(t, "cafe-2", WithSuffix("cafe", 2))
	assert.Equal(t, "cafe-12", WithSuffix("cafe", 12))
}
