package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rrboots/storefront/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Boots":              "boots",
		"Tierra Alta":        "tierra-alta",
		"  Día de Campo  ":   "dia-de-campo",
		"Café & Cuero":       "cafe-cuero",
		"UPPER---lower":      "upper-lower",
		"über cool":          "uber-cool",
		"42 / Forty-Two":     "42-forty-two",
		"": "",
	}

	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "input %q", in)
	}
}
