package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Café Noir 2":       "cafe-noir-2",
		"  Red   Hat!! ":    "red-hat",
		"Über Hüte":         "uber-hute",
		"hat_1/2":           "hat-1-2",
		"---":               "",
		"Crème brûlée Set ": "creme-brulee-set",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}
