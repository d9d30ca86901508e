package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateResetCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := GenerateResetCode()
		assert.Len(t, code, 5)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
		seen[code] = true
	}

	// 50 draws out of 90000 possibilities should not all collide.
	assert.Greater(t, len(seen), 1)
}
