package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateQueryID(t *testing.T) {
	first := GenerateQueryID()
	second := GenerateQueryID()

	assert.Len(t, first, queryIDLength)
	assert.Regexp(t, "^[A-Za-z0-9]+$", first)
	assert.NotEqual(t, first, second)
}
