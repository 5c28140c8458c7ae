package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.Len(t, id, IDLength)
		assert.True(t, IsValidID(id), "generated id %q should be valid", id)
		assert.False(t, seen[id], "generated id %q repeated", id)
		seen[id] = true
	}
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("5f2b6c4d8e9a0b1c2d3e4f50"))

	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("5f2b6c4d"))
	assert.False(t, IsValidID("5f2b6c4d8e9a0b1c2d3e4f5"))   // one short
	assert.False(t, IsValidID("5f2b6c4d8e9a0b1c2d3e4f501")) // one long
	assert.False(t, IsValidID("zzzzzzzzzzzzzzzzzzzzzzzz"))  // not hex
	assert.False(t, IsValidID("5F2B6C4D8E9A0B1C2D3E4F50"))  // uppercase
}
