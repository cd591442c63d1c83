package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("b", "a")
	s.Add("c")
	s.Add("a")

	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("z"))
	assert.Len(t, s, 3)
}
