package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := NewTTL()

	_, ok := c.Get("courses")
	assert.False(t, ok)

	c.Set("courses", []string{"IF101"}, time.Minute)
	v, ok := c.Get("courses")
	assert.True(t, ok)
	assert.Equal(t, []string{"IF101"}, v)
}

func TestTTLCache_Kedaluwarsa(t *testing.T) {
	c := NewTTL()
	c.Set("rooms", "lab-1", 10*time.Millisecond)

	time.Sleep(25 * time.Millisecond)
	_, ok := c.Get("rooms")
	assert.False(t, ok)
}

func TestTTLCache_TTLNolTidakDisimpan(t *testing.T) {
	c := NewTTL()
	c.Set("x", 1, 0)
	_, ok := c.Get("x")
	assert.False(t, ok)
}

func TestTTLCache_Invalidate(t *testing.T) {
	c := NewTTL()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Set("c", 3, time.Minute)

	c.Invalidate("a", "b")

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
	v, ok := c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}
