// internal/di/container_test.go
package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainerRegisterAndGet(t *testing.T) {
	c := NewContainer()

	c.Register("store", "a store instance")

	assert.True(t, c.Has("store"))
	assert.Equal(t, "a store instance", c.Get("store"))
	assert.Nil(t, c.Get("missing"))
	assert.False(t, c.Has("missing"))
	assert.Contains(t, c.GetNames(), "store")
}

func TestGetContainerIsSingleton(t *testing.T) {
	assert.Same(t, GetContainer(), GetContainer())
}
