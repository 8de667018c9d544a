package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFullName(t *testing.T) {
	assert.Equal(t, "ali.khan", DefaultFullName("ali.khan@example.com"))
	assert.Equal(t, "sara", DefaultFullName("sara@gmail.com"))
	// no @: the whole string is used
	assert.Equal(t, "plainname", DefaultFullName("plainname"))
}
