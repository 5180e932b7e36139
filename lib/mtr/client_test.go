package mtr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDatadogTags(t *testing.T) {
	assert.Empty(t, toDatadogTags(nil))
	assert.ElementsMatch(t,
		[]string{"run:abc", "epoch:2"},
		toDatadogTags(map[string]string{"run": "abc", "epoch": "2"}),
	)
}
