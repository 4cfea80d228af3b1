package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertUrgency(t *testing.T) {
	assert.Equal(t, "HIGH", alertUrgency(5, 10))
	assert.Equal(t, "HIGH", alertUrgency(10, 10))
	assert.Equal(t, "MEDIUM", alertUrgency(14, 10))
}
