package config

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStepsPerFrame(t *testing.T) {
	tests := []struct {
		name     string
		ips      int
		expected int
	}{
		{name: "default rate", ips: 700, expected: 11},
		{name: "exact multiple", ips: 600, expected: 10},
		{name: "below refresh rate", ips: 30, expected: 1},
		{name: "minimum one instruction", ips: 1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StepsPerFrame(tt.ips))
		})
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
