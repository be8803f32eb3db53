package logging

import (
	"bytes"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want log.Lvl
	}{
		{"debug", log.DEBUG},
		{"", log.INFO},
		{"INFO", log.INFO},
		{"warning", log.WARN},
		{"error", log.ERROR},
		{"off", log.OFF},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("test", "warn", &buf)
	require.NoError(t, err)

	l.Debugf("hidden %d", 1)
	l.Infof("hidden %d", 2)
	assert.Empty(t, buf.String())

	l.Warnf("shown %d", 3)
	assert.Contains(t, buf.String(), "shown 3")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Errorf("nothing %s", "here")
	assert.Equal(t, log.OFF, l.Level())
}
