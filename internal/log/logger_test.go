package log

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.Debug("hidden %d", 1)
	assert.Empty(t, buf.String())
	assert.False(t, l.IsDebugEnabled())

	l.SetVerbose(true)
	assert.True(t, l.IsDebugEnabled())
	l.Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")

	l.SetVerbose(false)
	l.Info("pressed %s", "Enter")
	assert.Contains(t, buf.String(), "pressed Enter")
}

func TestLoggerProgress(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.Step("Resizing to %dx%d... ", 800, 600)
	l.Success("done")
	l.Failure("failed")

	assert.Equal(t, "→ Resizing to 800x600... done\nfailed\n", buf.String())
}
