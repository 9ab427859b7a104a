package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gohelix/helix"
	"github.com/gohelix/helix/blocks"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(helix.NewConfigurationError("no strand1", "Validate")))
	assert.Equal(t, 3, exitCode(helix.NewMalformedTableError(helix.RaggedRow, "roll.ser", 4, "Parse")))
	assert.Equal(t, 4, exitCode(helix.NewModelFitError(helix.NotConverged, "twist", "FitMixture")))
	assert.Equal(t, 5, exitCode(helix.NewOutputError(helix.UnableToWrite, "avg.jpg", "export.Commit")))
	assert.Equal(t, 1, exitCode(errors.New("something else")))
}

func TestCommands(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range commands {
		assert.False(t, seen[c.name], "repeated command %s", c.name)
		seen[c.name] = true
		c.setFlags()
		assert.NotNil(t, c.flags.Lookup("config"), c.name)
	}
	for _, b := range blocks.Blocks() {
		assert.True(t, seen[string(b)], "no command for block %s", b)
	}
}
