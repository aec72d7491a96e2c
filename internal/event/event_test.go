package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "RunStarted", RunStarted.String())
	assert.Equal(t, "FileCopied", FileCopied.String())
	assert.Equal(t, "FileExcluded", FileExcluded.String())
	assert.Equal(t, "RunCompleted", RunCompleted.String())
	assert.Equal(t, "Unknown", Type(99).String())
	assert.Equal(t, "Unknown", Type(0).String())
}
