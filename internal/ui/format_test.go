package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "0 B/s", FormatRate(0))
	assert.Equal(t, "512 B/s", FormatRate(512))
	assert.Equal(t, "1.00 KB/s", FormatRate(1024))
	assert.Equal(t, "10.0 MB/s", FormatRate(10*1024*1024))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
	assert.Equal(t, "-1,000", FormatCount(-1000))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5s", FormatDuration(5*time.Second))
	assert.Equal(t, "2m 03s", FormatDuration(123*time.Second))
	assert.Equal(t, "1h 01m 05s", FormatDuration(time.Hour+65*time.Second))
}
