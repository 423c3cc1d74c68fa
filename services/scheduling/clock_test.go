package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	min, err := parseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, min)

	min, err = parseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	_, err = parseClock("9:30am")
	assert.Error(t, err)
	_, err = parseClock("25:00")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:30", formatClock(570))
	assert.Equal(t, "00:00", formatClock(0))
	assert.Equal(t, "16:45", formatClock(1005))
}

func TestDatesBetween(t *testing.T) {
	dates, err := datesBetween("2026-03-02", "2026-03-04")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-02", "2026-03-03", "2026-03-04"}, dates)

	dates, err = datesBetween("2026-03-02", "2026-03-02")
	require.NoError(t, err)
	assert.Len(t, dates, 1)

	// Month boundary.
	dates, err = datesBetween("2026-02-27", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02-27", "2026-02-28", "2026-03-01"}, dates)

	_, err = datesBetween("2026-03-04", "2026-03-02")
	assert.Error(t, err)
}
