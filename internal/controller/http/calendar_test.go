package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateBareDateUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	got, err := parseDate("2026-03-02", loc)
	require.NoError(t, err)

	// Midnight in the configured zone, not UTC: the item must land in the
	// March 2nd bucket of the month view.
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 2, got.Day())
	assert.Equal(t, loc.String(), got.Location().String())
	assert.Equal(t, "2026-03-02", got.In(loc).Format("2006-01-02"))
}

func TestParseDateRFC3339KeepsOffset(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	got, err := parseDate("2026-03-02T18:30:00+01:00", loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC).Unix(), got.Unix())
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := parseDate("02/03/2026", time.UTC)
	assert.Error(t, err)
}
