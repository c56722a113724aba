package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	day := time.Date(2024, time.August, 26, 0, 0, 0, 0, time.UTC)

	at, err := ParseClock("0930", day)
	require.NoError(t, err)
	require.Equal(
		t,
		time.Date(2024, time.August, 26, 9, 30, 0, 0, Location),
		at,
	)

	// the day is reinterpreted in Beijing time first; midnight UTC
	// on the 26th is already the 26th there
	require.Equal(t, 26, at.Day())

	_, err = ParseClock("2501", day)
	require.Error(t, err)

	_, err = ParseClock("nonsense", day)
	require.Error(t, err)
}

func TestNowIsPinned(t *testing.T) {
	require.Equal(t, Location.String(), Now().Location().String())
}
