package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1,247", Number(1247, 0, "en"))
	require.Equal(t, "856", Number(856, 0, "en"))
	require.Equal(t, "2.3", Number(2.3, 1, "en"))
	require.NotEmpty(t, Number(1247, 0, "hi"))
}

func TestPercent(t *testing.T) {
	t.Parallel()

	require.Equal(t, "+12%", Percent(12))
	require.Equal(t, "-5%", Percent(-5))
	require.Equal(t, "0%", Percent(0))
}

func TestRelative(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "just now", Relative(now.Add(-10*time.Second), now, "en"))
	require.Equal(t, "1 minute ago", Relative(now.Add(-time.Minute), now, "en"))
	require.Equal(t, "2 hours ago", Relative(now.Add(-2*time.Hour), now, "en"))
	require.Equal(t, "2 घंटे पहले", Relative(now.Add(-2*time.Hour), now, "hi"))
	require.Equal(t, "2024-02-27", Relative(now.Add(-72*time.Hour), now, "en"))
}

func TestClock(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 1, 14, 5, 0, 0, time.UTC)
	require.Equal(t, "2:05 PM", Clock(ts, "en"))
	require.Equal(t, "14:05", Clock(ts, "hi"))
}
