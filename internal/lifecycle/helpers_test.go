package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// freezeNow pins the package clock for the duration of the test.
func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func mustModel(t *testing.T, name, version string, opts ...Option) *Model {
	t.Helper()
	m, err := NewModel(name, version, opts...)
	require.NoError(t, err)
	return m
}
