package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{
			name:     "known flag set to true",
			registry: New(map[string]bool{FlagSQLiteMirror: true}),
			flag:     FlagSQLiteMirror,
			expected: true,
		},
		{
			name:     "known flag set to false",
			registry: New(map[string]bool{FlagSQLiteMirror: false}),
			flag:     FlagSQLiteMirror,
			expected: false,
		},
		{
			name:     "flag missing from config",
			registry: New(map[string]bool{FlagSQLiteMirror: true}),
			flag:     FlagStrictDates,
			expected: false,
		},
		{
			name:     "nil registry",
			registry: nil,
			flag:     FlagSQLiteMirror,
			expected: false,
		},
		{
			name:     "nil flags map",
			registry: New(nil),
			flag:     FlagStrictDates,
			expected: false,
		},
		{
			name:     "unknown flag name is still readable",
			registry: New(map[string]bool{"experimental": true}),
			flag:     "experimental",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_All(t *testing.T) {
	require.Equal(t, map[string]bool{}, (*Registry)(nil).All())
	require.Equal(t, map[string]bool{}, New(nil).All())
	require.Equal(t,
		map[string]bool{FlagSQLiteMirror: true, FlagStrictDates: false},
		New(map[string]bool{FlagSQLiteMirror: true, FlagStrictDates: false}).All(),
	)
}

func TestRegistry_IsolatedFromCallerMaps(t *testing.T) {
	input := map[string]bool{FlagSQLiteMirror: true}
	r := New(input)

	input[FlagSQLiteMirror] = false
	require.True(t, r.Enabled(FlagSQLiteMirror), "New must copy its input")

	out := r.All()
	out[FlagStrictDates] = true
	require.False(t, r.Enabled(FlagStrictDates), "All must return a copy")
}

func TestKnown(t *testing.T) {
	require.ElementsMatch(t, []string{FlagSQLiteMirror, FlagStrictDates}, Known())
}
