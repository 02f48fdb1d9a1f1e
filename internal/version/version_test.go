package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestLine(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"0.1.0-dev", "", "", "contractgen 0.1.0-dev"},
		{"1.2.3", "1234567890abcdef", "", "contractgen 1.2.3 (1234567890ab)"},
		{"1.0.0+build.7", "abc", "2026-01-15", "contractgen 1.0.0+build.7 (abc) built 2026-01-15"},
		{"nightly", "", "", "contractgen nightly"},
	}
	for _, tt := range tests {
		Version, GitCommit, BuildDate = tt.version, tt.commit, tt.date
		if got := Line(); got != tt.want {
			t.Errorf("Line() = %q, want %q", got, tt.want)
		}
	}
}
