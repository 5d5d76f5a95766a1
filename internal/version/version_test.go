package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, revision string) {
	t.Helper()
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		if revision == "" {
			return nil, false
		}
		return &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: revision}}}, true
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		revision string
		expected string
	}{
		{
			name:     "development version without commit",
			version:  "development",
			commit:   "unknown",
			expected: "development",
		},
		{
			name:     "release version with commit",
			version:  "1.0.0",
			commit:   "abc1234",
			expected: "1.0.0+abc1234",
		},
		{
			name:     "ldflags commit wins over build info",
			version:  "0.5.0",
			commit:   "def5678",
			revision: "0123456789abcdef",
			expected: "0.5.0+def5678",
		},
		{
			name:     "build info revision is shortened",
			version:  "2.0.0",
			commit:   "unknown",
			revision: "0123456789abcdef",
			expected: "2.0.0+0123456",
		},
		{
			name:     "short revision is ignored",
			version:  "2.0.0",
			commit:   "unknown",
			revision: "abc",
			expected: "2.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion := Version
			origCommit := Commit
			defer func() {
				Version = origVersion
				Commit = origCommit
			}()
			withBuildInfo(t, tt.revision)

			Version = tt.version
			Commit = tt.commit

			assert.Equal(t, tt.expected, String())
		})
	}
}
