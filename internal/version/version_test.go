// Package version_test provides tests for version management functionality.
package version

import (
	"strings"
	"testing"
)

func TestValidateVersion(t *testing.T) {
	// Save original version
	originalVersion := Version
	defer func() {
		Version = originalVersion
	}()

	tests := []struct {
		name        string
		version     string
		expectError bool
	}{
		{
			name:        "valid version",
			version:     "1.2.3",
			expectError: false,
		},
		{
			name:        "valid version with prerelease",
			version:     "1.2.3-alpha.1",
			expectError: false,
		},
		{
			name:        "invalid version",
			version:     "invalid",
			expectError: true,
		},
		{
			name:        "empty version",
			version:     "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.version
			err := ValidateVersion()
			if tt.expectError && err == nil {
				t.Errorf("ValidateVersion() expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("ValidateVersion() unexpected error: %v", err)
			}
		})
	}
}

func TestIsPrerelease(t *testing.T) {
	// Save original version
	originalVersion := Version
	defer func() {
		Version = originalVersion
	}()

	tests := []struct {
		name     string
		version  string
		expected bool
	}{
		{
			name:     "stable version",
			version:  "1.2.3",
			expected: false,
		},
		{
			name:     "prerelease alpha",
			version:  "1.2.3-alpha.1",
			expected: true,
		},
		{
			name:     "prerelease rc",
			version:  "1.2.3-rc.1",
			expected: true,
		},
		{
			name:     "invalid version",
			version:  "invalid",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.version
			result := IsPrerelease()
			if result != tt.expected {
				t.Errorf("IsPrerelease() with version %q = %v, want %v", tt.version, result, tt.expected)
			}
		})
	}
}

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		name      string
		gitCommit string
		buildDate string
		expected  bool
	}{
		{
			name:      "development build - unknown commit",
			gitCommit: "unknown",
			buildDate: "2023-01-01",
			expected:  true,
		},
		{
			name:      "development build - unknown date",
			gitCommit: "abc1234",
			buildDate: "unknown",
			expected:  true,
		},
		{
			name:      "production build",
			gitCommit: "abc1234",
			buildDate: "2023-01-01",
			expected:  false,
		},
	}

	// Save original values
	originalGitCommit := GitCommit
	originalBuildDate := BuildDate
	defer func() {
		GitCommit = originalGitCommit
		BuildDate = originalBuildDate
	}()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			GitCommit = tt.gitCommit
			BuildDate = tt.buildDate
			result := IsDevelopment()
			if result != tt.expected {
				t.Errorf("IsDevelopment() with GitCommit=%q, BuildDate=%q = %v, want %v",
					tt.gitCommit, tt.buildDate, result, tt.expected)
			}
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name     string
		v1       string
		v2       string
		expected int
		hasError bool
	}{
		{
			name:     "v1 less than v2",
			v1:       "1.0.0",
			v2:       "2.0.0",
			expected: -1,
			hasError: false,
		},
		{
			name:     "v1 greater than v2",
			v1:       "2.0.0",
			v2:       "1.0.0",
			expected: 1,
			hasError: false,
		},
		{
			name:     "v1 equals v2",
			v1:       "1.0.0",
			v2:       "1.0.0",
			expected: 0,
			hasError: false,
		},
		{
			name:     "prerelease comparison",
			v1:       "1.0.0-alpha.1",
			v2:       "1.0.0",
			expected: -1,
			hasError: false,
		},
		{
			name:     "invalid v1",
			v1:       "invalid",
			v2:       "1.0.0",
			expected: 0,
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompareVersions(tt.v1, tt.v2)
			if tt.hasError && err == nil {
				t.Errorf("CompareVersions(%q, %q) expected error but got none", tt.v1, tt.v2)
			}
			if !tt.hasError && err != nil {
				t.Errorf("CompareVersions(%q, %q) unexpected error: %v", tt.v1, tt.v2, err)
			}
			if !tt.hasError && result != tt.expected {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.v1, tt.v2, result, tt.expected)
			}
		})
	}
}

func TestSetBuildInfo(t *testing.T) {
	// Save original values
	originalVersion := Version
	originalGitCommit := GitCommit
	originalBuildDate := BuildDate
	defer func() {
		Version = originalVersion
		GitCommit = originalGitCommit
		BuildDate = originalBuildDate
	}()

	testVersion := "1.2.3"
	testCommit := "abc1234"
	testDate := "2023-01-01"

	SetBuildInfo(testVersion, testCommit, testDate)

	if Version != testVersion {
		t.Errorf("SetBuildInfo() Version = %q, want %q", Version, testVersion)
	}
	if GitCommit != testCommit {
		t.Errorf("SetBuildInfo() GitCommit = %q, want %q", GitCommit, testCommit)
	}
	if BuildDate != testDate {
		t.Errorf("SetBuildInfo() BuildDate = %q, want %q", BuildDate, testDate)
	}
}

func TestGetBuildTime(t *testing.T) {
	// Save original build date
	originalBuildDate := BuildDate
	defer func() {
		BuildDate = originalBuildDate
	}()

	tests := []struct {
		name           string
		buildDate      string
		expectError    bool
		expectedFormat string
	}{
		{
			name:           "RFC3339 format",
			buildDate:      "2023-01-01T12:00:00Z",
			expectError:    false,
			expectedFormat: "2006-01-02T15:04:05Z",
		},
		{
			name:           "date only format",
			buildDate:      "2023-01-01",
			expectError:    false,
			expectedFormat: "2006-01-02",
		},
		{
			name:        "unknown build date",
			buildDate:   "unknown",
			expectError: true,
		},
		{
			name:        "invalid format",
			buildDate:   "invalid-date",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			BuildDate = tt.buildDate
			result, err := GetBuildTime()

			if tt.expectError && err == nil {
				t.Errorf("GetBuildTime() expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("GetBuildTime() unexpected error: %v", err)
			}
			if !tt.expectError && !result.IsZero() {
				// Verify the time was parsed correctly by formatting it back
				formatted := result.Format(tt.expectedFormat)
				if formatted != tt.buildDate {
					t.Errorf("GetBuildTime() parsed time incorrectly, got %q, want %q", formatted, tt.buildDate)
				}
			}
		})
	}
}

func TestGetBaseVersion(t *testing.T) {
	// Save original version
	originalVersion := Version
	defer func() {
		Version = originalVersion
	}()

	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{
			name:     "standard version",
			version:  "1.2.3",
			expected: "1.2.3",
		},
		{
			name:     "version with build metadata",
			version:  "0.3.0+123.abc1234",
			expected: "0.3.0",
		},
		{
			name:     "version with prerelease",
			version:  "1.2.3-alpha.1",
			expected: "1.2.3",
		},
		{
			name:     "invalid version",
			version:  "invalid",
			expected: "invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.version
			result := GetBaseVersion()
			if result != tt.expected {
				t.Errorf("GetBaseVersion() with version %q = %q, want %q", tt.version, result, tt.expected)
			}
		})
	}
}

func TestGetFormattedVersion(t *testing.T) {
	// Save original values
	originalVersion := Version
	originalGitCommit := GitCommit
	originalBuildDate := BuildDate
	defer func() {
		Version = originalVersion
		GitCommit = originalGitCommit
		BuildDate = originalBuildDate
	}()

	SetBuildInfo("1.2.3", "abcdef1234567890", "2023-06-01")
	formatted := GetFormattedVersion()

	if !strings.HasPrefix(formatted, "yechat v1.2.3") {
		t.Errorf("GetFormattedVersion() = %q, want prefix %q", formatted, "yechat v1.2.3")
	}
	if !strings.Contains(formatted, "commit abcdef1") {
		t.Errorf("GetFormattedVersion() = %q, want short commit %q", formatted, "abcdef1")
	}
	if !strings.Contains(formatted, "built 2023-06-01") {
		t.Errorf("GetFormattedVersion() = %q, want build date", formatted)
	}
}
