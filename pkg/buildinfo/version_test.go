package buildinfo

import "testing"

func TestShort(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"dev build", "dev", "none", "mosaic dev"},
		{"empty commit", "v1.0.0", "", "mosaic v1.0.0"},
		{"long commit", "v1.2.3", "0123456789abcdef", "mosaic v1.2.3 (0123456)"},
		{"short commit", "v1.2.3", "abc", "mosaic v1.2.3 (abc)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = tt.version, tt.commit
			if got := Short(); got != tt.want {
				t.Errorf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}
