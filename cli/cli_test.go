package cli

import (
	"testing"
)

func TestViewCommandSkipsFlagParsing(t *testing.T) {
	// Negative history indexes ("view -1") must reach the action instead
	// of being rejected as unknown flags.
	app := New()

	for _, command := range app.cli.Commands {
		if command.Name == "view" {
			if !command.SkipFlagParsing {
				t.Error("view command must skip flag parsing to accept negative indexes")
			}
			return
		}
	}
	t.Fatal("view command not registered")
}

func TestSetVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{
			name:    "no commit",
			version: "dev",
			commit:  "none",
			want:    "dev",
		},
		{
			name:    "empty commit",
			version: "dev",
			commit:  "",
			want:    "dev",
		},
		{
			name:    "full commit is truncated",
			version: "1.2.3",
			commit:  "0123456789abcdef",
			date:    "today",
			want:    "1.2.3 (commit: 01234567, built: today)",
		},
		{
			name:    "short commit is kept whole",
			version: "1.2.3",
			commit:  "0123",
			date:    "today",
			want:    "1.2.3 (commit: 0123, built: today)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := New()
			app.SetVersion(tt.version, tt.commit, tt.date)
			if app.cli.Version != tt.want {
				t.Errorf("SetVersion() version = %q, want %q", app.cli.Version, tt.want)
			}
		})
	}
}
