package version

import "testing"

func TestString(t *testing.T) {
	commit, built := GitCommit, BuildTime
	t.Cleanup(func() { GitCommit, BuildTime = commit, built })

	GitCommit = "unknown"
	if got := String(); got != "v"+Version {
		t.Errorf("String() = %q, want %q", got, "v"+Version)
	}

	GitCommit, BuildTime = "abc123", "2026-01-01"
	want := "v" + Version + " (abc123, built 2026-01-01)"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
