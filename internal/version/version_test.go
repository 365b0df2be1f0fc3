package version

import (
	"runtime"
	"testing"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version, GitCommit, BuildDate = "1.2.0", "abc1234", "2026-10-01"
	want := "1.2.0 (commit: abc1234, date: 2026-10-01, " + runtime.GOOS + "/" + runtime.GOARCH + ")"
	if got := String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
