package version

import "testing"

func TestUserAgent(t *testing.T) {
	v, c, b := Version, Commit, BuildTime
	t.Cleanup(func() { Version, Commit, BuildTime = v, c, b })

	Version = "1.2.0"
	if got := UserAgent(); got != "b3-refdata/1.2.0" {
		t.Errorf("UserAgent() = %q, want %q", got, "b3-refdata/1.2.0")
	}
	Commit, BuildTime = "abc123", "2024-01-15T00:00:00Z"
	if got := String(); got != "1.2.0 (abc123) built 2024-01-15T00:00:00Z" {
		t.Errorf("String() = %q", got)
	}
}
