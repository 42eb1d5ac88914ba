package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	b := BuildInfo{Package: "example", GoVersion: "go1.18", Commit: "abc", CommitTime: "now", Modified: true}

	s := b.String()
	if !strings.Contains(s, "example") || !strings.Contains(s, "abc") {
		t.Errorf("Unexpected description %q", s)
	}
	if !strings.Contains(s, "modified") {
		t.Errorf("Expected the modified notice in %q", s)
	}
}

func TestGet(t *testing.T) {
	b := Get()

	// Test binaries carry module build info
	if b.GoVersion == "" {
		t.Error("Expected a Go version")
	}
}
