package version

import (
	"runtime/debug"
	"testing"
)

func TestFillVCS(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
	}

	var bi BuildInfo
	fillVCS(&bi, settings)
	if bi.Commit != "0123456789abcdef" || bi.Date != "2026-10-01T12:00:00Z" {
		t.Fatalf("bi = %+v", bi)
	}

	stamped := BuildInfo{Commit: "abc1234", Date: "2026-09-30"}
	fillVCS(&stamped, settings)
	if stamped.Commit != "abc1234" || stamped.Date != "2026-09-30" {
		t.Fatalf("ldflags values must win, got %+v", stamped)
	}
}

func TestInfo(t *testing.T) {
	bi := Info()
	if bi.Service != Service || bi.Version == "" || bi.Commit == "" || bi.Date == "" {
		t.Fatalf("Info() = %+v", bi)
	}
}

func TestShort(t *testing.T) {
	for in, want := range map[string]string{"": "", "abc": "abc", "0123456789": "0123456"} {
		if got := Short(in); got != want {
			t.Fatalf("Short(%q) = %q, want %q", in, got, want)
		}
	}
}
