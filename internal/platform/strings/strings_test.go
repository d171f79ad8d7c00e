package strings

import (
	"testing"

	"lookalike/internal/platform/testkit"
)

func TestMustString(t *testing.T) {
	if got := MustString("dedupe", "module name"); got != "dedupe" {
		t.Fatalf("MustString = %q", got)
	}
	testkit.MustPanic(t, func() { MustString(" \t", "module name") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"customers":    "/customers",
		"/customers/":  "/customers",
		"  //meta// ":  "/meta",
		"/api/v1/meta": "/api/v1/meta",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	testkit.MustPanic(t, func() { MustPrefix(" / ") })
}

func TestPtrDeref(t *testing.T) {
	if Ptr("") != nil {
		t.Fatal("empty string must map to nil")
	}
	if p := Ptr("+974 5555 1234"); p == nil || Deref(p) != "+974 5555 1234" {
		t.Fatalf("round trip = %v", p)
	}
	if Deref(nil) != "" {
		t.Fatal("Deref(nil) must be empty")
	}
}
