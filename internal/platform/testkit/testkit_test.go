package testkit

import "testing"

var seam = func() string { return "real" }

func TestSwapRestores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Serial(t)
		Swap(t, &seam, func() string { return "fake" })
		if seam() != "fake" {
			t.Fatal("seam not swapped")
		}
	})
	if seam() != "real" {
		t.Fatal("seam not restored after the subtest")
	}
}

func TestAssertions(t *testing.T) {
	MustPanic(t, func() { panic("x") })
	MustContain(t, `{"level":"info","request_id":"r-1"}`, `"request_id":"r-1"`)
}
