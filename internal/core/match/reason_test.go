package match

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReason_LabelsAndCodes(t *testing.T) {
	want := map[Reason]string{
		ExactPhone:          "Exact phone number match",
		SimilarPhone:        "Similar phone number",
		SimilarNameParts:    "Similar name parts",
		SimilarSoundingName: "Similar sounding name",
		ExactEmail:          "Exact email match",
		SimilarEmail:        "Similar email address",
	}
	for _, r := range AllReasons() {
		if r.String() != want[r] {
			t.Fatalf("%d.String() = %q, want %q", r, r.String(), want[r])
		}
		back, err := ParseReason(r.Code())
		if err != nil || back != r {
			t.Fatalf("ParseReason(%q) = %v, %v", r.Code(), back, err)
		}
	}
	if Reason(0).Valid() || Reason(99).Valid() {
		t.Fatal("zero and out of range reasons must be invalid")
	}
}

func TestReason_JSON(t *testing.T) {
	b, err := json.Marshal(Reasons{ExactPhone, SimilarEmail})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `["exact_phone","similar_email"]` {
		t.Fatalf("marshal = %s", b)
	}
	var got Reasons
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(Reasons{ExactPhone, SimilarEmail}, got); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
	if _, err := json.Marshal(Reason(42)); err == nil {
		t.Fatal("expected error for invalid reason")
	}
}

func TestReasons_Union(t *testing.T) {
	a := Reasons{ExactPhone}
	got := a.Union(Reasons{ExactEmail, ExactPhone, SimilarNameParts})
	if diff := cmp.Diff(Reasons{ExactPhone, ExactEmail, SimilarNameParts}, got); diff != "" {
		t.Fatalf("union (-want +got):\n%s", diff)
	}
	if len(a) != 1 {
		t.Fatal("union mutated receiver")
	}
}
