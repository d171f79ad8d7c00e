package repo

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	perr "lookalike/internal/platform/errors"
)

func TestParseReferences(t *testing.T) {
	got, err := ParseReferences([]string{" orders:customer_id ", "", "invoices : billed_to"})
	if err != nil {
		t.Fatalf("ParseReferences error: %v", err)
	}
	want := []Reference{{Table: "orders", Column: "customer_id"}, {Table: "invoices", Column: "billed_to"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseReferences_Invalid(t *testing.T) {
	for _, in := range []string{"orders", "orders:", ":id"} {
		if _, err := ParseReferences([]string{in}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("ParseReferences(%q) err = %v, want invalid argument", in, err)
		}
	}
}

func TestMigrations_Embedded(t *testing.T) {
	for _, name := range []string{
		"0001_customers.up.sql",
		"0001_customers.down.sql",
		"0002_fuzzy_name_search.up.sql",
		"0002_fuzzy_name_search.down.sql",
		"0003_leases.up.sql",
		"0003_leases.down.sql",
	} {
		if _, err := Migrations.ReadFile(MigrationsDir + "/" + name); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}
