package records

import (
	"testing"
	"time"

	"github.com/ajakgroup/pqtrack/internal/models"
)

func testRecords() []models.PQRecord {
	return []models.PQRecord{
		{
			ID:                   "rec-1",
			Date:                 "2024-01-15",
			ShipperName:          "Acme Exports",
			Buyer:                "Sunrise Trading",
			InvoiceNumber:        "INV-001",
			Commodity:            "Basmati Rice",
			ShippingBillReceived: models.Yes,
			PQStatus:             models.PQReceived,
			PQHardcopy:           models.HardcopyReceived,
			PermitCopyStatus:     models.PermitNotRequired,
			DestinationPort:      "Malaysia",
			CreatedAt:            100,
		},
		{
			ID:                   "rec-2",
			Date:                 "2024-02-10",
			ShipperName:          "Green Valley",
			Buyer:                "Pacific Foods",
			InvoiceNumber:        "INV-002",
			Commodity:            "Pomegranates",
			ShippingBillReceived: models.Yes,
			PQStatus:             models.PQPending,
			PQHardcopy:           models.HardcopyNotReceived,
			PermitCopyStatus:     models.PermitNotReceived,
			DestinationPort:      "Netherlands",
			CreatedAt:            300,
		},
		{
			ID:                   "rec-3",
			Date:                 "2024-02-25",
			ShipperName:          "Deccan Spices",
			Buyer:                "Euro Imports",
			InvoiceNumber:        "INV-003",
			Commodity:            "Turmeric",
			ShippingBillReceived: models.No,
			PQStatus:             models.PQReceived,
			PQHardcopy:           "",
			PermitCopyStatus:     models.PermitReceived,
			DestinationPort:      "Malaysia",
			CreatedAt:            200,
		},
	}
}

func ids(recs []models.PQRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestApplyDefaultSortNewestFirst(t *testing.T) {
	got := Apply(testRecords(), Query{})
	want := []string{"rec-2", "rec-3", "rec-1"}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Fatalf("default order = %v, want %v", ids(got), want)
		}
	}
}

func TestApplySections(t *testing.T) {
	recs := testRecords()

	completed := Apply(recs, Query{Section: SectionCompleted})
	if len(completed) != 1 || completed[0].ID != "rec-1" {
		t.Errorf("completed section = %v, want [rec-1]", ids(completed))
	}

	// Pending means "not complete", not pqStatus == Pending: rec-3 has a
	// received PQ but no shipping bill and still counts.
	pending := Apply(recs, Query{Section: SectionPending})
	if len(pending) != 2 {
		t.Errorf("pending section = %v, want 2 records", ids(pending))
	}

	// An empty hardcopy field counts as missing.
	missing := Apply(recs, Query{Section: SectionHardcopyMissing})
	if len(missing) != 2 {
		t.Errorf("hardcopyMissing section = %v, want 2 records", ids(missing))
	}
}

func TestApplySearch(t *testing.T) {
	recs := testRecords()

	got := Apply(recs, Query{Search: "basmati"})
	if len(got) != 1 || got[0].ID != "rec-1" {
		t.Errorf("search basmati = %v, want [rec-1]", ids(got))
	}

	// Enum fields and the id are searchable too.
	got = Apply(recs, Query{Search: "rec-3"})
	if len(got) != 1 || got[0].ID != "rec-3" {
		t.Errorf("search rec-3 = %v, want [rec-3]", ids(got))
	}

	got = Apply(recs, Query{Search: "no such thing"})
	if len(got) != 0 {
		t.Errorf("search with no matches = %v, want empty", ids(got))
	}
}

func TestApplyFiltersAreConjunctive(t *testing.T) {
	recs := testRecords()

	got := Apply(recs, Query{Filters: map[string]string{"destinationPort": "Malaysia"}})
	if len(got) != 2 {
		t.Fatalf("destination filter = %v, want 2 records", ids(got))
	}

	got = Apply(recs, Query{Filters: map[string]string{
		"destinationPort": "Malaysia",
		"pqStatus":        models.PQReceived,
		"shipperName":     "Acme Exports",
	}})
	if len(got) != 1 || got[0].ID != "rec-1" {
		t.Errorf("combined filters = %v, want [rec-1]", ids(got))
	}

	// Empty filter values impose no constraint.
	got = Apply(recs, Query{Filters: map[string]string{"buyer": ""}})
	if len(got) != 3 {
		t.Errorf("empty filter value = %v, want all 3", ids(got))
	}
}

func TestApplyFilterOrderIrrelevant(t *testing.T) {
	// Section-then-search must select the same records as search-then-section.
	recs := testRecords()

	afterSection := Apply(recs, Query{Section: SectionPending})
	sectionThenSearch := Apply(afterSection, Query{Search: "malaysia"})

	afterSearch := Apply(recs, Query{Search: "malaysia"})
	searchThenSection := Apply(afterSearch, Query{Section: SectionPending})

	combined := Apply(recs, Query{Section: SectionPending, Search: "malaysia"})

	a, b, c := ids(sectionThenSearch), ids(searchThenSection), ids(combined)
	if len(a) != len(b) || len(a) != len(c) {
		t.Fatalf("orderings disagree: %v vs %v vs %v", a, b, c)
	}
	for i := range a {
		if a[i] != b[i] || a[i] != c[i] {
			t.Fatalf("orderings disagree: %v vs %v vs %v", a, b, c)
		}
	}
}

func TestApplyDateRange(t *testing.T) {
	recs := testRecords()

	got := Apply(recs, Query{DateStart: "2024-02-01", DateEnd: "2024-02-29"})
	if len(got) != 2 {
		t.Fatalf("february range = %v, want 2 records", ids(got))
	}
	for _, r := range got {
		if r.Date < "2024-02-01" || r.Date > "2024-02-29" {
			t.Errorf("record %s date %s outside range", r.ID, r.Date)
		}
	}

	// Bounds are inclusive.
	got = Apply(recs, Query{DateStart: "2024-02-10", DateEnd: "2024-02-10"})
	if len(got) != 1 || got[0].ID != "rec-2" {
		t.Errorf("single-day range = %v, want [rec-2]", ids(got))
	}
}

func TestApplySortByField(t *testing.T) {
	recs := testRecords()

	got := Apply(recs, Query{SortBy: "shipperName"})
	want := []string{"rec-1", "rec-3", "rec-2"}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Fatalf("shipperName asc = %v, want %v", ids(got), want)
		}
	}

	got = Apply(recs, Query{SortBy: "date", SortDesc: true})
	if got[0].ID != "rec-3" || got[2].ID != "rec-1" {
		t.Errorf("date desc = %v, want rec-3 first, rec-1 last", ids(got))
	}
}

func TestCounts(t *testing.T) {
	recs := testRecords()
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	s := countsAt(recs, now)
	if s.Total != 3 {
		t.Errorf("Total = %d, want 3", s.Total)
	}
	if s.Pending+s.Completed != s.Total {
		t.Errorf("Pending (%d) + Completed (%d) != Total (%d)", s.Pending, s.Completed, s.Total)
	}
	if s.Completed != 1 {
		t.Errorf("Completed = %d, want 1", s.Completed)
	}
	if s.HardcopyMissing != 2 {
		t.Errorf("HardcopyMissing = %d, want 2", s.HardcopyMissing)
	}
	if s.TotalThisMonth != 2 {
		t.Errorf("TotalThisMonth = %d, want 2", s.TotalThisMonth)
	}
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	recs := testRecords()
	Apply(recs, Query{SortBy: "shipperName"})
	if recs[0].ID != "rec-1" || recs[1].ID != "rec-2" || recs[2].ID != "rec-3" {
		t.Errorf("input slice reordered: %v", ids(recs))
	}
}

func TestFieldValueUnknownKey(t *testing.T) {
	r := testRecords()[0]
	if got := FieldValue(&r, "bogus"); got != "" {
		t.Errorf("FieldValue(bogus) = %q, want empty", got)
	}
}
