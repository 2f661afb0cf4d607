// Package records holds the filter engine and the persistent store for PQ
// records. The engine is a pure computation over an in-memory record list;
// callers own persistence and mutation.
package records

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ajakgroup/pqtrack/internal/models"
	"github.com/ajakgroup/pqtrack/internal/status"
)

// Section is one of the four dashboard groupings.
type Section string

const (
	SectionAll             Section = "all"
	SectionPending         Section = "pending"
	SectionCompleted       Section = "completed"
	SectionHardcopyMissing Section = "hardcopyMissing"
)

// Query is the full filter state for one listing request. Empty fields
// impose no constraint.
type Query struct {
	Section   Section
	Search    string
	Filters   map[string]string
	DateStart string
	DateEnd   string
	SortBy    string
	SortDesc  bool
}

// Stats are the dashboard badge counts, always computed over the full
// unfiltered record set.
type Stats struct {
	Total           int `json:"total"`
	TotalThisMonth  int `json:"totalThisMonth"`
	Pending         int `json:"pending"`
	Completed       int `json:"completed"`
	HardcopyMissing int `json:"hardcopyMissing"`
}

// Apply evaluates every active criterion (section AND free-text search AND
// exact filters AND date range) and returns the matching records, sorted.
// The input slice is left untouched.
func Apply(recs []models.PQRecord, q Query) []models.PQRecord {
	if q.Section == "" {
		q.Section = SectionAll
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
		q.SortDesc = true
	}

	out := make([]models.PQRecord, 0, len(recs))
	for _, r := range recs {
		if !matchesSection(&r, q.Section) {
			continue
		}
		if !matchesSearch(&r, q.Search) {
			continue
		}
		if !matchesFilters(&r, q.Filters) {
			continue
		}
		if !matchesDateRange(&r, q.DateStart, q.DateEnd) {
			continue
		}
		out = append(out, r)
	}

	sortRecords(out, q.SortBy, q.SortDesc)
	return out
}

// Counts computes the badge counts. Pending and completed partition the full
// set by the single completion rule.
func Counts(recs []models.PQRecord) Stats {
	return countsAt(recs, time.Now())
}

func countsAt(recs []models.PQRecord, now time.Time) Stats {
	s := Stats{Total: len(recs)}
	for i := range recs {
		r := &recs[i]
		if status.IsComplete(r) {
			s.Completed++
		} else {
			s.Pending++
		}
		if hardcopyMissing(r) {
			s.HardcopyMissing++
		}
		if d, err := time.Parse("2006-01-02", r.Date); err == nil {
			if d.Year() == now.Year() && d.Month() == now.Month() {
				s.TotalThisMonth++
			}
		}
	}
	return s
}

func matchesSection(r *models.PQRecord, section Section) bool {
	switch section {
	case SectionPending:
		// Every record not satisfying the completion rule, NOT just
		// pqStatus == Pending.
		return !status.IsComplete(r)
	case SectionCompleted:
		return status.IsComplete(r)
	case SectionHardcopyMissing:
		return hardcopyMissing(r)
	default:
		return true
	}
}

func hardcopyMissing(r *models.PQRecord) bool {
	return r.PQHardcopy == "" || r.PQHardcopy == models.HardcopyNotReceived
}

func matchesSearch(r *models.PQRecord, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, v := range stringValues(r) {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// stringValues returns every string-valued field of the record, enum fields
// and id included, matching what the search bar scans.
func stringValues(r *models.PQRecord) []string {
	return []string{
		r.ID,
		r.Date,
		r.ShipperName,
		r.Buyer,
		r.InvoiceNumber,
		r.Commodity,
		string(r.ShippingBillReceived),
		r.PQStatus,
		r.PQHardcopy,
		r.PermitCopyStatus,
		r.DestinationPort,
		r.Remarks,
	}
}

func matchesFilters(r *models.PQRecord, filters map[string]string) bool {
	for key, want := range filters {
		if want == "" {
			continue
		}
		if FieldValue(r, key) != want {
			return false
		}
	}
	return true
}

func matchesDateRange(r *models.PQRecord, start, end string) bool {
	// ISO dates are fixed-width, so lexicographic comparison is correct.
	if start != "" && r.Date < start {
		return false
	}
	if end != "" && r.Date > end {
		return false
	}
	return true
}

// FieldValue resolves a record field by its API name. Unknown keys resolve
// to the empty string, which never matches a non-empty filter.
func FieldValue(r *models.PQRecord, key string) string {
	switch key {
	case "id":
		return r.ID
	case "date":
		return r.Date
	case "shipperName":
		return r.ShipperName
	case "buyer":
		return r.Buyer
	case "invoiceNumber":
		return r.InvoiceNumber
	case "commodity":
		return r.Commodity
	case "shippingBillReceived":
		return string(r.ShippingBillReceived)
	case "pqStatus":
		return r.PQStatus
	case "pqHardcopy":
		return r.PQHardcopy
	case "permitCopyStatus":
		return r.PermitCopyStatus
	case "destinationPort":
		return r.DestinationPort
	case "remarks":
		return r.Remarks
	default:
		return ""
	}
}

func sortRecords(recs []models.PQRecord, sortBy string, desc bool) {
	col := collate.New(language.English)

	less := func(a, b *models.PQRecord) bool {
		switch sortBy {
		case "createdAt":
			return a.CreatedAt < b.CreatedAt
		case "date":
			// Date-aware comparison when the date column is the explicit
			// sort key; unparseable values fall back to the string order.
			ta, errA := time.Parse("2006-01-02", a.Date)
			tb, errB := time.Parse("2006-01-02", b.Date)
			if errA == nil && errB == nil {
				return ta.Before(tb)
			}
			return a.Date < b.Date
		default:
			return col.CompareString(FieldValue(a, sortBy), FieldValue(b, sortBy)) < 0
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if desc {
			return less(&recs[j], &recs[i])
		}
		return less(&recs[i], &recs[j])
	})
}
