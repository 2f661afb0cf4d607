// Package status derives a record's completion state from its four status
// fields. Everything here is a pure function; dashboard counts, section
// membership and the record card color all go through these rules.
package status

import (
	"time"

	"github.com/ajakgroup/pqtrack/internal/models"
)

// Bucket is the display bucket for a record, in priority order.
type Bucket int

const (
	Complete Bucket = iota
	IncompleteUrgent
	IncompleteOther
	Neutral
)

func (b Bucket) String() string {
	switch b {
	case Complete:
		return "complete"
	case IncompleteUrgent:
		return "incomplete_urgent"
	case IncompleteOther:
		return "incomplete_other"
	default:
		return "neutral"
	}
}

const delayThreshold = 48 * time.Hour

// IsComplete is the single authoritative completion rule: shipping bill in,
// PQ certificate received, and the permit copy either received or not
// needed. Every other completion check must delegate here.
func IsComplete(r *models.PQRecord) bool {
	return r.ShippingBillReceived == models.Yes &&
		r.PQStatus == models.PQReceived &&
		(r.PermitCopyStatus == models.PermitReceived || r.PermitCopyStatus == models.PermitNotRequired)
}

// ClassifyColor picks the display bucket. The order of the checks is the
// priority order: a pending PQ flags the record regardless of the other
// fields.
func ClassifyColor(r *models.PQRecord) Bucket {
	if r.PQStatus == models.PQPending {
		return IncompleteUrgent
	}
	if IsComplete(r) {
		return Complete
	}
	if r.ShippingBillReceived == models.No ||
		(r.ShippingBillReceived == models.Yes &&
			r.PQStatus == models.PQReceived &&
			r.PermitCopyStatus == models.PermitNotReceived) {
		return IncompleteUrgent
	}
	// Only reachable with field values outside the declared enums.
	return Neutral
}

// IsDelayed reports whether a still-pending record is older than 48 hours.
// Recomputed on every read, never persisted.
func IsDelayed(createdAtMillis int64, pqStatus string) bool {
	return isDelayedAt(createdAtMillis, pqStatus, time.Now())
}

func isDelayedAt(createdAtMillis int64, pqStatus string, now time.Time) bool {
	if pqStatus != models.PQPending {
		return false
	}
	return now.Sub(time.UnixMilli(createdAtMillis)) > delayThreshold
}

// HoursElapsed returns the whole hours since the record was created, for
// display next to the delayed badge.
func HoursElapsed(createdAtMillis int64) int {
	return hoursElapsedAt(createdAtMillis, time.Now())
}

func hoursElapsedAt(createdAtMillis int64, now time.Time) int {
	return int(now.Sub(time.UnixMilli(createdAtMillis)).Hours())
}
