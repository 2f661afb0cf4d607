package status

import (
	"testing"
	"time"

	"github.com/ajakgroup/pqtrack/internal/models"
)

func record(sb models.YesNo, pq, permit string) *models.PQRecord {
	return &models.PQRecord{
		ShippingBillReceived: sb,
		PQStatus:             pq,
		PermitCopyStatus:     permit,
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name   string
		sb     models.YesNo
		pq     string
		permit string
		want   bool
	}{
		{"all received", models.Yes, models.PQReceived, models.PermitReceived, true},
		{"permit not required", models.Yes, models.PQReceived, models.PermitNotRequired, true},
		{"shipping bill missing", models.No, models.PQReceived, models.PermitReceived, false},
		{"pq pending", models.Yes, models.PQPending, models.PermitReceived, false},
		{"permit not received", models.Yes, models.PQReceived, models.PermitNotReceived, false},
		{"nothing received", models.No, models.PQPending, models.PermitNotReceived, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsComplete(record(tt.sb, tt.pq, tt.permit)); got != tt.want {
				t.Errorf("IsComplete(%s, %s, %s) = %v, want %v", tt.sb, tt.pq, tt.permit, got, tt.want)
			}
		})
	}
}

func TestClassifyColorPendingDominates(t *testing.T) {
	// A pending PQ flags the record even when every other field looks done.
	r := record(models.Yes, models.PQPending, models.PermitReceived)
	if got := ClassifyColor(r); got != IncompleteUrgent {
		t.Errorf("ClassifyColor with pending PQ = %v, want IncompleteUrgent", got)
	}
}

func TestClassifyColor(t *testing.T) {
	tests := []struct {
		name   string
		sb     models.YesNo
		pq     string
		permit string
		want   Bucket
	}{
		{"complete", models.Yes, models.PQReceived, models.PermitReceived, Complete},
		{"complete without permit", models.Yes, models.PQReceived, models.PermitNotRequired, Complete},
		{"no shipping bill", models.No, models.PQReceived, models.PermitReceived, IncompleteUrgent},
		{"only permit missing", models.Yes, models.PQReceived, models.PermitNotReceived, IncompleteUrgent},
		{"out of range values", models.Yes, "Unknown", models.PermitReceived, Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyColor(record(tt.sb, tt.pq, tt.permit)); got != tt.want {
				t.Errorf("ClassifyColor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDelayed(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		age     time.Duration
		pq      string
		delayed bool
	}{
		{"pending past threshold", 49 * time.Hour, models.PQPending, true},
		{"pending exactly at threshold", 48 * time.Hour, models.PQPending, false},
		{"pending fresh", time.Hour, models.PQPending, false},
		{"received never delayed", 200 * time.Hour, models.PQReceived, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createdAt := now.Add(-tt.age).UnixMilli()
			if got := isDelayedAt(createdAt, tt.pq, now); got != tt.delayed {
				t.Errorf("isDelayedAt(age=%v, pq=%s) = %v, want %v", tt.age, tt.pq, got, tt.delayed)
			}
		})
	}
}

func TestHoursElapsed(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	createdAt := now.Add(-50*time.Hour - 30*time.Minute).UnixMilli()

	// Fractions of an hour are floored.
	if got := hoursElapsedAt(createdAt, now); got != 50 {
		t.Errorf("hoursElapsedAt = %d, want 50", got)
	}
}

func TestBucketString(t *testing.T) {
	if Complete.String() != "complete" {
		t.Errorf("Complete.String() = %q", Complete.String())
	}
	if IncompleteUrgent.String() != "incomplete_urgent" {
		t.Errorf("IncompleteUrgent.String() = %q", IncompleteUrgent.String())
	}
	if Neutral.String() != "neutral" {
		t.Errorf("Neutral.String() = %q", Neutral.String())
	}
}
