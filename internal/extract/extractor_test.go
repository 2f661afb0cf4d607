package extract

import (
	"strings"
	"testing"
)

func TestExtractMatchesHeaders(t *testing.T) {
	rows := [][]string{
		{"Shipment Date", "Exporter Name", "Invoice No", "Destination Country"},
		{"45300", "Acme Exports", "INV-001", "Malaysia"},
	}

	fields, result := Extract(rows, Fields{})

	if result.Status != StatusSuccess {
		t.Fatalf("status = %s, want success (message: %s)", result.Status, result.Message)
	}
	if len(result.ExtractedFields) != 4 {
		t.Errorf("extracted %d fields, want 4: %v", len(result.ExtractedFields), result.ExtractedFields)
	}
	if fields.ShipperName != "Acme Exports" {
		t.Errorf("ShipperName = %q, want Acme Exports", fields.ShipperName)
	}
	if fields.InvoiceNumber != "INV-001" {
		t.Errorf("InvoiceNumber = %q, want INV-001", fields.InvoiceNumber)
	}
	if fields.DestinationPort != "Malaysia" {
		t.Errorf("DestinationPort = %q, want Malaysia", fields.DestinationPort)
	}
	// 45300 is an Excel serial day number, not a literal string.
	if fields.Date != "2024-01-09" {
		t.Errorf("Date = %q, want 2024-01-09", fields.Date)
	}
}

func TestExtractNoMatchesReportsHeaders(t *testing.T) {
	rows := [][]string{
		{"Col1", "Col2"},
		{"a", "b"},
	}
	current := Fields{ShipperName: "Keep Me"}

	fields, result := Extract(rows, current)

	if result.Status != StatusError {
		t.Fatalf("status = %s, want error", result.Status)
	}
	if !strings.Contains(result.Message, "col1") || !strings.Contains(result.Message, "col2") {
		t.Errorf("message should list the available headers, got %q", result.Message)
	}
	if fields != current {
		t.Errorf("fields changed on failed extraction: %+v", fields)
	}
}

func TestExtractInsufficientData(t *testing.T) {
	_, result := Extract([][]string{{"Date", "Shipper"}}, Fields{})
	if result.Status != StatusInsufficientData {
		t.Errorf("status = %s, want insufficient_data", result.Status)
	}

	_, result = Extract(nil, Fields{})
	if result.Status != StatusInsufficientData {
		t.Errorf("status for nil rows = %s, want insufficient_data", result.Status)
	}
}

func TestExtractPatternPriorityBeatsColumnOrder(t *testing.T) {
	// "shipper" is an earlier pattern than "exporter", so the later column
	// wins the shipper field.
	rows := [][]string{
		{"Exporter", "Shipper"},
		{"Second Choice", "First Choice"},
	}

	fields, result := Extract(rows, Fields{})
	if result.Status != StatusSuccess {
		t.Fatalf("status = %s, want success", result.Status)
	}
	if fields.ShipperName != "First Choice" {
		t.Errorf("ShipperName = %q, want First Choice (pattern priority)", fields.ShipperName)
	}
}

func TestExtractFuzzyHeaderMatch(t *testing.T) {
	// "Invoice_No." only matches after stripping non-alphanumerics.
	rows := [][]string{
		{"Invoice_No."},
		{"INV-042"},
	}

	fields, result := Extract(rows, Fields{})
	if result.Status != StatusSuccess {
		t.Fatalf("status = %s, want success", result.Status)
	}
	if fields.InvoiceNumber != "INV-042" {
		t.Errorf("InvoiceNumber = %q, want INV-042", fields.InvoiceNumber)
	}
}

func TestExtractSkipsEmptyCells(t *testing.T) {
	rows := [][]string{
		{"Shipper", "Buyer"},
		{"Acme", ""},
	}
	current := Fields{Buyer: "Existing Buyer"}

	fields, result := Extract(rows, current)
	if result.Status != StatusSuccess {
		t.Fatalf("status = %s, want success", result.Status)
	}
	if fields.Buyer != "Existing Buyer" {
		t.Errorf("Buyer = %q, empty cell should leave the current value", fields.Buyer)
	}
	for _, f := range result.ExtractedFields {
		if f == "Buyer Name" {
			t.Errorf("Buyer Name reported extracted from an empty cell")
		}
	}
}

func TestParseCellDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2024-03-05", "2024-03-05", true},
		{"03/05/2024", "2024-03-05", true},
		{"Jan 2, 2024", "2024-01-02", true},
		{"45300", "2024-01-09", true},
		{"123", "", false},
		{"not a date", "", false},
	}

	for _, tt := range tests {
		got, ok := parseCellDate(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseCellDate(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFindColumn(t *testing.T) {
	headers := []string{"something", "invoice number", "invoice"}

	// "invoice" is the first pattern and matches both columns; the earlier
	// column wins within one pattern.
	if got := findColumn(headers, invoicePatterns); got != 1 {
		t.Errorf("findColumn = %d, want 1", got)
	}

	if got := findColumn(headers, []string{"missing"}); got != -1 {
		t.Errorf("findColumn for absent pattern = %d, want -1", got)
	}
}
