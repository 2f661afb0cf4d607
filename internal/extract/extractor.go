// Package extract implements the "auto-fill from file" heuristic: given an
// uploaded workbook it guesses which column holds each known form field and
// proposes values from the first data row. Matching is best-effort by
// design; an unmatched field is a skip, not an error.
package extract

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Fields is the subset of form fields the extractor can propose values for.
type Fields struct {
	Date            string `json:"date"`
	ShipperName     string `json:"shipperName"`
	Buyer           string `json:"buyer"`
	InvoiceNumber   string `json:"invoiceNumber"`
	DestinationPort string `json:"destinationPort"`
	Commodity       string `json:"commodity"`
}

// Status of one extraction attempt.
type Status string

const (
	StatusSuccess          Status = "success"
	StatusError            Status = "error"
	StatusInsufficientData Status = "insufficient_data"
)

// Result reports which fields were filled and why extraction stopped.
type Result struct {
	Status          Status   `json:"status"`
	Message         string   `json:"message"`
	ExtractedFields []string `json:"extractedFields,omitempty"`
}

// Candidate header patterns per field, in priority order. The order is part
// of the observable behavior (the first pattern with any matching header
// wins, before header position is considered) and must not be reshuffled.
var (
	datePatterns = []string{
		"date", "shipment date", "dispatch date", "shipping date", "invoice date",
		"shipmentdate", "dispatchdate", "shippingdate", "invoicedate",
		"ship date", "export date", "departure date",
	}
	shipperPatterns = []string{
		"shipper", "exporter", "seller", "shipper name", "exporter name",
		"shippername", "exportername", "shipping company", "export company",
	}
	buyerPatterns = []string{
		"buyer", "importer", "consignee", "buyer name", "importer name",
		"buyername", "importername", "importing company", "import company",
	}
	invoicePatterns = []string{
		"invoice", "invoice number", "invoice no", "invoice #", "invoiceno",
		"invoicenumber", "inv no", "inv number", "bill no", "bill number",
	}
	destinationPatterns = []string{
		"destination", "country", "destination country", "dest country",
		"discharge port", "final destination", "delivery country", "import country",
		"receiving country", "target country", "port of discharge",
		"destinationcountry", "destcountry", "importcountry", "delivercountry",
	}
	commodityPatterns = []string{
		"commodity", "product", "goods", "description", "item",
		"agro products", "products", "commodity description",
		"agroproducts", "commoditydescription", "product description",
	}
)

// Excel serial day numbers below this are treated as literal values rather
// than dates (40000 ~ mid-2009).
const serialDateFloor = 40000

// FromWorkbook parses an uploaded workbook and extracts from its first
// sheet. An unreadable workbook returns an error and leaves the current
// fields untouched.
func FromWorkbook(r io.Reader, current Fields) (Fields, Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return current, Result{}, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return current, Result{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return current, Result{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	fields, result := Extract(rows, current)
	return fields, result, nil
}

// Extract runs the heuristic over already-parsed rows: the first row is the
// header row, the second the data row. Fields with no matching column, an
// empty cell or an unparseable date keep their current values.
func Extract(rows [][]string, current Fields) (Fields, Result) {
	if len(rows) < 2 {
		return current, Result{
			Status:  StatusInsufficientData,
			Message: "Excel file must contain at least a header row and one data row.",
		}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	dataRow := rows[1]

	fields := current
	var extracted []string

	if v := cellAt(dataRow, findColumn(headers, datePatterns)); v != "" {
		if date, ok := parseCellDate(v); ok {
			fields.Date = date
			extracted = append(extracted, "Shipment Date")
		}
	}
	if v := cellAt(dataRow, findColumn(headers, shipperPatterns)); v != "" {
		fields.ShipperName = v
		extracted = append(extracted, "Shipper Name")
	}
	if v := cellAt(dataRow, findColumn(headers, buyerPatterns)); v != "" {
		fields.Buyer = v
		extracted = append(extracted, "Buyer Name")
	}
	if v := cellAt(dataRow, findColumn(headers, invoicePatterns)); v != "" {
		fields.InvoiceNumber = v
		extracted = append(extracted, "Invoice Number")
	}
	if v := cellAt(dataRow, findColumn(headers, destinationPatterns)); v != "" {
		fields.DestinationPort = v
		extracted = append(extracted, "Destination Country")
	}
	if v := cellAt(dataRow, findColumn(headers, commodityPatterns)); v != "" {
		fields.Commodity = v
		extracted = append(extracted, "Commodity")
	}

	if len(extracted) == 0 {
		return current, Result{
			Status:  StatusError,
			Message: "No matching data fields found. Available headers: " + strings.Join(headers, ", "),
		}
	}

	return fields, Result{
		Status:          StatusSuccess,
		Message:         fmt.Sprintf("Extracted %d field(s) from the workbook.", len(extracted)),
		ExtractedFields: extracted,
	}
}

// findColumn returns the index of the first header matched by the first
// pattern that matches anything. A header matches a pattern when it equals
// it, contains it, or contains it after both are stripped of
// non-alphanumeric characters.
func findColumn(headers []string, patterns []string) int {
	for _, pattern := range patterns {
		cleanPattern := stripNonAlnum(pattern)
		for i, h := range headers {
			if h == pattern || strings.Contains(h, pattern) ||
				strings.Contains(stripNonAlnum(h), cleanPattern) {
				return i
			}
		}
	}
	return -1
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, c := range s {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// dateLayouts tried for non-serial cells, most common spreadsheet formats
// first. US month-first variants precede day-first ones to match how the
// original parsed free-form dates.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// parseCellDate handles both Excel serial day numbers and textual dates,
// returning an ISO date string. A false return means the field is skipped.
func parseCellDate(raw string) (string, bool) {
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > serialDateFloor {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", false
		}
		return t.Format("2006-01-02"), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
