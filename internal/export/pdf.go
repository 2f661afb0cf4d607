package export

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"github.com/ajakgroup/pqtrack/internal/models"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Date", 22},
	{"Shipper", 44},
	{"Buyer", 44},
	{"Invoice #", 30},
	{"Commodity", 40},
	{"LEO Copy", 18},
	{"PQ Status", 20},
	{"PQ Hardcopy", 26},
	{"Country", 28},
}

// PDF renders the records as a paginated landscape table.
func PDF(recs []models.PQRecord) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.SetXY(14, 10)
	pdf.Cell(0, 8, "PQ Certificate Tracker - Records")

	y := 25.0
	drawPDFHeader(pdf, y)
	y += 7

	pdf.SetFont("Arial", "", 7)
	for i := range recs {
		r := &recs[i]

		// A4 landscape is 210mm tall; leave a bottom margin.
		if y > 195 {
			pdf.AddPage()
			y = 15
			drawPDFHeader(pdf, y)
			y += 7
			pdf.SetFont("Arial", "", 7)
		}

		commodity := r.Commodity
		if len(commodity) > 20 {
			commodity = commodity[:20] + "..."
		}

		cells := []string{
			r.Date,
			r.ShipperName,
			r.Buyer,
			r.InvoiceNumber,
			commodity,
			string(r.ShippingBillReceived),
			r.PQStatus,
			hardcopyOrDefault(r),
			r.DestinationPort,
		}

		pdf.SetXY(14, y)
		for c, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, cells[c], "1", 0, "L", false, 0, "")
		}
		y += 6
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawPDFHeader(pdf *gofpdf.Fpdf, y float64) {
	pdf.SetFont("Arial", "B", 7)
	pdf.SetFillColor(59, 130, 246)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(14, y)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}
