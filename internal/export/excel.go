// Package export serializes a filtered, sorted record list to downloadable
// files. Both writers are one-way sinks over the engine's output.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ajakgroup/pqtrack/internal/models"
)

// SheetName is the single sheet the Excel export writes to.
const SheetName = "PQ Records"

var excelHeaders = []interface{}{
	"Date", "Shipper Name", "Buyer Name", "Invoice Number", "Commodity",
	"LEO Copy", "PQ Status", "PQ Hardcopy", "Permit Copy Status",
	"Destination Country", "Remarks",
}

// Excel writes the records to a single-sheet xlsx workbook.
func Excel(recs []models.PQRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &excelHeaders); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i := range recs {
		r := &recs[i]
		row := []interface{}{
			r.Date,
			r.ShipperName,
			r.Buyer,
			r.InvoiceNumber,
			r.Commodity,
			string(r.ShippingBillReceived),
			r.PQStatus,
			hardcopyOrDefault(r),
			r.PermitCopyStatus,
			r.DestinationPort,
			r.Remarks,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Old records can still carry an empty hardcopy field when exported without
// passing through the store's load hook.
func hardcopyOrDefault(r *models.PQRecord) string {
	if r.PQHardcopy == "" {
		return models.HardcopyNotReceived
	}
	return r.PQHardcopy
}
