package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Subscriptions"

// XLSX exports the full listing plus cost totals to a timestamped workbook.
func (g *Generator) XLSX(data Data) (string, error) {
	if err := g.ensureOutDir(); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	path := g.artifactPath(data, "subscriptions", "xlsx")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Category", "Monthly Cost", "Renewal Date", "Payment Method"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return "", fmt.Errorf("write header: %w", err)
		}
	}

	for row, s := range data.Listing {
		values := []any{s.ID, s.Name, s.Category, s.Cost.Dollars(), s.RenewalDate, s.PaymentMethod}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return "", fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return "", fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	// Totals block two rows below the listing.
	base := len(data.Listing) + 3
	totals := [][2]any{
		{"Total Monthly Cost", data.Monthly.Dollars()},
		{"Total Annual Cost", data.Annual.Dollars()},
	}
	for i, row := range totals {
		labelCell, _ := excelize.CoordinatesToCellName(1, base+i)
		valueCell, _ := excelize.CoordinatesToCellName(4, base+i)
		if err := f.SetCellValue(xlsxSheet, labelCell, row[0]); err != nil {
			return "", fmt.Errorf("write totals: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, valueCell, row[1]); err != nil {
			return "", fmt.Errorf("write totals: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	g.log.Info("XLSX export saved", "path", path, "rows", len(data.Listing))
	return path, nil
}
