package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"nooralanwar/invoicing/domain"
)

// WriteMonthlyStatement writes the flattened purchase ledger to a
// spreadsheet, one row per customer-month.
func WriteMonthlyStatement(entries []domain.MonthlyEntry, filename string) error {
	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Customer")
	f.SetCellValue(sheet, "B1", "Month")
	f.SetCellValue(sheet, "C1", "Period")
	f.SetCellValue(sheet, "D1", "Amount")

	for i, entry := range entries {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+row, entry.CustomerName)
		f.SetCellValue(sheet, "B"+row, entry.MonthKey)
		f.SetCellValue(sheet, "C"+row, entry.MonthLabel)
		f.SetCellValue(sheet, "D"+row, entry.Amount.InexactFloat64())
	}

	return f.SaveAs(filename)
}
