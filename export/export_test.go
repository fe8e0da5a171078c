package export

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nooralanwar/invoicing/domain"
	"nooralanwar/invoicing/invoice"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		number   string
		customer string
		want     string
	}{
		{"6005", "Acme", "Invoice_6005_Acme.pdf"},
		{"6005", "Basma Traders", "Invoice_6005_Basma_Traders.pdf"},
		{"6005", "", "Invoice_6005_Customer.pdf"},
		{"6005", "   ", "Invoice_6005_Customer.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.number, tt.customer))
	}
}

type stubRenderer struct {
	heightPx int
}

func (r *stubRenderer) Render(context.Context, *invoice.Document) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 620, r.heightPx))
	for y := 0; y < r.heightPx; y++ {
		for x := 0; x < 620; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img, nil
}

func TestPDFExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	exporter := NewPDFExporter(&stubRenderer{heightPx: 877}, dir, nil)

	doc := invoice.New(domain.CompanyInfo{Name: "NOOR-AL-ANWAR"})
	doc.SetCustomer(domain.CustomerInfo{Name: "Acme"})

	path, err := exporter.Export(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Invoice_6005_Acme.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPDFExportSplitsTallRenders(t *testing.T) {
	dir := t.TempDir()
	// Roughly two and a half A4 pages at the normalized width.
	exporter := NewPDFExporter(&stubRenderer{heightPx: 2200}, dir, nil)

	doc := invoice.New(domain.CompanyInfo{})
	path, err := exporter.Export(context.Background(), doc)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteMonthlyStatement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	entries := []domain.MonthlyEntry{
		{CustomerName: "Acme", MonthKey: "2024-03", MonthLabel: "Mar 2024 (1st - 31th)", Amount: decimal.RequireFromString("210.5")},
		{CustomerName: "Basma Traders", MonthKey: "2024-01", MonthLabel: "Jan 2024 (1st - 31th)", Amount: decimal.NewFromInt(500)},
	}

	require.NoError(t, WriteMonthlyStatement(entries, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Customer", header)

	name, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Acme", name)

	amount, err := f.GetCellValue("Sheet1", "D2")
	require.NoError(t, err)
	assert.Equal(t, "210.5", amount)
}
