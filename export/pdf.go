package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"

	"nooralanwar/invoicing/invoice"
)

// Renderer turns the on-screen invoice into a bitmap. Rendering belongs to
// the host application; the exporter only lays the bitmap onto A4 pages.
type Renderer interface {
	Render(ctx context.Context, doc *invoice.Document) (image.Image, error)
}

const (
	a4WidthMM  = 210.0
	a4HeightMM = 297.0

	// Pixel width the bitmap is normalized to before pagination,
	// roughly 150 dpi across the 210mm reference width.
	renderWidthPx = 1240
)

type PDFExporter struct {
	renderer Renderer
	outDir   string
	log      *logrus.Logger
}

func NewPDFExporter(renderer Renderer, outDir string, log *logrus.Logger) *PDFExporter {
	if log == nil {
		log = logrus.New()
	}
	return &PDFExporter{renderer: renderer, outDir: outDir, log: log}
}

// Export renders the document, scales the bitmap to the A4 reference width
// and writes it out page by page, splitting by height when the rendered
// form is taller than one page. It returns the written file's path.
func (e *PDFExporter) Export(ctx context.Context, doc *invoice.Document) (string, error) {
	img, err := e.renderer.Render(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}

	scaled := imaging.Resize(img, renderWidthPx, 0, imaging.Lanczos)
	pageRatio := float64(a4HeightMM) / a4WidthMM
	pageHeightPx := int(float64(renderWidthPx) * pageRatio)
	totalHeight := scaled.Bounds().Dy()

	pdf := gofpdf.New("P", "mm", "A4", "")
	for top, pageNo := 0, 1; top < totalHeight; top, pageNo = top+pageHeightPx, pageNo+1 {
		bottom := top + pageHeightPx
		if bottom > totalHeight {
			bottom = totalHeight
		}

		page := imaging.Crop(scaled, image.Rect(0, top, renderWidthPx, bottom))
		var buf bytes.Buffer
		if err := png.Encode(&buf, page); err != nil {
			return "", fmt.Errorf("encode page %d: %w", pageNo, err)
		}

		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		name := fmt.Sprintf("invoice-page-%d", pageNo)
		heightMM := float64(bottom-top) * a4WidthMM / float64(renderWidthPx)

		pdf.AddPage()
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.ImageOptions(name, 0, 0, a4WidthMM, heightMM, false, opts, 0, "")
	}

	path := filepath.Join(e.outDir, Filename(doc.Number(), doc.Customer().Name))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"invoice": doc.Number(),
		"path":    path,
	}).Info("invoice exported")
	return path, nil
}

// Filename derives the export name, Invoice_<number>_<customer>.pdf, with
// "Customer" standing in when no name was entered.
func Filename(number string, customerName string) string {
	name := strings.TrimSpace(customerName)
	if name == "" {
		name = "Customer"
	}
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("Invoice_%s_%s.pdf", number, name)
}
