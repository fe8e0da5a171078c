package export

import (
	"context"

	"github.com/sirupsen/logrus"

	"nooralanwar/invoicing/invoice"
)

// LogPrinter is the fallback print collaborator for environments with no
// platform print dialog attached. It records the finalize and succeeds.
type LogPrinter struct {
	Log *logrus.Logger
}

func (p *LogPrinter) Print(_ context.Context, doc *invoice.Document) error {
	log := p.Log
	if log == nil {
		log = logrus.New()
	}
	log.WithFields(logrus.Fields{
		"invoice":  doc.Number(),
		"customer": doc.Customer().Name,
		"total":    doc.Total().StringFixed(2),
	}).Info("invoice sent to printer")
	return nil
}
