package service

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/receipt"
	"github.com/bukusaku/bukusaku-api/pkg/apperror"
	"github.com/bukusaku/bukusaku-api/pkg/logger"
	"github.com/bukusaku/bukusaku-api/pkg/metrics"
	"github.com/bukusaku/bukusaku-api/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Receipt output formats.
const (
	FormatJSON  = "json"
	FormatHTML  = "html"
	FormatPrint = "print"
	FormatText  = "text"
	FormatPDF   = "pdf"
)

const archiveDir = "receipts"

// ReceiptService renders stored transactions as receipts in every output
// format from the same layout.
type ReceiptService struct {
	transactions *TransactionService
	settings     *SettingsService
	disk         storage.Disk // nil disables archiving
	metrics      *metrics.Metrics
	log          *zap.Logger
	loc          *time.Location

	exporting inFlight
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	transactions *TransactionService,
	settings *SettingsService,
	disk storage.Disk,
	m *metrics.Metrics,
	log *zap.Logger,
	loc *time.Location,
) *ReceiptService {
	if loc == nil {
		loc = time.Local
	}
	return &ReceiptService{
		transactions: transactions,
		settings:     settings,
		disk:         disk,
		metrics:      m,
		log:          log,
		loc:          loc,
	}
}

// Output is a rendered receipt.
type Output struct {
	Format      string
	ContentType string
	FileName    string
	Body        []byte
	Layout      *receipt.Layout
	Receipt     *entity.Receipt
	ArchiveURL  string
}

// LayoutFor builds the layout of doc. A zero width uses the store default.
func (s *ReceiptService) LayoutFor(ctx context.Context, doc *entity.Receipt, widthMM int, mode receipt.Mode) (*receipt.Layout, error) {
	profile, err := s.settings.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if widthMM == 0 {
		widthMM = profile.PaperWidth
	}

	local := *doc
	local.Date = doc.Date.In(s.loc)
	layout, err := receipt.Build(&local, profile, widthMM, mode)
	if err != nil {
		return nil, apperror.Wrap(http.StatusUnprocessableEntity, err.Error(), err)
	}
	return layout, nil
}

// Render produces the receipt of a stored transaction in format. PDF goes
// through Export so that concurrent exports are refused.
func (s *ReceiptService) Render(ctx context.Context, transactionID uuid.UUID, format string, widthMM int) (*Output, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}
	if format == FormatPDF {
		return s.Export(ctx, transactionID, widthMM)
	}

	mode, ok := map[string]receipt.Mode{
		FormatJSON:  receipt.ModePreview,
		FormatHTML:  receipt.ModePreview,
		FormatPrint: receipt.ModePrint,
		FormatText:  receipt.ModeText,
	}[format]
	if !ok {
		return nil, apperror.NewFieldError("format", "Format must be one of json, html, print, text, pdf")
	}

	doc, err := s.transactions.Receipt(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	layout, err := s.LayoutFor(ctx, doc, widthMM, mode)
	if err != nil {
		return nil, err
	}

	out := &Output{Format: format, Layout: layout, Receipt: doc, FileName: layout.FileName}
	switch format {
	case FormatHTML:
		out.ContentType = "text/html; charset=utf-8"
		out.Body, err = receipt.PreviewHTML(layout)
	case FormatPrint:
		out.ContentType = "text/html; charset=utf-8"
		out.Body, err = receipt.PrintHTML(layout)
	case FormatText:
		out.ContentType = "text/plain; charset=utf-8"
		out.Body = []byte(receipt.Text(layout))
	default:
		out.ContentType = "application/json"
	}
	s.metrics.ReceiptOutput(format, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Export renders the receipt as a single-page PDF. While one export of a
// transaction is running further requests for it are refused. The file is
// archived only after it has been fully generated; an archive failure does
// not fail the export.
func (s *ReceiptService) Export(ctx context.Context, transactionID uuid.UUID, widthMM int) (*Output, error) {
	done, ok := s.exporting.Begin(transactionID.String())
	if !ok {
		return nil, apperror.NewConflictError("Export already in progress")
	}
	defer done()

	log := logger.FromContext(ctx, s.log).With(zap.String("transaction_id", transactionID.String()))

	doc, err := s.transactions.Receipt(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	layout, err := s.LayoutFor(ctx, doc, widthMM, receipt.ModeExport)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := receipt.PDF(layout)
	s.metrics.ObserveExport(time.Since(start))
	s.metrics.ReceiptOutput(FormatPDF, err)
	if err != nil {
		log.Error("receipt export failed", zap.Error(err))
		return nil, apperror.Wrap(http.StatusInternalServerError, "Failed to export receipt", err)
	}

	out := &Output{
		Format:      FormatPDF,
		ContentType: "application/pdf",
		FileName:    layout.FileName,
		Body:        body,
		Layout:      layout,
		Receipt:     doc,
	}

	if s.disk != nil {
		key := path.Join(archiveDir, layout.FileName)
		if err := s.disk.Put(ctx, key, body, out.ContentType); err != nil {
			s.metrics.ReceiptOutput("archive", err)
			log.Warn("receipt archive failed", zap.String("path", key), zap.Error(err))
		} else {
			s.metrics.ReceiptOutput("archive", nil)
			out.ArchiveURL = s.disk.URL(key)
		}
	}

	log.Info("receipt exported", zap.String("file", layout.FileName), zap.Int("bytes", len(body)))
	return out, nil
}

// ShareText is the text rendition together with the share-sheet title.
func (o *Output) ShareText() (title, text string) {
	if o.Layout == nil {
		return "", string(o.Body)
	}
	return o.Layout.ShareTitle, string(o.Body)
}

