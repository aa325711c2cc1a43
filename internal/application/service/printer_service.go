package service

import (
	"context"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/receipt"
	"github.com/bukusaku/bukusaku-api/pkg/logger"
	"github.com/bukusaku/bukusaku-api/pkg/metrics"
	"github.com/bukusaku/bukusaku-api/pkg/printer"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PrinterService sends receipts to the thermal printer.
type PrinterService struct {
	printer      printer.Printer
	receipts     *ReceiptService
	transactions *TransactionService
	metrics      *metrics.Metrics
	log          *zap.Logger
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	receipts *ReceiptService,
	transactions *TransactionService,
	m *metrics.Metrics,
	log *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:      p,
		receipts:     receipts,
		transactions: transactions,
		metrics:      m,
		log:          log,
	}
}

// PrinterStatus describes the configured printer.
type PrinterStatus struct {
	Kind        string `json:"kind"`
	Connected   bool   `json:"connected"`
	PaperWidths []int  `json:"paper_widths"`
}

func (s *PrinterService) Status(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Kind:        s.printer.Kind(),
		Connected:   s.printer.IsConnected(ctx),
		PaperWidths: printer.PaperWidths(),
	}
}

// PrintResult is what was sent to the printer. A printer failure does not
// fail the request: the receipt is still returned and Warning says why it
// was not printed.
type PrintResult struct {
	Receipt *entity.Receipt `json:"receipt"`
	Layout  *receipt.Layout `json:"layout"`
	Printed bool            `json:"printed"`
	Warning string          `json:"warning,omitempty"`
}

// PrintTransaction prints the receipt of a stored transaction.
func (s *PrinterService) PrintTransaction(ctx context.Context, id uuid.UUID, widthMM int) (*PrintResult, error) {
	doc, err := s.transactions.Receipt(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.print(ctx, doc, widthMM)
}

// TestPrint prints a sample receipt.
func (s *PrinterService) TestPrint(ctx context.Context, widthMM int) (*PrintResult, error) {
	doc := entity.NewReceipt(&entity.Transaction{ID: uuid.New(), Amount: 13000, Date: time.Now()}, []entity.ReceiptItem{
		entity.NewReceiptItem("Kopi", 2, 5000),
		entity.NewReceiptItem("Gula", 1, 3000),
	})
	return s.print(ctx, doc, widthMM)
}

func (s *PrinterService) print(ctx context.Context, doc *entity.Receipt, widthMM int) (*PrintResult, error) {
	layout, err := s.receipts.LayoutFor(ctx, doc, widthMM, receipt.ModePrint)
	if err != nil {
		return nil, err
	}
	result := &PrintResult{Receipt: doc, Layout: layout}
	if s.printer.Kind() == "none" {
		return result, nil
	}

	err = s.printer.Print(ctx, receipt.ESCPOS(layout))
	s.metrics.ReceiptOutput("escpos", err)
	if err != nil {
		logger.FromContext(ctx, s.log).Warn("printer error",
			zap.String("receipt", doc.Number),
			zap.String("printer", s.printer.Kind()),
			zap.Error(err),
		)
		result.Warning = "Printer error: " + err.Error()
		return result, nil
	}
	result.Printed = true
	return result, nil
}
