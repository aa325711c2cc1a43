package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/domain/cart"
	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/enum"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/bukusaku/bukusaku-api/pkg/apperror"
	"github.com/bukusaku/bukusaku-api/pkg/logger"
	"github.com/bukusaku/bukusaku-api/pkg/metrics"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// CashierService runs the till: carts held between requests and the
// checkout that turns a cart into a ledger entry.
type CashierService struct {
	catalog     *Catalog
	carts       repository.CartStore
	txRepo      repository.TransactionRepository
	itemRepo    repository.TransactionItemRepository
	productRepo repository.ProductRepository
	metrics     *metrics.Metrics
	log         *zap.Logger
	now         func() time.Time

	cartLocks   keyedMutex
	checkingOut inFlight
}

// NewCashierService creates a new cashier service
func NewCashierService(
	catalog *Catalog,
	carts repository.CartStore,
	txRepo repository.TransactionRepository,
	itemRepo repository.TransactionItemRepository,
	productRepo repository.ProductRepository,
	m *metrics.Metrics,
	log *zap.Logger,
) *CashierService {
	return &CashierService{
		catalog:     catalog,
		carts:       carts,
		txRepo:      txRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

// CartView is a cart with its computed figures.
type CartView struct {
	ID        uuid.UUID   `json:"id"`
	Items     []cart.Line `json:"items"`
	Total     int64       `json:"total"`
	ItemCount int         `json:"item_count"`
}

func newCartView(id uuid.UUID, c *cart.Cart) *CartView {
	return &CartView{ID: id, Items: c.Lines(), Total: c.Total(), ItemCount: c.ItemCount()}
}

// OpenCart starts an empty cart.
func (s *CashierService) OpenCart(ctx context.Context) (*CartView, error) {
	id := uuid.New()
	c := cart.New()
	if err := s.carts.Save(ctx, id, c); err != nil {
		return nil, err
	}
	return newCartView(id, c), nil
}

func (s *CashierService) GetCart(ctx context.Context, id uuid.UUID) (*CartView, error) {
	c, err := s.loadCart(ctx, id)
	if err != nil {
		return nil, err
	}
	return newCartView(id, c), nil
}

// ClearCart abandons a cart.
func (s *CashierService) ClearCart(ctx context.Context, id uuid.UUID) error {
	unlock := s.cartLocks.Lock(id.String())
	defer unlock()
	return s.carts.Delete(ctx, id)
}

// SearchCatalog lists sellable products from the snapshot.
func (s *CashierService) SearchCatalog(ctx context.Context, term string) ([]entity.Product, error) {
	return s.catalog.Search(ctx, term)
}

// AddToCart adds one unit of a product. Stock is checked against the
// catalog snapshot, so a rejected add never touches the database.
func (s *CashierService) AddToCart(ctx context.Context, cartID, productID uuid.UUID) (*CartView, error) {
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return s.addProduct(ctx, cartID, product)
}

// AddBySKU adds one unit of the product whose SKU matches exactly.
func (s *CashierService) AddBySKU(ctx context.Context, cartID uuid.UUID, sku string) (*CartView, error) {
	product, err := s.catalog.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return s.addProduct(ctx, cartID, product)
}

func (s *CashierService) addProduct(ctx context.Context, cartID uuid.UUID, product *entity.Product) (*CartView, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) error {
		return c.Add(*product)
	})
}

// UpdateQuantity moves a line's quantity by delta, never below one.
func (s *CashierService) UpdateQuantity(ctx context.Context, cartID, productID uuid.UUID, delta int) (*CartView, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) error {
		return c.UpdateQuantity(productID, delta)
	})
}

func (s *CashierService) RemoveFromCart(ctx context.Context, cartID, productID uuid.UUID) (*CartView, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) error {
		c.Remove(productID)
		return nil
	})
}

func (s *CashierService) mutate(ctx context.Context, cartID uuid.UUID, fn func(*cart.Cart) error) (*CartView, error) {
	unlock := s.cartLocks.Lock(cartID.String())
	defer unlock()

	c, err := s.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, cartError(err)
	}
	if err := s.carts.Save(ctx, cartID, c); err != nil {
		return nil, err
	}
	return newCartView(cartID, c), nil
}

func (s *CashierService) loadCart(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	c, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NewNotFoundError("Cart")
	}
	return c, nil
}

func cartError(err error) error {
	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		return apperror.NewUnprocessableError("Product is out of stock")
	case errors.Is(err, cart.ErrInsufficientStock):
		return apperror.NewUnprocessableError("Not enough stock")
	case errors.Is(err, cart.ErrStockLimitReached):
		return apperror.NewUnprocessableError("Stock limit reached")
	case errors.Is(err, cart.ErrLineNotFound):
		return apperror.NewNotFoundError("Cart item")
	}
	return err
}

// CheckoutInput represents the checkout input
type CheckoutInput struct {
	CartID        uuid.UUID
	PaymentAmount *int64 // cash tendered, optional
}

// CheckoutResult is the committed sale. Warnings lists secondary writes
// that failed after the ledger entry was saved.
type CheckoutResult struct {
	Transaction *entity.Transaction `json:"transaction"`
	Receipt     *entity.Receipt     `json:"receipt"`
	Warnings    []string            `json:"warnings,omitempty"`
}

// Checkout commits the cart as one income/sales entry, then writes the sold
// lines and the new stock levels. Only the entry itself is required: if it
// fails nothing is written and the cart is kept. Item and stock writes that
// fail afterwards are logged and reported as warnings.
func (s *CashierService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	key := input.CartID.String()
	done, ok := s.checkingOut.Begin(key)
	if !ok {
		s.metrics.Checkout("rejected")
		return nil, apperror.NewConflictError("Checkout already in progress")
	}
	defer done()

	unlock := s.cartLocks.Lock(key)
	defer unlock()

	log := logger.FromContext(ctx, s.log).With(zap.String("cart_id", key))

	c, err := s.loadCart(ctx, input.CartID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		s.metrics.Checkout("rejected")
		return nil, apperror.NewUnprocessableError("Cart is empty")
	}

	total := c.Total()
	tx := &entity.Transaction{
		Type:        enum.TransactionTypeIncome,
		Category:    enum.CategorySales,
		Amount:      total,
		Description: fmt.Sprintf("Penjualan Kasir: %d item", c.Len()),
		Date:        s.now(),
	}
	if input.PaymentAmount != nil {
		if *input.PaymentAmount < total {
			s.metrics.Checkout("rejected")
			return nil, apperror.NewFieldError("payment_amount", "Payment is less than the total")
		}
		pay := *input.PaymentAmount
		change := pay - total
		tx.PaymentAmount, tx.ChangeAmount = &pay, &change
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		s.metrics.Checkout("failed")
		log.Error("checkout: failed to save transaction", zap.Error(err))
		return nil, apperror.Wrap(http.StatusInternalServerError, "Failed to save transaction", err)
	}

	// The sale is committed; finish the follow-up writes even if the client
	// goes away.
	ctx = context.WithoutCancel(ctx)
	lines := c.Lines()
	result := &CheckoutResult{Transaction: tx}

	items := make([]entity.TransactionItem, len(lines))
	receiptItems := make([]entity.ReceiptItem, len(lines))
	for i, l := range lines {
		productID := l.Product.ID
		items[i] = entity.TransactionItem{
			TransactionID: tx.ID,
			ProductID:     &productID,
			ProductName:   l.Product.Name,
			Quantity:      l.Quantity,
			Price:         l.Product.SellPrice,
			Subtotal:      l.Subtotal(),
		}
		receiptItems[i] = entity.NewReceiptItem(l.Product.Name, l.Quantity, l.Product.SellPrice)
	}
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		s.metrics.BestEffortFailure("items")
		log.Warn("checkout: failed to save sold items", zap.String("transaction_id", tx.ID.String()), zap.Error(err))
		result.Warnings = append(result.Warnings, "Sold items were not saved")
	} else {
		tx.Items = items
	}

	result.Warnings = append(result.Warnings, s.writeStock(ctx, log, lines)...)

	result.Receipt = entity.NewReceipt(tx, receiptItems)

	c.Clear()
	if err := s.carts.Save(ctx, input.CartID, c); err != nil {
		log.Warn("checkout: failed to clear cart", zap.Error(err))
	}
	s.catalog.refreshAfterWrite(ctx)

	s.metrics.Checkout("success")
	log.Info("checkout completed",
		zap.String("transaction_id", tx.ID.String()),
		zap.Int64("total", total),
		zap.Int("lines", len(lines)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

// writeStock sets every sold product's stock to its snapshot value minus
// the quantity sold. Writes run concurrently and each failure is reported
// on its own. Two tills selling the same product can overwrite each other's
// decrement; the shop runs a single till.
func (s *CashierService) writeStock(ctx context.Context, log *zap.Logger, lines []cart.Line) []string {
	warnings := make([]string, len(lines))
	p := pool.New().WithErrors()
	for i, l := range lines {
		i, l := i, l
		p.Go(func() error {
			stock := max(0, l.Product.Stock-l.Quantity)
			if err := s.productRepo.UpdateStock(ctx, l.Product.ID, stock); err != nil {
				s.metrics.BestEffortFailure("stock")
				log.Warn("checkout: failed to update stock",
					zap.String("product_id", l.Product.ID.String()),
					zap.Int("stock", stock),
					zap.Error(err),
				)
				warnings[i] = fmt.Sprintf("Stock for %s was not updated", l.Product.Name)
				return err
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		log.Warn("checkout: stock left out of sync with the ledger", zap.Error(err))
	}

	out := warnings[:0]
	for _, w := range warnings {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
