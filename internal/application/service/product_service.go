package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/bukusaku/bukusaku-api/internal/infrastructure/spreadsheet"
	"github.com/bukusaku/bukusaku-api/pkg/apperror"
	"github.com/bukusaku/bukusaku-api/pkg/currency"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService handles inventory operations
type ProductService struct {
	productRepo repository.ProductRepository
	catalog     *Catalog
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, catalog *Catalog) *ProductService {
	return &ProductService{productRepo: productRepo, catalog: catalog}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name      string
	SKU       string
	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal
	Stock     int
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{Name: strings.TrimSpace(input.Name), Stock: input.Stock}

	var fieldErrs []apperror.FieldError
	if product.Name == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	product.BuyPrice, fieldErrs = amountField(fieldErrs, "buy_price", input.BuyPrice)
	product.SellPrice, fieldErrs = amountField(fieldErrs, "sell_price", input.SellPrice)
	if input.Stock < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "stock", Message: "Stock must not be negative"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	if sku := strings.TrimSpace(input.SKU); sku != "" {
		if err := s.ensureSKUFree(ctx, sku, uuid.Nil); err != nil {
			return nil, err
		}
		product.SKU = &sku
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.catalog.refreshAfterWrite(ctx)
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products ordered by name
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, error) {
	return s.productRepo.List(ctx, params)
}

// UpdateProductInput represents the update product input. Nil fields are
// left unchanged; an empty SKU clears it.
type UpdateProductInput struct {
	ID        uuid.UUID
	Name      *string
	SKU       *string
	BuyPrice  *decimal.Decimal
	SellPrice *decimal.Decimal
	Stock     *int
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	var fieldErrs []apperror.FieldError
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
		if product.Name == "" {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "Name is required"})
		}
	}
	if input.BuyPrice != nil {
		product.BuyPrice, fieldErrs = amountField(fieldErrs, "buy_price", *input.BuyPrice)
	}
	if input.SellPrice != nil {
		product.SellPrice, fieldErrs = amountField(fieldErrs, "sell_price", *input.SellPrice)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "stock", Message: "Stock must not be negative"})
		}
		product.Stock = *input.Stock
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			product.SKU = nil
		} else if !strings.EqualFold(sku, product.SKUValue()) {
			if err := s.ensureSKUFree(ctx, sku, product.ID); err != nil {
				return nil, err
			}
			product.SKU = &sku
		}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.catalog.refreshAfterWrite(ctx)
	return product, nil
}

// DeleteProduct deletes a product. Past sales keep their copied name and
// price.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.refreshAfterWrite(ctx)
	return nil
}

func (s *ProductService) ensureSKUFree(ctx context.Context, sku string, self uuid.UUID) error {
	existing, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("SKU already exists")
	}
	return nil
}

// ImportResult summarises a spreadsheet import.
type ImportResult struct {
	Created int                    `json:"created"`
	Errors  []spreadsheet.RowError `json:"errors"`
}

// ImportProducts creates products from an .xlsx sheet. Lines that fail to
// parse or reuse an existing SKU are skipped and reported; the rest are
// inserted together.
func (s *ProductService) ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, rowErrs, err := spreadsheet.ReadProducts(r)
	if err != nil {
		return nil, apperror.Wrap(http.StatusUnprocessableEntity, err.Error(), err)
	}

	result := &ImportResult{Errors: rowErrs}
	seen := map[string]bool{}
	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		if sku := strings.ToLower(row.Product.SKUValue()); sku != "" {
			if seen[sku] {
				result.Errors = append(result.Errors, spreadsheet.RowError{Row: row.Row, Message: "SKU appears more than once in the file"})
				continue
			}
			existing, err := s.productRepo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				result.Errors = append(result.Errors, spreadsheet.RowError{Row: row.Row, Message: "SKU already exists"})
				continue
			}
			seen[sku] = true
		}
		products = append(products, row.Product)
	}

	if err := s.productRepo.CreateBatch(ctx, products); err != nil {
		return nil, err
	}
	result.Created = len(products)
	if result.Errors == nil {
		result.Errors = []spreadsheet.RowError{}
	}
	if result.Created > 0 {
		s.catalog.refreshAfterWrite(ctx)
	}
	return result, nil
}

// WriteImportTemplate writes an empty import sheet.
func (s *ProductService) WriteImportTemplate(w io.Writer) error {
	return spreadsheet.ProductTemplate(w)
}

// amountField converts a money input, appending a field error when it is
// negative or out of range.
func amountField(errs []apperror.FieldError, field string, d decimal.Decimal) (int64, []apperror.FieldError) {
	n, err := currency.ToRupiah(d)
	switch {
	case errors.Is(err, currency.ErrNegativeAmount):
		return 0, append(errs, apperror.FieldError{Field: field, Message: "Amount must not be negative"})
	case err != nil:
		return 0, append(errs, apperror.FieldError{Field: field, Message: "Amount is too large"})
	}
	return n, errs
}
