package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/application/service"
	"github.com/bukusaku/bukusaku-api/internal/config"
	"github.com/bukusaku/bukusaku-api/internal/infrastructure/cartstore"
	"github.com/bukusaku/bukusaku-api/internal/infrastructure/database"
	"github.com/bukusaku/bukusaku-api/internal/infrastructure/repository"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/handler"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/middleware"
	"github.com/bukusaku/bukusaku-api/pkg/metrics"
	"github.com/bukusaku/bukusaku-api/pkg/printer"
	"github.com/bukusaku/bukusaku-api/pkg/storage"
	"github.com/bukusaku/bukusaku-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPassphrase = "buka-toko"

type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Errors   json.RawMessage `json:"errors"`
	Warnings []string        `json:"warnings"`
	Meta     struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	dir := t.TempDir()

	cfg := &config.Config{
		App:       config.AppConfig{Name: "bukusaku-test"},
		Auth:      config.AuthConfig{Passphrase: testPassphrase},
		Store:     config.StoreConfig{Name: "28 POINT", Address: "Kota Blitar", ThankYou: "TERIMA KASIH", PaperWidth: 58},
		RateLimit: config.RateLimitConfig{LoginPerMinute: 60, LoginBurst: 3},
	}

	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(dir, "api.db")}, log, false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, log))

	productRepo := repository.NewProductRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	itemRepo := repository.NewTransactionItemRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	disk, err := storage.NewLocalDisk(filepath.Join(dir, "files"), "/api/v1/files")
	require.NoError(t, err)

	m := metrics.New("test")
	authService, err := service.NewAuthService(cfg.Auth, utils.NewJWTManager("test-secret", time.Hour))
	require.NoError(t, err)
	catalog := service.NewCatalog(productRepo, log)
	transactions := service.NewTransactionService(txRepo, itemRepo, log)
	settings := service.NewSettingsService(repository.NewSettingsRepository(db), cfg.Store)
	receipts := service.NewReceiptService(transactions, settings, disk, m, log, time.UTC)
	printers := service.NewPrinterService(printer.NewNullPrinter(), receipts, transactions, m, log)

	router := Setup(&Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Dashboard:   handler.NewDashboardHandler(service.NewDashboardService(txRepo, productRepo, time.UTC)),
		Product:     handler.NewProductHandler(service.NewProductService(productRepo, catalog)),
		Transaction: handler.NewTransactionHandler(transactions, receipts, printers, time.UTC),
		Note:        handler.NewNoteHandler(service.NewNoteService(repository.NewNoteRepository(db))),
		Cashier: handler.NewCashierHandler(service.NewCashierService(
			catalog, cartstore.NewMemoryStore(time.Hour), txRepo, itemRepo, productRepo, m, log,
		)),
		Settings: handler.NewSettingsHandler(settings),
		Printer:  handler.NewPrinterHandler(printers),
		File:     handler.NewFileHandler(disk),
	}, &Deps{
		Cfg:             cfg,
		Log:             log,
		Metrics:         m,
		Sessions:        authService,
		IdempotencyRepo: idempotencyRepo,
		LoginLimiter: middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimit.LoginPerMinute,
			BurstSize:         cfg.RateLimit.LoginBurst,
		}),
	})

	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *testServer) login() {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"passphrase": testPassphrase})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(s.t, w, &out)
	require.NotEmpty(s.t, out.Token)
	s.token = out.Token
}

func TestHealthAndAuthRequired(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.do(http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Meta.RequestID)

	w = s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginLogout(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"passphrase": "salah"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	s.login()
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/dashboard", nil).Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/auth/logout", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/dashboard", nil).Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 3; i++ {
		w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"passphrase": "salah"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"passphrase": testPassphrase})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestSaleFromCartToReceipt(t *testing.T) {
	s := newTestServer(t)
	s.login()

	var kopi struct {
		ID string `json:"id"`
	}
	w := s.do(http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Kopi", "sku": "KP-01", "buy_price": 3000, "sell_price": "5000", "stock": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &kopi)

	w = s.do(http.MethodPost, "/api/v1/products", map[string]any{"name": "Gula", "buy_price": 2000, "sell_price": 3000, "stock": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	var gula struct {
		ID string `json:"id"`
	}
	decode(t, w, &gula)

	var cart struct {
		ID    string `json:"id"`
		Total int64  `json:"total"`
	}
	w = s.do(http.MethodPost, "/api/v1/cashier/carts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &cart)
	base := "/api/v1/cashier/carts/" + cart.ID

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, base+"/items", map[string]string{"sku": "kp-01"}).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPatch, base+"/items/"+kopi.ID, map[string]int{"delta": 1}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPatch, base+"/items/"+kopi.ID, map[string]int64{"delta": 1 << 40}).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, base+"/items", map[string]string{"product_id": gula.ID}).Code)

	w = s.do(http.MethodPost, base+"/items", map[string]string{"product_id": gula.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "only one Gula in stock")

	w = s.do(http.MethodGet, base, nil)
	decode(t, w, &cart)
	assert.Equal(t, int64(13000), cart.Total)

	w = s.do(http.MethodPost, base+"/checkout", map[string]int{"payment_amount": 10000})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "short payment")

	w = s.do(http.MethodPost, base+"/checkout", map[string]int{"payment_amount": 20000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sale struct {
		Transaction struct {
			ID           string `json:"id"`
			Amount       int64  `json:"amount"`
			ChangeAmount int64  `json:"change_amount"`
			Description  string `json:"description"`
		} `json:"transaction"`
	}
	env := decode(t, w, &sale)
	assert.Empty(t, env.Warnings)
	assert.Equal(t, int64(13000), sale.Transaction.Amount)
	assert.Equal(t, int64(7000), sale.Transaction.ChangeAmount)
	assert.Equal(t, "Penjualan Kasir: 2 item", sale.Transaction.Description)

	w = s.do(http.MethodGet, base, nil)
	decode(t, w, &cart)
	assert.Zero(t, cart.Total, "cart cleared after checkout")

	var stock struct {
		Stock int `json:"stock"`
	}
	decode(t, s.do(http.MethodGet, "/api/v1/products/"+kopi.ID, nil), &stock)
	assert.Equal(t, 3, stock.Stock)

	txPath := "/api/v1/transactions/" + sale.Transaction.ID
	var items []struct {
		ProductName string `json:"product_name"`
		Subtotal    int64  `json:"subtotal"`
	}
	decode(t, s.do(http.MethodGet, txPath+"/items", nil), &items)
	require.Len(t, items, 2)

	w = s.do(http.MethodGet, txPath+"/receipt?format=text", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Struk Belanja 28 POINT", w.Header().Get("X-Share-Title"))
	assert.Contains(t, w.Body.String(), "KEMBALI")

	w = s.do(http.MethodGet, txPath+"/receipt?format=pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	archive := w.Header().Get("X-Archive-URL")
	require.True(t, strings.HasPrefix(archive, "/api/v1/files/receipts/"), archive)

	w = s.do(http.MethodGet, archive, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = s.do(http.MethodGet, txPath+"/receipt?width=65", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, txPath+"/receipt/print", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Items      []json.RawMessage `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decode(t, s.do(http.MethodGet, "/api/v1/transactions?category=sales", nil), &page)
	assert.Equal(t, int64(1), page.Pagination.Total)

	w = s.do(http.MethodGet, "/api/v1/transactions/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestIdempotentCreateIsReplayed(t *testing.T) {
	s := newTestServer(t)
	s.login()

	body := map[string]string{"title": "Belanja", "content": "telur"}
	first := s.do(http.MethodPost, "/api/v1/notes", body, "Idempotency-Key", "note-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := s.do(http.MethodPost, "/api/v1/notes", body, "Idempotency-Key", "note-1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	var notes []json.RawMessage
	decode(t, s.do(http.MethodGet, "/api/v1/notes", nil), &notes)
	assert.Len(t, notes, 1)

	w := s.do(http.MethodPost, "/api/v1/notes", map[string]string{"title": " "}, "Idempotency-Key", "note-2")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
}

func TestSettingsAndPrinter(t *testing.T) {
	s := newTestServer(t)
	s.login()

	var profile struct {
		Name       string `json:"name"`
		PaperWidth int    `json:"paper_width"`
	}
	decode(t, s.do(http.MethodGet, "/api/v1/settings", nil), &profile)
	assert.Equal(t, "28 POINT", profile.Name)

	w := s.do(http.MethodPut, "/api/v1/settings", map[string]int{"paper_width": 80})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &profile)
	assert.Equal(t, 80, profile.PaperWidth)

	var status struct {
		Kind        string `json:"kind"`
		PaperWidths []int  `json:"paper_widths"`
	}
	decode(t, s.do(http.MethodGet, "/api/v1/printer/status", nil), &status)
	assert.Equal(t, "none", status.Kind)
	assert.Contains(t, status.PaperWidths, 58)

	var result struct {
		Printed bool `json:"printed"`
		Layout  struct {
			WidthMM int `json:"width_mm"`
		} `json:"layout"`
	}
	decode(t, s.do(http.MethodPost, "/api/v1/printer/test", nil), &result)
	assert.False(t, result.Printed)
	assert.Equal(t, 80, result.Layout.WidthMM, "store default width")
}

func TestListIncludesEveryGroup(t *testing.T) {
	var paths []string
	for _, r := range List() {
		paths = append(paths, r.Method+" "+r.Path)
	}
	assert.Contains(t, paths, "POST /api/v1/cashier/carts/:id/checkout")
	assert.Contains(t, paths, "GET /api/v1/files/*path")
	assert.Contains(t, paths, "GET /metrics")
}
