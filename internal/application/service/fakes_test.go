package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/google/uuid"
)

var errGateway = errors.New("gateway unavailable")

type fakeProductRepo struct {
	mu          sync.Mutex
	products    map[uuid.UUID]entity.Product
	listCalls   int
	stockErr    map[uuid.UUID]error
	stockWrites map[uuid.UUID]int
}

func newFakeProductRepo(products ...entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{
		products:    map[uuid.UUID]entity.Product{},
		stockErr:    map[uuid.UUID]error{},
		stockWrites: map[uuid.UUID]int{},
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) CreateBatch(ctx context.Context, products []entity.Product) error {
	for i := range products {
		if err := r.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if strings.EqualFold(p.SKUValue(), strings.TrimSpace(sku)) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.stockErr[id]; err != nil {
		return err
	}
	p := r.products[id]
	p.Stock = stock
	r.products[id] = p
	r.stockWrites[id] = stock
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, params *repository.ProductFilterParams) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	out := []entity.Product{}
	for _, p := range r.products {
		if params != nil && params.LowStock && !p.IsLowStock() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

type fakeTxRepo struct {
	mu        sync.Mutex
	txs       map[uuid.UUID]entity.Transaction
	createErr error
	creates   int
	// when set, Create and GetByID signal entered and wait for release
	entered chan struct{}
	release chan struct{}
}

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{txs: map[uuid.UUID]entity.Transaction{}}
}

func (r *fakeTxRepo) pause() {
	if r.entered != nil {
		r.entered <- struct{}{}
		<-r.release
	}
}

func (r *fakeTxRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.pause()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	stored := *t
	stored.Items = nil
	r.txs[t.ID] = stored
	return nil
}

func (r *fakeTxRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.pause()
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txs[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTxRepo) Update(_ context.Context, t *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[t.ID] = *t
	return nil
}

func (r *fakeTxRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.txs, id)
	return nil
}

func (r *fakeTxRepo) List(_ context.Context, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Transaction{}
	for _, t := range r.txs {
		if params != nil && params.Type != "" && t.Type != params.Type {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	total := int64(len(out))
	if params != nil && params.Pagination != nil {
		p := params.Pagination
		p.Normalize()
		start := min(p.Offset(), len(out))
		end := min(start+p.PerPage, len(out))
		out = out[start:end]
	}
	return out, total, nil
}

func (r *fakeTxRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creates
}

type fakeItemRepo struct {
	mu      sync.Mutex
	items   []entity.TransactionItem
	err     error
	listErr error
	calls   int
}

func (r *fakeItemRepo) CreateBatch(_ context.Context, items []entity.TransactionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeItemRepo) ListByTransactionID(_ context.Context, id uuid.UUID) ([]entity.TransactionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []entity.TransactionItem{}
	for _, it := range r.items {
		if it.TransactionID == id {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeNoteRepo struct {
	notes map[uuid.UUID]entity.Note
}

func (r *fakeNoteRepo) Create(_ context.Context, n *entity.Note) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.notes[n.ID] = *n
	return nil
}

func (r *fakeNoteRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *fakeNoteRepo) Update(_ context.Context, n *entity.Note) error {
	r.notes[n.ID] = *n
	return nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) List(context.Context) ([]entity.Note, error) {
	out := []entity.Note{}
	for _, n := range r.notes {
		out = append(out, n)
	}
	return out, nil
}

type fakeSettingsRepo struct {
	profile *entity.StoreProfile
	creates int
}

func (r *fakeSettingsRepo) Get(context.Context) (*entity.StoreProfile, error) {
	if r.profile == nil {
		return nil, nil
	}
	p := *r.profile
	return &p, nil
}

func (r *fakeSettingsRepo) Create(_ context.Context, p *entity.StoreProfile) error {
	r.creates++
	stored := *p
	r.profile = &stored
	return nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, p *entity.StoreProfile) error {
	stored := *p
	r.profile = &stored
	return nil
}

type fakeDisk struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func (d *fakeDisk) Put(_ context.Context, path string, content []byte, _ string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.files[path] = content
	return nil
}

func (d *fakeDisk) Get(_ context.Context, path string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (d *fakeDisk) Exists(_ context.Context, path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.files[path]
	return ok
}

func (d *fakeDisk) Delete(_ context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, path)
	return nil
}

func (d *fakeDisk) URL(path string) string {
	return "/files/" + path
}

type fakePrinter struct {
	kind string
	err  error
	jobs [][]byte
}

func (p *fakePrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *fakePrinter) IsConnected(context.Context) bool { return p.err == nil }
func (p *fakePrinter) Kind() string                    { return p.kind }
