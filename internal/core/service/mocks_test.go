package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Pilot202/skylit-logistic-backend/internal/core/domain"
	"github.com/Pilot202/skylit-logistic-backend/internal/port"
)

// memRepo is an in-memory InventoryRepository for unit tests. Transactions
// apply immediately; rollback fidelity is the SQL adapter's concern.
type memRepo struct {
	sellers  map[int64]*domain.Seller
	products map[string]*domain.Product
	txns     []domain.Transaction
	staff    map[string]*domain.Staff
	convs    []domain.Conversation
	nextID   int64
	listErr  error
}

func newMemRepo() *memRepo {
	return &memRepo{
		sellers:  make(map[int64]*domain.Seller),
		products: make(map[string]*domain.Product),
		staff:    make(map[string]*domain.Staff),
	}
}

// seedMemRepo loads the fixture used across the service tests: two sellers,
// two products.
func seedMemRepo() *memRepo {
	r := newMemRepo()
	acme := &domain.Seller{ID: r.id(), Name: "Acme Corp", BusinessID: "BIZ-ACME"}
	tech := &domain.Seller{ID: r.id(), Name: "TechSupply Inc", BusinessID: "BIZ-TECH"}
	r.sellers[acme.ID] = acme
	r.sellers[tech.ID] = tech
	r.products["PHN-CHG-001"] = &domain.Product{ID: r.id(), SellerID: acme.ID, SKU: "PHN-CHG-001", Name: "Phone Charger", CurrentStock: 50}
	r.products["USB-CBL-001"] = &domain.Product{ID: r.id(), SellerID: tech.ID, SKU: "USB-CBL-001", Name: "USB Cable", CurrentStock: 100}
	return r
}

func (r *memRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *memRepo) Begin(ctx context.Context) (port.InventoryTx, error) {
	return &memTx{r: r}, nil
}

func (r *memRepo) ProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	if p, ok := r.products[sku]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memRepo) SellerByID(ctx context.Context, id int64) (*domain.Seller, error) {
	if s, ok := r.sellers[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *memRepo) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	skus := make([]string, 0, len(r.products))
	for sku := range r.products {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	items := make([]domain.InventoryItem, 0, len(skus))
	for _, sku := range skus {
		p := r.products[sku]
		seller := "Unknown"
		if s, ok := r.sellers[p.SellerID]; ok {
			seller = s.Name
		}
		items = append(items, domain.InventoryItem{SKU: p.SKU, Name: p.Name, Stock: p.CurrentStock, Seller: seller})
	}
	return items, nil
}

func (r *memRepo) SearchInventory(ctx context.Context, term string) ([]domain.InventoryItem, error) {
	all, err := r.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(term)
	matched := make([]domain.InventoryItem, 0, len(all))
	for _, item := range all {
		if strings.Contains(strings.ToLower(item.Name), lower) || strings.Contains(strings.ToLower(item.SKU), lower) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (r *memRepo) ProductTransactions(ctx context.Context, productID int64, limit int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for i := len(r.txns) - 1; i >= 0 && len(out) < limit; i-- {
		if r.txns[i].ProductID == productID {
			out = append(out, r.txns[i])
		}
	}
	return out, nil
}

func (r *memRepo) StaffByPhone(ctx context.Context, phone string) (*domain.Staff, error) {
	if s, ok := r.staff[strings.TrimPrefix(phone, "whatsapp:")]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *memRepo) LogConversation(ctx context.Context, c domain.Conversation) error {
	r.convs = append(r.convs, c)
	return nil
}

type memTx struct {
	r *memRepo
}

func (t *memTx) ProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	if p, ok := t.r.products[sku]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (t *memTx) SellerByName(ctx context.Context, name string) (*domain.Seller, error) {
	for _, s := range t.r.sellers {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (t *memTx) CreateSeller(ctx context.Context, s *domain.Seller) error {
	s.ID = t.r.id()
	cp := *s
	t.r.sellers[s.ID] = &cp
	return nil
}

func (t *memTx) CreateProduct(ctx context.Context, p *domain.Product) error {
	p.ID = t.r.id()
	cp := *p
	t.r.products[p.SKU] = &cp
	return nil
}

func (t *memTx) SetProductStock(ctx context.Context, productID int64, stock int) error {
	for _, p := range t.r.products {
		if p.ID == productID {
			p.CurrentStock = stock
			return nil
		}
	}
	return nil
}

func (t *memTx) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	txn.ID = t.r.id()
	t.r.txns = append(t.r.txns, txn)
	return nil
}

func (t *memTx) Commit() error   { return nil }
func (t *memTx) Rollback() error { return nil }

type mockCache struct {
	summary  string
	getErr   error
	setCalls int
	lastTTL  time.Duration
}

func (c *mockCache) GetSummary(ctx context.Context) (string, error) {
	return c.summary, c.getErr
}

func (c *mockCache) SetSummary(ctx context.Context, summary string, ttl time.Duration) error {
	c.setCalls++
	c.summary = summary
	c.lastTTL = ttl
	return nil
}

type sentMessage struct {
	to, body string
}

type mockMessenger struct {
	sent []sentMessage
	err  error
}

func (m *mockMessenger) Send(ctx context.Context, to, body string) error {
	m.sent = append(m.sent, sentMessage{to: to, body: body})
	return m.err
}

type mockBroadcaster struct {
	events []domain.StockEvent
	err    error
}

func (b *mockBroadcaster) Publish(ctx context.Context, ev domain.StockEvent) error {
	b.events = append(b.events, ev)
	return b.err
}

type mockLLM struct {
	reply string
	err   error
	calls int
}

func (m *mockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls++
	return m.reply, m.err
}

func (m *mockLLM) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	return m.reply, m.err
}
