package port

import (
	"context"

	"github.com/Pilot202/skylit-logistic-backend/internal/core/domain"
)

// InventoryRepository is the persistent store contract. Reads are
// standalone; mutations go through a unit of work obtained from Begin so
// that a failure mid-sequence leaves no partial state visible.
type InventoryRepository interface {
	// Begin opens a unit of work. The caller must Commit or Rollback.
	Begin(ctx context.Context) (InventoryTx, error)

	// ProductBySKU retrieves a product by SKU, nil when absent.
	ProductBySKU(ctx context.Context, sku string) (*domain.Product, error)

	// SellerByID retrieves a seller by primary key, nil when absent.
	SellerByID(ctx context.Context, id int64) (*domain.Seller, error)

	// ListInventory returns every product joined with its seller name.
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)

	// SearchInventory performs a case-insensitive substring search over
	// product name and SKU.
	SearchInventory(ctx context.Context, term string) ([]domain.InventoryItem, error)

	// ProductTransactions returns the most recent movements for a product.
	ProductTransactions(ctx context.Context, productID int64, limit int) ([]domain.Transaction, error)

	// StaffByPhone resolves a sender phone number, nil when unknown.
	StaffByPhone(ctx context.Context, phone string) (*domain.Staff, error)

	// LogConversation appends one message to the conversation log.
	LogConversation(ctx context.Context, c domain.Conversation) error
}

// InventoryTx is a single transactional read-modify-write sequence.
// Rollback after Commit is a no-op, so callers defer it unconditionally.
type InventoryTx interface {
	ProductBySKU(ctx context.Context, sku string) (*domain.Product, error)
	SellerByName(ctx context.Context, name string) (*domain.Seller, error)
	CreateSeller(ctx context.Context, s *domain.Seller) error
	CreateProduct(ctx context.Context, p *domain.Product) error
	SetProductStock(ctx context.Context, productID int64, stock int) error
	InsertTransaction(ctx context.Context, t domain.Transaction) error
	Commit() error
	Rollback() error
}
