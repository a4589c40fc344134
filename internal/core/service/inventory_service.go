// Package service holds the inventory engine, the reply formatter and the
// per-message pipeline that ties the classifiers to stock mutations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Pilot202/skylit-logistic-backend/internal/core/domain"
	"github.com/Pilot202/skylit-logistic-backend/internal/port"
)

// ErrProductNotFound is returned by read operations whose callers need to
// distinguish a missing product from a store failure.
var ErrProductNotFound = errors.New("product not found")

const (
	defaultSellerName = "Default Seller"
	defaultBusinessID = "BIZ-DEFAULT"

	summaryUnavailable = "Unable to retrieve inventory data."
	summaryCacheTTL    = time.Minute
)

// StockResult is the structured outcome of one engine operation.
type StockResult struct {
	Success bool
	Message string
	SKU     string
	Product string
	Stock   int
	Seller  string
	Mutated bool
	Action  string // ADD | SHIP | CHECK
}

// InventoryService owns all Product/Seller/Transaction mutation. Each
// operation runs inside a single unit of work; a failure mid-sequence rolls
// back and leaves no partial state.
type InventoryService struct {
	repo   port.InventoryRepository
	cache  port.SummaryCache // optional
	logger *zap.Logger
}

func NewInventoryService(repo port.InventoryRepository, cache port.SummaryCache, logger *zap.Logger) *InventoryService {
	return &InventoryService{repo: repo, cache: cache, logger: logger}
}

// AddStock records an inbound movement, lazily creating the seller and the
// product. Business failures come back as a failed StockResult; only store
// breakage is returned as an error.
func (s *InventoryService) AddStock(ctx context.Context, sku string, quantity int, sellerName string, staffID *int64) (*StockResult, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var seller *domain.Seller
	if sellerName != "" {
		seller, err = tx.SellerByName(ctx, sellerName)
		if err != nil {
			return nil, fmt.Errorf("lookup seller: %w", err)
		}
		if seller == nil {
			seller = &domain.Seller{Name: sellerName, BusinessID: businessIDFor(sellerName)}
			if err := tx.CreateSeller(ctx, seller); err != nil {
				return nil, fmt.Errorf("create seller: %w", err)
			}
			s.logger.Info("created seller", zap.String("name", seller.Name), zap.String("business_id", seller.BusinessID))
		}
	}

	product, err := tx.ProductBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	if product == nil {
		if seller == nil {
			seller, err = tx.SellerByName(ctx, defaultSellerName)
			if err != nil {
				return nil, fmt.Errorf("lookup default seller: %w", err)
			}
			if seller == nil {
				seller = &domain.Seller{Name: defaultSellerName, BusinessID: defaultBusinessID}
				if err := tx.CreateSeller(ctx, seller); err != nil {
					return nil, fmt.Errorf("create default seller: %w", err)
				}
			}
		}
		product = &domain.Product{
			SellerID:     seller.ID,
			SKU:          sku,
			Name:         productNameFor(sku),
			CurrentStock: 0,
		}
		if err := tx.CreateProduct(ctx, product); err != nil {
			return nil, fmt.Errorf("create product: %w", err)
		}
		s.logger.Info("created product", zap.String("sku", sku), zap.String("name", product.Name))
	}

	newStock := product.CurrentStock + quantity
	if err := tx.SetProductStock(ctx, product.ID, newStock); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	if err := tx.InsertTransaction(ctx, domain.Transaction{
		ProductID: product.ID,
		StaffID:   staffID,
		Type:      domain.TransactionInbound,
		Quantity:  quantity,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	sellerDisplay := ""
	if seller != nil {
		sellerDisplay = seller.Name
	}

	return &StockResult{
		Success: true,
		Message: fmt.Sprintf("✅ Added %d units of %s (SKU: %s). New stock: %d", quantity, product.Name, sku, newStock),
		SKU:     sku,
		Product: product.Name,
		Stock:   newStock,
		Seller:  sellerDisplay,
		Mutated: true,
		Action:  "ADD",
	}, nil
}

// RemoveStock records an outbound movement. The product must exist and the
// insufficient-stock guard is the only thing keeping stock non-negative;
// nothing is mutated when it trips.
func (s *InventoryService) RemoveStock(ctx context.Context, sku string, quantity int, destination string, staffID *int64) (*StockResult, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	product, err := tx.ProductBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	if product == nil {
		return &StockResult{
			Success: false,
			Message: fmt.Sprintf("❌ Product with SKU '%s' not found in inventory.", sku),
			SKU:     sku,
			Action:  "SHIP",
		}, nil
	}

	if product.CurrentStock < quantity {
		return &StockResult{
			Success: false,
			Message: fmt.Sprintf("❌ Insufficient stock for %s. Available: %d, Requested: %d", product.Name, product.CurrentStock, quantity),
			SKU:     sku,
			Product: product.Name,
			Stock:   product.CurrentStock,
			Action:  "SHIP",
		}, nil
	}

	newStock := product.CurrentStock - quantity
	if err := tx.SetProductStock(ctx, product.ID, newStock); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	if err := tx.InsertTransaction(ctx, domain.Transaction{
		ProductID:   product.ID,
		StaffID:     staffID,
		Type:        domain.TransactionOutbound,
		Quantity:    quantity,
		Destination: destination,
		Timestamp:   time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	dest := destination
	if dest == "" {
		dest = "destination"
	}

	seller := s.sellerNameFor(ctx, product.SellerID)

	return &StockResult{
		Success: true,
		Message: fmt.Sprintf("✅ Shipped %d units of %s (SKU: %s) to %s. Remaining stock: %d", quantity, product.Name, sku, dest, newStock),
		SKU:     sku,
		Product: product.Name,
		Stock:   newStock,
		Seller:  seller,
		Mutated: true,
		Action:  "SHIP",
	}, nil
}

// CheckStock reports one product when a SKU is given, otherwise the full
// inventory. An empty inventory is a success, not a failure.
func (s *InventoryService) CheckStock(ctx context.Context, sku string) (*StockResult, error) {
	if sku != "" {
		product, err := s.repo.ProductBySKU(ctx, sku)
		if err != nil {
			return nil, fmt.Errorf("lookup product: %w", err)
		}
		if product == nil {
			return &StockResult{
				Success: false,
				Message: fmt.Sprintf("❌ Product with SKU '%s' not found.", sku),
				SKU:     sku,
				Action:  "CHECK",
			}, nil
		}
		seller := s.sellerNameFor(ctx, product.SellerID)
		return &StockResult{
			Success: true,
			Message: fmt.Sprintf("📦 %s (SKU: %s)\n   Stock: %d units\n   Seller: %s", product.Name, sku, product.CurrentStock, seller),
			SKU:     sku,
			Product: product.Name,
			Stock:   product.CurrentStock,
			Seller:  seller,
			Action:  "CHECK",
		}, nil
	}

	items, err := s.repo.ListInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	if len(items) == 0 {
		return &StockResult{
			Success: true,
			Message: "📦 Inventory is currently empty.",
			Action:  "CHECK",
		}, nil
	}

	var b strings.Builder
	b.WriteString("📦 Current Inventory:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "   • %s (SKU: %s): %d units - Seller: %s\n", item.Name, item.SKU, item.Stock, item.Seller)
	}

	return &StockResult{
		Success: true,
		Message: strings.TrimSpace(b.String()),
		Action:  "CHECK",
	}, nil
}

// List returns the inventory read view for the dashboard API.
func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.repo.ListInventory(ctx)
}

// Search runs a case-insensitive substring search over product name and SKU.
func (s *InventoryService) Search(ctx context.Context, term string) ([]domain.InventoryItem, error) {
	return s.repo.SearchInventory(ctx, term)
}

// History returns the most recent movements for a product.
func (s *InventoryService) History(ctx context.Context, sku string, limit int) ([]domain.Transaction, error) {
	product, err := s.repo.ProductBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.repo.ProductTransactions(ctx, product.ID, limit)
}

// Summary renders the fixed-format snapshot fed into the slow-path prompt.
// It degrades in order: fresh listing, cached copy, static sentinel. It
// never returns an error.
func (s *InventoryService) Summary(ctx context.Context) string {
	items, err := s.repo.ListInventory(ctx)
	if err != nil {
		s.logger.Error("inventory summary read failed", zap.Error(err))
		if s.cache != nil {
			if cached, cerr := s.cache.GetSummary(ctx); cerr == nil && cached != "" {
				return cached
			}
		}
		return summaryUnavailable
	}

	if len(items) == 0 {
		return "No products in inventory."
	}

	var b strings.Builder
	b.WriteString("Current Inventory:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (SKU: %s): %d units (Seller: %s)\n", item.Name, item.SKU, item.Stock, item.Seller)
	}
	summary := strings.TrimSpace(b.String())

	if s.cache != nil {
		if err := s.cache.SetSummary(ctx, summary, summaryCacheTTL); err != nil {
			s.logger.Warn("summary cache write failed", zap.Error(err))
		}
	}
	return summary
}

func (s *InventoryService) sellerNameFor(ctx context.Context, sellerID int64) string {
	seller, err := s.repo.SellerByID(ctx, sellerID)
	if err != nil || seller == nil {
		return "Unknown"
	}
	return seller.Name
}

func businessIDFor(sellerName string) string {
	return "BIZ-" + strings.ToUpper(strings.ReplaceAll(sellerName, " ", "-"))
}

// productNameFor derives a display name from a SKU: hyphens to spaces,
// title-cased ("PHN-CHG-001" -> "Phn Chg 001").
func productNameFor(sku string) string {
	words := strings.Fields(strings.ReplaceAll(sku, "-", " "))
	for i, w := range words {
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}
