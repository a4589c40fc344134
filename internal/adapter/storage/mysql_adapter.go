// Package storage provides the MySQL repository and the Redis adapter
// (dashboard broadcast + summary cache).
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Pilot202/skylit-logistic-backend/internal/core/domain"
	"github.com/Pilot202/skylit-logistic-backend/internal/port"
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) Begin(ctx context.Context) (port.InventoryTx, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &mysqlTx{tx: tx}, nil
}

func (m *MySQLAdapter) ProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return scanProduct(m.db.QueryRowContext(ctx, `
		SELECT id, seller_id, sku, product_name, current_stock
		FROM products WHERE sku = ?`, sku))
}

func (m *MySQLAdapter) SellerByID(ctx context.Context, id int64) (*domain.Seller, error) {
	var s domain.Seller
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, business_id, COALESCE(contact_info, '')
		FROM sellers WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.BusinessID, &s.ContactInfo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query seller: %w", err)
	}
	return &s, nil
}

func (m *MySQLAdapter) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return m.queryItems(ctx, `
		SELECT p.sku, p.product_name, p.current_stock, COALESCE(s.name, 'Unknown')
		FROM products p
		LEFT JOIN sellers s ON s.id = p.seller_id
		ORDER BY p.id`)
}

func (m *MySQLAdapter) SearchInventory(ctx context.Context, term string) ([]domain.InventoryItem, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	return m.queryItems(ctx, `
		SELECT p.sku, p.product_name, p.current_stock, COALESCE(s.name, 'Unknown')
		FROM products p
		LEFT JOIN sellers s ON s.id = p.seller_id
		WHERE LOWER(p.product_name) LIKE ? OR LOWER(p.sku) LIKE ?
		ORDER BY p.id`, pattern, pattern)
}

func (m *MySQLAdapter) ProductTransactions(ctx context.Context, productID int64, limit int) ([]domain.Transaction, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, product_id, staff_id, type, quantity, COALESCE(destination, ''), timestamp
		FROM transactions WHERE product_id = ?
		ORDER BY timestamp DESC LIMIT ?`, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var staffID sql.NullInt64
		if err := rows.Scan(&t.ID, &t.ProductID, &staffID, &t.Type, &t.Quantity, &t.Destination, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if staffID.Valid {
			t.StaffID = &staffID.Int64
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) StaffByPhone(ctx context.Context, phone string) (*domain.Staff, error) {
	// Senders may arrive with the transport's "whatsapp:" prefix.
	phone = strings.TrimPrefix(phone, "whatsapp:")

	var s domain.Staff
	err := m.db.QueryRowContext(ctx, `
		SELECT id, phone_number, role FROM staff WHERE phone_number = ?`, phone,
	).Scan(&s.ID, &s.PhoneNumber, &s.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query staff: %w", err)
	}
	return &s, nil
}

func (m *MySQLAdapter) LogConversation(ctx context.Context, c domain.Conversation) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO conversations (sender, direction, message, timestamp)
		VALUES (?, ?, ?, ?)`,
		c.Sender, c.Direction, c.Message, c.Timestamp)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) queryItems(ctx context.Context, query string, args ...any) ([]domain.InventoryItem, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.SKU, &item.Name, &item.Stock, &item.Seller); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type mysqlTx struct {
	tx *sql.Tx
}

func (t *mysqlTx) ProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return scanProduct(t.tx.QueryRowContext(ctx, `
		SELECT id, seller_id, sku, product_name, current_stock
		FROM products WHERE sku = ?`, sku))
}

func (t *mysqlTx) SellerByName(ctx context.Context, name string) (*domain.Seller, error) {
	var s domain.Seller
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, name, business_id, COALESCE(contact_info, '')
		FROM sellers WHERE LOWER(name) = LOWER(?)`, name,
	).Scan(&s.ID, &s.Name, &s.BusinessID, &s.ContactInfo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query seller: %w", err)
	}
	return &s, nil
}

func (t *mysqlTx) CreateSeller(ctx context.Context, s *domain.Seller) error {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO sellers (name, business_id, contact_info)
		VALUES (?, ?, ?)`,
		s.Name, s.BusinessID, s.ContactInfo)
	if err != nil {
		return fmt.Errorf("insert seller: %w", err)
	}
	s.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("seller id: %w", err)
	}
	return nil
}

func (t *mysqlTx) CreateProduct(ctx context.Context, p *domain.Product) error {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO products (seller_id, sku, product_name, current_stock)
		VALUES (?, ?, ?, ?)`,
		p.SellerID, p.SKU, p.Name, p.CurrentStock)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	return nil
}

func (t *mysqlTx) SetProductStock(ctx context.Context, productID int64, stock int) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE products SET current_stock = ? WHERE id = ?`, stock, productID)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

func (t *mysqlTx) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	var staffID any
	if txn.StaffID != nil {
		staffID = *txn.StaffID
	}
	var dest any
	if txn.Destination != "" {
		dest = txn.Destination
	}
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO transactions (product_id, staff_id, type, quantity, destination, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		txn.ProductID, staffID, txn.Type, txn.Quantity, dest, txn.Timestamp)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (t *mysqlTx) Commit() error   { return t.tx.Commit() }
func (t *mysqlTx) Rollback() error { return t.tx.Rollback() }

func scanProduct(row *sql.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.SellerID, &p.SKU, &p.Name, &p.CurrentStock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}
