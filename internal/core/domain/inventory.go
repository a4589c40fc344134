package domain

import "time"

type TransactionType string

const (
	TransactionInbound  TransactionType = "INBOUND"
	TransactionOutbound TransactionType = "OUTBOUND"
)

type StaffRole string

const (
	StaffRoleManager   StaffRole = "MANAGER"
	StaffRoleWarehouse StaffRole = "WAREHOUSE"
)

type Seller struct {
	ID          int64
	Name        string
	BusinessID  string
	ContactInfo string
}

type Product struct {
	ID           int64
	SellerID     int64
	SKU          string
	Name         string
	CurrentStock int
}

// Transaction is an append-only ledger entry for one stock movement.
// The sum of INBOUND minus OUTBOUND quantities for a product must equal
// its CurrentStock after every successful operation.
type Transaction struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	StaffID     *int64          `json:"staff_id,omitempty"`
	Type        TransactionType `json:"type"`
	Quantity    int             `json:"quantity"`
	Destination string          `json:"destination,omitempty"` // OUTBOUND only
	Timestamp   time.Time       `json:"timestamp"`
}

type Staff struct {
	ID          int64
	PhoneNumber string
	Role        StaffRole
}

// InventoryItem is the read view used for listings and the LLM prompt summary.
type InventoryItem struct {
	SKU    string `json:"sku"`
	Name   string `json:"name"`
	Stock  int    `json:"stock"`
	Seller string `json:"seller"`
}

// StockEvent is fanned out to the live dashboard after a successful mutation.
type StockEvent struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Product   string    `json:"product"`
	Stock     int       `json:"stock"`
	Seller    string    `json:"seller"`
	Action    string    `json:"action"` // ADD | SHIP
	Timestamp time.Time `json:"timestamp"`
}
