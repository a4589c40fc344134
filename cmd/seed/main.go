// Command seed creates the database schema and optionally loads the sample
// sellers, products and staff used for local development.
package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/Pilot202/skylit-logistic-backend/internal/config"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sellers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		business_id VARCHAR(64) NOT NULL UNIQUE,
		contact_info VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		seller_id BIGINT,
		sku VARCHAR(64) NOT NULL,
		product_name VARCHAR(255),
		current_stock INT NOT NULL DEFAULT 0,
		INDEX idx_products_sku (sku),
		FOREIGN KEY (seller_id) REFERENCES sellers(id)
	)`,
	`CREATE TABLE IF NOT EXISTS staff (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		phone_number VARCHAR(32) UNIQUE,
		role ENUM('MANAGER', 'WAREHOUSE')
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		staff_id BIGINT,
		type ENUM('INBOUND', 'OUTBOUND') NOT NULL,
		quantity INT NOT NULL,
		destination VARCHAR(255),
		timestamp DATETIME NOT NULL,
		FOREIGN KEY (product_id) REFERENCES products(id),
		FOREIGN KEY (staff_id) REFERENCES staff(id)
	)`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		sender VARCHAR(64),
		direction VARCHAR(8),
		message TEXT,
		timestamp DATETIME NOT NULL,
		INDEX idx_conversations_sender (sender)
	)`,
}

// Dropped in reverse dependency order.
var dropStatements = []string{
	`DROP TABLE IF EXISTS conversations`,
	`DROP TABLE IF EXISTS transactions`,
	`DROP TABLE IF EXISTS products`,
	`DROP TABLE IF EXISTS staff`,
	`DROP TABLE IF EXISTS sellers`,
}

func main() {
	reset := flag.Bool("reset", false, "drop all tables before creating (destroys data)")
	noSeed := flag.Bool("no-seed", false, "create schema only, skip sample data")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("failed to open mysql", zap.Error(err))
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping mysql", zap.Error(err))
	}

	if *reset {
		logger.Warn("dropping all tables")
		for _, stmt := range dropStatements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				logger.Fatal("drop failed", zap.Error(err))
			}
		}
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Fatal("schema creation failed", zap.Error(err))
		}
	}
	logger.Info("database tables created")

	if *noSeed {
		return
	}

	if err := seedSampleData(ctx, db, logger); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
}

func seedSampleData(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sellers`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		logger.Info("database already has data, skipping seed")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	sellers := []struct {
		name, businessID, contact string
	}{
		{"Acme Corp", "BIZ-ACME", "acme@example.com"},
		{"TechSupply Inc", "BIZ-TECH", "tech@example.com"},
		{"Global Traders", "BIZ-GLOBAL", "global@example.com"},
	}
	sellerIDs := make([]int64, 0, len(sellers))
	for _, s := range sellers {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO sellers (name, business_id, contact_info) VALUES (?, ?, ?)`,
			s.name, s.businessID, s.contact)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		sellerIDs = append(sellerIDs, id)
	}

	products := []struct {
		seller int
		sku    string
		name   string
		stock  int
	}{
		{0, "PHN-CHG-001", "Phone Charger", 50},
		{0, "USB-CBL-001", "USB Cable", 100},
		{1, "HDM-CBL-001", "HDMI Cable", 75},
		{1, "LAP-BAG-001", "Laptop Bag", 30},
		{2, "MSE-WRL-001", "Wireless Mouse", 60},
		{2, "KBD-MEC-001", "Mechanical Keyboard", 25},
	}
	for _, p := range products {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (seller_id, sku, product_name, current_stock) VALUES (?, ?, ?, ?)`,
			sellerIDs[p.seller], p.sku, p.name, p.stock)
		if err != nil {
			return err
		}
	}

	staff := []struct {
		phone, role string
	}{
		{"+1234567890", "MANAGER"},
		{"+0987654321", "WAREHOUSE"},
	}
	for _, s := range staff {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO staff (phone_number, role) VALUES (?, ?)`, s.phone, s.role); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Info("sample data seeded",
		zap.Int("sellers", len(sellers)),
		zap.Int("products", len(products)),
		zap.Int("staff", len(staff)))
	return nil
}
