package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/jmorgan-io/shop-service/pkg/models"
)

// Postgres is the production Store, backed by database/sql and lib/pq.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) (*Postgres, error) {
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Postgres{db: db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			weight DECIMAL(10,2) NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id VARCHAR(255) PRIMARY KEY,
			status VARCHAR(50) NOT NULL,
			shipment_amount DECIMAL(10,2) NOT NULL,
			total_amount DECIMAL(10,2) NOT NULL,
			total_weight DECIMAL(10,2) NOT NULL,
			product_list TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bills (
			id VARCHAR(255) PRIMARY KEY,
			total_amount DECIMAL(10,2) NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (s *Postgres) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, price, weight, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Price, product.Weight, product.CreatedAt)
	return err
}

func (s *Postgres) ListProducts(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, name, price, weight, created_at
		FROM products ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Weight, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Postgres) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	query := `
		SELECT id, name, price, weight, created_at
		FROM products WHERE id = $1
	`
	p := &models.Product{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Weight, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Postgres) ResolveProducts(ctx context.Context, ids []string) ([]models.Product, error) {
	query := `
		SELECT id, name, price, weight, created_at
		FROM products WHERE id = ANY($1)
	`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Weight, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Postgres) DeleteAllProducts(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products`)
	return err
}

func (s *Postgres) CreateOrder(ctx context.Context, order *models.Order) error {
	productList, err := json.Marshal(order.ProductList)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (id, status, shipment_amount, total_amount, total_weight, product_list, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, query,
		order.ID, order.Status, order.ShipmentAmount, order.TotalAmount,
		order.TotalWeight, string(productList), order.CreatedAt)
	return err
}

func (s *Postgres) ListOrders(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT id, status, shipment_amount, total_amount, total_weight, product_list, created_at
		FROM orders ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (s *Postgres) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	query := `
		SELECT id, status, shipment_amount, total_amount, total_weight, product_list, created_at
		FROM orders WHERE id = $1
	`
	order, err := scanOrder(s.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func scanOrder(scan func(dest ...interface{}) error) (*models.Order, error) {
	order := &models.Order{}
	var productList string
	err := scan(&order.ID, &order.Status, &order.ShipmentAmount,
		&order.TotalAmount, &order.TotalWeight, &productList, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(productList), &order.ProductList); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Postgres) UpdateOrderStatus(ctx context.Context, id, status string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkFound(result)
}

func (s *Postgres) PayOrder(ctx context.Context, id string, bill *models.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, models.OrderStatusPaid, id)
	if err != nil {
		return err
	}
	if err := checkFound(result); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bills (id, total_amount, created_at) VALUES ($1, $2, $3)`,
		bill.ID, bill.TotalAmount, bill.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Postgres) DeleteAllOrders(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM orders`)
	return err
}

func (s *Postgres) CreateBill(ctx context.Context, bill *models.Bill) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bills (id, total_amount, created_at) VALUES ($1, $2, $3)`,
		bill.ID, bill.TotalAmount, bill.CreatedAt)
	return err
}

func (s *Postgres) ListBills(ctx context.Context) ([]models.Bill, error) {
	query := `
		SELECT id, total_amount, created_at
		FROM bills ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.TotalAmount, &b.CreatedAt); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (s *Postgres) DeleteAllBills(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM bills`)
	return err
}

func checkFound(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
