package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/geniusdatahub/gdh_api/internal/models"
)

// OrderPGRepository stores orders in Postgres. Line items are kept as a JSONB
// column since they are written once and only ever read back whole.
type OrderPGRepository struct {
	db *sqlx.DB
}

// NewOrderPGRepository creates a Postgres-backed order store.
func NewOrderPGRepository(db *sqlx.DB) *OrderPGRepository {
	return &OrderPGRepository{db: db}
}

const orderColumns = `SELECT reference, items, email, first_name, last_name, phone,
    recipient_number, address, city, status, supplier_message, created_at`

type orderRow struct {
	Reference       string    `db:"reference"`
	Items           []byte    `db:"items"`
	Email           string    `db:"email"`
	FirstName       string    `db:"first_name"`
	LastName        string    `db:"last_name"`
	Phone           string    `db:"phone"`
	RecipientNumber string    `db:"recipient_number"`
	Address         string    `db:"address"`
	City            string    `db:"city"`
	Status          string    `db:"status"`
	SupplierMessage string    `db:"supplier_message"`
	CreatedAt       time.Time `db:"created_at"`
}

func (row *orderRow) toModel() (*models.Order, error) {
	var items []models.OrderItem
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &items); err != nil {
			return nil, err
		}
	}
	return &models.Order{
		Reference:       row.Reference,
		Items:           items,
		Email:           row.Email,
		FirstName:       row.FirstName,
		LastName:        row.LastName,
		Phone:           row.Phone,
		RecipientNumber: row.RecipientNumber,
		Address:         row.Address,
		City:            row.City,
		Status:          models.OrderStatus(row.Status),
		SupplierMessage: row.SupplierMessage,
		CreatedAt:       row.CreatedAt,
	}, nil
}

// Append inserts one order record.
func (r *OrderPGRepository) Append(order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	const q = `
        INSERT INTO orders (reference, items, email, first_name, last_name, phone,
            recipient_number, address, city, status, supplier_message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.db.Exec(q,
		order.Reference, items, order.Email, order.FirstName, order.LastName,
		order.Phone, order.RecipientNumber, order.Address, order.City,
		string(order.Status), order.SupplierMessage, order.CreatedAt)
	return err
}

// List returns all recorded orders, oldest first.
func (r *OrderPGRepository) List() ([]models.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, orderColumns+` FROM orders ORDER BY created_at`); err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(rows))
	for i := range rows {
		o, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

// FindByReference returns the earliest order with the given reference, or nil.
func (r *OrderPGRepository) FindByReference(reference string) (*models.Order, error) {
	var row orderRow
	err := r.db.Get(&row, orderColumns+` FROM orders WHERE reference = $1 ORDER BY created_at LIMIT 1`, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toModel()
}
