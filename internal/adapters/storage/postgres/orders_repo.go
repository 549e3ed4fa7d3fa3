package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"petstore-client/internal/backend/orders"
)

type OrdersRepo struct {
	db *sql.DB
}

func NewOrdersRepo(db *sql.DB) *OrdersRepo {
	return &OrdersRepo{db: db}
}

func (r *OrdersRepo) Create(ctx context.Context, o orders.Order) (orders.Order, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			number, user_id, pet_id, quantity, total_price, status,
			delivery_method, pickup_date, recipient_name,
			order_date, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		o.Number,
		o.UserID,
		o.PetID,
		o.Quantity,
		o.TotalPrice,
		string(o.Status),
		string(o.DeliveryMethod),
		toNullDate(o.PickupDate),
		o.RecipientName,
		o.OrderDate,
		o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return orders.Order{}, err
	}
	return o, nil
}

// UpdateStatus es un UPDATE condicional: dos transiciones concurrentes
// desde el mismo status no pueden ganar las dos.
func (r *OrdersRepo) UpdateStatus(ctx context.Context, id int64, from, to orders.Status, at time.Time) (orders.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING `+orderColumns,
		id,
		string(from),
		string(to),
		at,
	)
	o, err := scanOrder(row)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return orders.Order{}, err
	}

	// Sin filas: o no existe o el status ya no es from.
	if _, err := r.GetByID(ctx, id); err != nil {
		return orders.Order{}, err
	}
	return orders.Order{}, orders.ErrStatusConflict
}

const orderColumns = `
	id, number::text, user_id, pet_id, quantity, total_price::float8, status,
	delivery_method, pickup_date, recipient_name, order_date, updated_at`

func (r *OrdersRepo) GetByID(ctx context.Context, id int64) (orders.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return orders.Order{}, orders.ErrNotFound
		}
		return orders.Order{}, err
	}
	return o, nil
}

func (r *OrdersRepo) List(ctx context.Context) ([]orders.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_date DESC, id DESC`)
}

func (r *OrdersRepo) ListByUser(ctx context.Context, userID int64) ([]orders.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC, id DESC
	`, userID)
}

func (r *OrdersRepo) list(ctx context.Context, query string, args ...any) ([]orders.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]orders.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrder(s rowScanner) (orders.Order, error) {
	var (
		o              orders.Order
		status, method string
		pickup         sql.NullTime
	)
	if err := s.Scan(
		&o.ID,
		&o.Number,
		&o.UserID,
		&o.PetID,
		&o.Quantity,
		&o.TotalPrice,
		&status,
		&method,
		&pickup,
		&o.RecipientName,
		&o.OrderDate,
		&o.UpdatedAt,
	); err != nil {
		return orders.Order{}, err
	}

	o.Status = orders.Status(status)
	o.DeliveryMethod = orders.DeliveryMethod(method)
	if pickup.Valid {
		// pickup_date es date; pgx lo devuelve como medianoche UTC
		t := pickup.Time
		o.PickupDate = &t
	}
	return o, nil
}
