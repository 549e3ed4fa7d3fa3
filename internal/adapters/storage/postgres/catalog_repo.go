package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petstore-client/internal/backend/catalog"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) CreateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.Name, c.Description, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return catalog.Category{}, err
	}
	return c, nil
}

func (r *CatalogRepo) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, created_at
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Category, 0)
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) CreatePet(ctx context.Context, p catalog.Pet) (catalog.Pet, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO pets (
			category_id, name, description, price, gender, image_url,
			is_available, stock_quantity, min_stock_threshold,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		p.CategoryID,
		p.Name,
		p.Description,
		p.Price,
		string(p.Gender),
		p.ImageURL,
		p.IsAvailable,
		p.StockQuantity,
		p.MinStockThreshold,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return catalog.Pet{}, err
	}
	return p, nil
}

const petColumns = `
	id, category_id, name, description, price::float8, gender, image_url,
	is_available, stock_quantity, min_stock_threshold,
	created_at, updated_at`

func (r *CatalogRepo) GetPet(ctx context.Context, id int64) (catalog.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Pet{}, catalog.ErrNotFound
		}
		return catalog.Pet{}, err
	}
	return p, nil
}

func (r *CatalogRepo) ListPets(ctx context.Context) ([]catalog.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+petColumns+` FROM pets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AdjustStock aplica delta en un solo UPDATE; la condición evita stock negativo
// sin necesidad de SELECT ... FOR UPDATE.
func (r *CatalogRepo) AdjustStock(ctx context.Context, id int64, delta int) (catalog.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE pets
		SET stock_quantity = stock_quantity + $2, updated_at = now()
		WHERE id = $1 AND stock_quantity + $2 >= 0
		RETURNING `+petColumns, id, delta)
	p, err := scanPet(row)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return catalog.Pet{}, err
	}

	// Sin filas: o no existe, o no alcanza el stock.
	if _, getErr := r.GetPet(ctx, id); getErr != nil {
		return catalog.Pet{}, getErr
	}
	return catalog.Pet{}, catalog.ErrInsufficientStock
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(s rowScanner) (catalog.Pet, error) {
	var (
		p      catalog.Pet
		gender string
	)
	if err := s.Scan(
		&p.ID,
		&p.CategoryID,
		&p.Name,
		&p.Description,
		&p.Price,
		&gender,
		&p.ImageURL,
		&p.IsAvailable,
		&p.StockQuantity,
		&p.MinStockThreshold,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return catalog.Pet{}, err
	}
	p.Gender = catalog.Gender(gender)
	return p, nil
}
