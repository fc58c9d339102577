package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rogerio-castellano/stock-dashboard/internal/models"
)

const queryTimeout = 3 * time.Second

const productColumns = `id, name, category, quantity, price, min_stock, created_at, updated_at`

// SQLProductRepository stores products through sqlx on any supported driver.
type SQLProductRepository struct {
	db *sqlx.DB
}

func NewSQLProductRepository(db *sqlx.DB) *SQLProductRepository {
	return &SQLProductRepository{db: db}
}

func (r *SQLProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `INSERT INTO products (name, category, quantity, price, min_stock, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	id, err := insertReturningID(ctx, r.db, query, p.Name, p.Category, p.Quantity, p.Price, p.MinStock, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return models.Product{}, err
	}
	p.ID = id
	return p, nil
}

func (r *SQLProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM products ORDER BY id`); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *SQLProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

func (r *SQLProductRepository) GetByName(ctx context.Context, name string) (models.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE name = ? ORDER BY id LIMIT 1`, name)
}

func (r *SQLProductRepository) getOne(ctx context.Context, query string, arg any) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *SQLProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`UPDATE products SET name = ?, category = ?, quantity = ?, price = ?, min_stock = ?, updated_at = ? WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, p.Name, p.Category, p.Quantity, p.Price, p.MinStock, p.UpdatedAt, p.ID); err != nil {
		return models.Product{}, err
	}
	// mysql reports zero affected rows when nothing changed, so existence is
	// checked by reading the row back.
	return r.GetByID(ctx, p.ID)
}

func (r *SQLProductRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if rowsAffected, _ := res.RowsAffected(); rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// insertReturningID runs an INSERT written with ? placeholders and returns
// the generated id. Postgres has no LastInsertId so it goes through RETURNING.
func insertReturningID(ctx context.Context, db *sqlx.DB, query string, args ...any) (int, error) {
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		var id int
		if err := db.QueryRowxContext(ctx, db.Rebind(query+` RETURNING id`), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}
