package repository

import (
	"database/sql"
	"errors"

	"catalog/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrPageOutOfRange is returned by List when the requested page does not
// exist. An out-of-range page is an error, not an empty result; only page 1
// of an empty table yields an empty list.
var ErrPageOutOfRange = errors.New("page out of range")

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id int64) (*models.Product, error)
	List(page, limit int) (items []models.Product, total int, err error)
	Update(product *models.Product) error
	Delete(id int64) error
}

type productRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProductRepository(db *sqlx.DB, logger *zap.Logger) ProductRepository {
	return &productRepository{db: db, logger: logger}
}

func (r *productRepository) Create(product *models.Product) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}

	query := `INSERT INTO products (name, price, quantity) VALUES ($1, $2, $3) RETURNING id`
	if err := tx.QueryRowx(query, product.Name, product.Price, product.Quantity).Scan(&product.ID); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *productRepository) GetByID(id int64) (*models.Product, error) {
	var product models.Product
	query := `SELECT id, name, price, quantity FROM products WHERE id = $1`
	err := r.db.Get(&product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns the requested page ordered by id, plus the total row count.
func (r *productRepository) List(page, limit int) ([]models.Product, int, error) {
	if page < 1 || limit < 1 {
		return nil, 0, ErrPageOutOfRange
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM products`); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if total > 0 && offset >= total {
		return nil, 0, ErrPageOutOfRange
	}

	items := []models.Product{}
	query := `SELECT id, name, price, quantity FROM products ORDER BY id LIMIT $1 OFFSET $2`
	if err := r.db.Select(&items, query, limit, offset); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *productRepository) Update(product *models.Product) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}

	query := `UPDATE products SET name = $1, price = $2, quantity = $3 WHERE id = $4`
	res, err := tx.Exec(query, product.Name, product.Price, product.Quantity, product.ID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if affected == 0 {
		_ = tx.Rollback()
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *productRepository) Delete(id int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}

	res, err := tx.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if affected == 0 {
		_ = tx.Rollback()
		return ErrNotFound
	}

	return tx.Commit()
}
