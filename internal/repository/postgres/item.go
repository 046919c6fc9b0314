package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `k.id, k.nama, k.deskripsi, k.jumlah_total, k.jumlah_tersedia, k.kategori_id, COALESCE(c.nama, ''), k.created_at::text`

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	// New items start with everything on the shelf.
	it.AvailableUnits = it.TotalUnits
	query := `INSERT INTO komoditas (nama, deskripsi, jumlah_total, jumlah_tersedia, kategori_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, it.Name, it.Description, it.TotalUnits, it.AvailableUnits, it.CategoryID, time.Now()).Scan(&it.ID)
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	it := &domain.Item{}
	query := `SELECT ` + itemColumns + ` FROM komoditas k LEFT JOIN kategori c ON c.id = k.kategori_id WHERE k.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&it.ID, &it.Name, &it.Description, &it.TotalUnits, &it.AvailableUnits, &it.CategoryID, &it.CategoryName, &it.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Update edits descriptive fields and total units. Available units follow the
// change in total so that outstanding reservations are preserved, and never
// leave the [0, total] range.
func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE komoditas
	          SET nama=$1, deskripsi=$2, kategori_id=$3,
	              jumlah_tersedia = GREATEST(0, LEAST($4, jumlah_tersedia + ($4 - jumlah_total))),
	              jumlah_total=$4
	          WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, it.Name, it.Description, it.CategoryID, it.TotalUnits, it.ID)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *itemRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM komoditas WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *itemRepository) List(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM komoditas k LEFT JOIN kategori c ON c.id = k.kategori_id ORDER BY k.nama`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.TotalUnits, &it.AvailableUnits, &it.CategoryID, &it.CategoryName, &it.CreatedOn); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *itemRepository) Reserve(ctx context.Context, itemID, qty int32) error {
	return reserveStock(ctx, r.db, itemID, qty)
}

func (r *itemRepository) Release(ctx context.Context, itemID, qty int32) error {
	return releaseStock(ctx, r.db, itemID, qty)
}

// execer lets the stock mutators run either on the pool or inside a
// loan-lifecycle transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// reserveStock decrements available units. The guard in the WHERE clause makes
// over-reservation impossible; zero rows means either the item is missing or
// the stock is insufficient.
func reserveStock(ctx context.Context, q execer, itemID, qty int32) error {
	res, err := q.ExecContext(ctx,
		`UPDATE komoditas SET jumlah_tersedia = jumlah_tersedia - $1 WHERE id = $2 AND jumlah_tersedia >= $1`,
		qty, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// releaseStock increments available units, clamped so availability never
// exceeds the total.
func releaseStock(ctx context.Context, q execer, itemID, qty int32) error {
	res, err := q.ExecContext(ctx,
		`UPDATE komoditas SET jumlah_tersedia = LEAST(jumlah_total, jumlah_tersedia + $1) WHERE id = $2`,
		qty, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
