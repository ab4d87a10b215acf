package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Table is the name used for change notifications about items.
const Table = "items"

// ItemRepo handles the items table.
type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

// Insert stores a new item and returns its id. The ID field of it is ignored.
func (r *ItemRepo) Insert(ctx context.Context, it Item) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO items(name, price, quantity, created_at, updated_at)
	VALUES(?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, it.Name, it.Price.String(), it.Quantity)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update overwrites name, price and quantity of the row with it.ID.
// Updating a missing row is not an error.
func (r *ItemRepo) Update(ctx context.Context, it Item) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE items SET name = ?, price = ?, quantity = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`, it.Name, it.Price.String(), it.Quantity, it.ID)
	return err
}

// Delete removes the row with it.ID. Deleting a missing row is not an error.
func (r *ItemRepo) Delete(ctx context.Context, it Item) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, it.ID)
	return err
}

// DeleteAll removes every row and returns how many were removed.
func (r *ItemRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Get returns the item with id, or nil when there is none.
func (r *ItemRepo) Get(ctx context.Context, id int64) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, price, quantity, created_at, updated_at FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

// List returns all items ordered by name.
func (r *ItemRepo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price, quantity, created_at, updated_at FROM items ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Count returns the number of rows.
func (r *ItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}

// scanItem handles both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row scanner) (Item, error) {
	var it Item
	var created, updated sqlTime
	if err := row.Scan(&it.ID, &it.Name, &it.Price, &it.Quantity, &created, &updated); err != nil {
		return Item{}, err
	}
	it.CreatedAt = created.Time
	it.UpdatedAt = updated.Time
	return it, nil
}

// sqlTime accepts the TIMESTAMP representations of both sqlite drivers.
type sqlTime struct {
	Time time.Time
}

var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339Nano,
}

func (t *sqlTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", src)
	}
}

func (t *sqlTime) parse(s string) error {
	for _, layout := range sqliteTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("scan timestamp: unrecognised value %q", s)
}
