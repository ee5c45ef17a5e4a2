package branch

import (
	"context"
	"database/sql"
	"errors"
)

type MySQLRepo struct {
	DB *sql.DB
}

func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{DB: db}
}

func (r *MySQLRepo) Create(ctx context.Context, b *Branch) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO branches (id, name, address, phone) VALUES (?, ?, ?, ?)",
		b.ID, b.Name, b.Address, b.Phone,
	)
	return err
}

func (r *MySQLRepo) FindByID(ctx context.Context, id string) (*Branch, error) {
	var b Branch
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, address, phone FROM branches WHERE id = ?", id,
	).Scan(&b.ID, &b.Name, &b.Address, &b.Phone)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *MySQLRepo) List(ctx context.Context) ([]*Branch, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, address, phone FROM branches ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	branches := []*Branch{}
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone); err != nil {
			return nil, err
		}
		branches = append(branches, &b)
	}
	return branches, rows.Err()
}
