package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

type MySQLRepo struct {
	DB *sql.DB
}

func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{DB: db}
}

func (r *MySQLRepo) Create(ctx context.Context, acc *Account) error {
	var branchID sql.NullString
	if acc.BranchID != nil {
		branchID = sql.NullString{String: *acc.BranchID, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (id, name, email, phone, password, role, branch_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
		acc.ID, acc.Name, acc.Email, acc.Phone, acc.Password, string(acc.Role), branchID,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *MySQLRepo) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return r.findOne(ctx,
		"SELECT id, name, email, phone, password, role, branch_id FROM accounts WHERE email = ?", email)
}

func (r *MySQLRepo) FindByID(ctx context.Context, id string) (*Account, error) {
	return r.findOne(ctx,
		"SELECT id, name, email, phone, password, role, branch_id FROM accounts WHERE id = ?", id)
}

func (r *MySQLRepo) findOne(ctx context.Context, query string, arg any) (*Account, error) {
	var (
		acc      Account
		role     string
		branchID sql.NullString
	)

	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&acc.ID, &acc.Name, &acc.Email, &acc.Phone, &acc.Password, &role, &branchID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	acc.Role = Role(role)
	if branchID.Valid {
		acc.BranchID = &branchID.String
	}
	return &acc, nil
}
