package branch

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("branch not found")

type Branch struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type Repository interface {
	Create(ctx context.Context, b *Branch) error
	FindByID(ctx context.Context, id string) (*Branch, error)
	List(ctx context.Context) ([]*Branch, error)
}
