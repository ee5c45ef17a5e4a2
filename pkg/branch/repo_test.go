package branch_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/ZiadAdelEissa/BookingBackend/pkg/branch"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)

	schema := `
	CREATE TABLE branches (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT ''
	);`

	_, err = db.Exec(schema)
	assert.NoError(t, err)

	return db
}

func TestMySQLRepo_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := branch.NewMySQLRepo(db)
	ctx := context.Background()

	b := &branch.Branch{
		ID:      "branch1",
		Name:    "Cairo Downtown",
		Address: "12 Tahrir Square",
		Phone:   "+20220000000",
	}
	assert.NoError(t, repo.Create(ctx, b))

	found, err := repo.FindByID(ctx, b.ID)
	assert.NoError(t, err)
	assert.Equal(t, b.Name, found.Name)
	assert.Equal(t, b.Address, found.Address)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, branch.ErrNotFound)
}

func TestMySQLRepo_List(t *testing.T) {
	db := setupTestDB(t)
	repo := branch.NewMySQLRepo(db)
	ctx := context.Background()

	branches, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, branches)

	assert.NoError(t, repo.Create(ctx, &branch.Branch{ID: "b1", Name: "Milano"}))
	assert.NoError(t, repo.Create(ctx, &branch.Branch{ID: "b2", Name: "Alexandria"}))

	branches, err = repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, branches, 2)
	// ordered by name
	assert.Equal(t, "Alexandria", branches[0].Name)
	assert.Equal(t, "Milano", branches[1].Name)
}
