// Command seed fills a development database with fake branches and
// accounts. Every account gets the password "password123"; a super admin
// is created as admin@booking.local.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ZiadAdelEissa/BookingBackend/internal/config"
	"github.com/ZiadAdelEissa/BookingBackend/internal/mysql"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/account"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/branch"
)

const (
	branchCount    = 3
	usersPerBranch = 5
	seedPassword   = "password123"
)

func main() {
	cfg := config.Load()

	db := mysql.LoadDB(cfg.MySQLDSN)
	defer db.Close()

	accounts := account.NewMySQLRepo(db)
	branches := branch.NewMySQLRepo(db)
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	createAccount := func(acc *account.Account) {
		acc.Password = string(hashed)
		if _, err := accounts.FindByEmail(ctx, acc.Email); err == nil {
			log.Printf("account %s already exists, skipping", acc.Email)
			return
		} else if !errors.Is(err, account.ErrNotFound) {
			log.Fatal(err)
		}
		if err := accounts.Create(ctx, acc); err != nil {
			log.Fatal(err)
		}
		log.Printf("created %s account %s", acc.Role, acc.Email)
	}

	createAccount(&account.Account{
		ID:    uuid.NewString(),
		Name:  "Admin",
		Email: "admin@booking.local",
		Phone: gofakeit.Phone(),
		Role:  account.RoleSuperAdmin,
	})

	for i := 0; i < branchCount; i++ {
		b := &branch.Branch{
			ID:      uuid.NewString(),
			Name:    gofakeit.Company(),
			Address: gofakeit.Address().Address,
			Phone:   gofakeit.Phone(),
		}
		if err := branches.Create(ctx, b); err != nil {
			log.Fatal(err)
		}
		log.Printf("created branch %s (%s)", b.Name, b.ID)

		createAccount(&account.Account{
			ID:       uuid.NewString(),
			Name:     gofakeit.Name(),
			Email:    gofakeit.Email(),
			Phone:    gofakeit.Phone(),
			Role:     account.RoleBranchAdmin,
			BranchID: &b.ID,
		})

		for j := 0; j < usersPerBranch; j++ {
			createAccount(&account.Account{
				ID:    uuid.NewString(),
				Name:  gofakeit.Name(),
				Email: gofakeit.Email(),
				Phone: gofakeit.Phone(),
				Role:  account.RoleUser,
			})
		}
	}

	log.Println("seed complete")
}
