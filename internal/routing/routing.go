package routing

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ZiadAdelEissa/BookingBackend/pkg/account"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/auth"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/branch"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/handlers"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/middleware"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/session"
)

func InitRoutes(api *mux.Router, db *sql.DB, sessions session.Store, transport *session.Transport, logger *slog.Logger) {

	accountRepo := account.NewMySQLRepo(db)
	branchRepo := branch.NewMySQLRepo(db)

	authService := auth.NewService(accountRepo, branchRepo, sessions)
	authHandler := handlers.NewAuthHandler(authService, transport, logger)
	branchHandler := handlers.NewBranchHandler(branchRepo, logger)

	gate := middleware.NewGate(transport, sessions, accountRepo, logger)
	protect := func(h http.HandlerFunc, preds ...middleware.Predicate) http.Handler {
		return gate.Protect(preds...)(h)
	}

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	authRouter := api.PathPrefix("/auth").Subrouter()
	branchRouter := api.PathPrefix("/branches").Subrouter()
	adminRouter := api.PathPrefix("/admin").Subrouter()

	/* public auth routes */
	authRouter.HandleFunc("/register", authHandler.Register).Methods("POST").Name("register")
	authRouter.HandleFunc("/login", authHandler.Login).Methods("POST").Name("login")
	authRouter.HandleFunc("/logout", authHandler.Logout).Methods("POST").Name("logout")

	/* session-gated */
	authRouter.Handle("/me", protect(authHandler.Me,
		middleware.RequireSession(),
	)).Methods("GET")

	/* branch registry: reads for branch admins and up, writes for super admins */
	branchRouter.Handle("", protect(branchHandler.List,
		middleware.RequireSession(),
		middleware.RequireRole(account.RoleBranchAdmin),
	)).Methods("GET")
	branchRouter.Handle("", protect(branchHandler.Create,
		middleware.RequireSession(),
		middleware.RequireRole(account.RoleSuperAdmin),
	)).Methods("POST")

	/* privileged registration, super admins only */
	adminRouter.Use(gate.Protect(
		middleware.RequireSession(),
		middleware.RequireRole(account.RoleSuperAdmin),
	))
	adminRouter.HandleFunc("/register", authHandler.RegisterPrivileged).Methods("POST")
	adminRouter.HandleFunc("/branch-admins", authHandler.RegisterBranchAdmin).Methods("POST")
}

func InitHealthRoutes(r *mux.Router, db *sql.DB, sessions session.Store, logger *slog.Logger) {
	health := handlers.NewHealthHandler(db, sessions, logger)

	r.HandleFunc("/health", health.Health).Methods("GET")
	r.HandleFunc("/health/detailed", health.Detailed).Methods("GET")
	r.HandleFunc("/ready", health.Ready).Methods("GET")
	r.HandleFunc("/live", health.Live).Methods("GET")
}

func StartServer(handler http.Handler, port string) {
	fmt.Println("\n\033[32m", "The server is running on http://localhost:"+port, "\033[0m")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal("Server failed:", err)
	}
}
