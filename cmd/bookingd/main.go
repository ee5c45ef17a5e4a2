package main

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"github.com/ZiadAdelEissa/BookingBackend/internal/config"
	"github.com/ZiadAdelEissa/BookingBackend/internal/logger"
	"github.com/ZiadAdelEissa/BookingBackend/internal/metrics"
	"github.com/ZiadAdelEissa/BookingBackend/internal/mongo"
	"github.com/ZiadAdelEissa/BookingBackend/internal/mysql"
	"github.com/ZiadAdelEissa/BookingBackend/internal/redis"
	"github.com/ZiadAdelEissa/BookingBackend/internal/routing"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/middleware"
	"github.com/ZiadAdelEissa/BookingBackend/pkg/session"
)

func main() {
	cfg := config.Load()

	db := mysql.LoadDB(cfg.MySQLDSN)
	defer db.Close()

	slogger := logger.Load(cfg.Env)

	var sessions session.Store
	switch cfg.SessionStore {
	case config.StoreMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err := session.NewMongoStore(ctx, mongo.LoadDB(cfg.MongoURI, cfg.MongoDBName), cfg.SessionTTL)
		cancel()
		if err != nil {
			log.Fatal("Cannot init session store:", err)
		}
		sessions = store
	default:
		sessions = session.NewRedisStore(redis.LoadDB(cfg.RedisAddr), cfg.SessionTTL)
	}

	transport := session.NewTransport(cfg.SessionSecret, cfg.Production())

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	limiter := middleware.NewRateLimiter()
	defer limiter.Stop()

	r := mux.NewRouter()
	r.Use(collector.Middleware())
	r.Use(middleware.RequestLog(slogger))
	r.Use(middleware.Panic(slogger))

	routing.InitHealthRoutes(r, db, sessions, slogger)
	r.Handle("/metrics", metrics.Handler(reg)).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.Middleware())
	routing.InitRoutes(api, db, sessions, transport, slogger)

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL, "http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	routing.StartServer(handler, cfg.Port)
}
