package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"threadqube/internal/config"
	"threadqube/internal/database"
	"threadqube/internal/engine"
	"threadqube/internal/handlers"
	"threadqube/internal/middleware"
	"threadqube/internal/payments"
	"threadqube/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	metrics := utils.NewMetricsCollector()
	system := actor.NewActorSystem()
	appEngine := engine.NewEngine(system, store, metrics)
	verifier := middleware.NewTokenVerifier(cfg.Auth.JWTSecret)
	paymentClient := payments.NewClient(cfg.Payment.StripeSecretKey)

	server := handlers.NewServer(system, appEngine, store, metrics, paymentClient, verifier)

	mux := http.NewServeMux()
	registerRoutes(mux, server, verifier, store, cfg)

	handler := middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.AllowedOrigins))(
		countRequests(metrics, mux),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("starting server", "addr", addr, "store", cfg.Database.Type)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (database.Store, error) {
	switch cfg.Database.Type {
	case "memory":
		return database.NewMemoryStore(), nil
	default:
		return database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	}
}

func registerRoutes(mux *http.ServeMux, s *handlers.Server, v *middleware.TokenVerifier, store database.Store, cfg *config.Config) {
	// Liveness and status
	mux.HandleFunc("GET /{$}", s.HandleHealth())
	if cfg.Server.MetricsEnabled {
		mux.HandleFunc("GET /status", s.HandleStatus())
	}

	// Token issuance
	mux.HandleFunc("POST /auth/token", s.HandleIssueToken())

	// Posts
	mux.HandleFunc("GET /Allposts", s.HandleListPosts())
	mux.HandleFunc("POST /Allposts", v.RequireAuth(s.HandleCreatePost()))
	mux.HandleFunc("GET /Allposts/user", v.RequireEmailMatch(s.HandleListUserPosts()))
	mux.HandleFunc("GET /Allposts/{id}", s.HandleGetPost())
	mux.HandleFunc("DELETE /Allposts/{id}", v.RequireAuth(s.HandleDeletePost()))
	mux.HandleFunc("PATCH /Allposts/{id}/vote", s.HandleVotePost())
	mux.HandleFunc("PATCH /Allposts/{id}/comment", v.RequireAuth(s.HandleBumpCommentCount()))

	// Users
	mux.HandleFunc("POST /users", s.HandleUserSignIn())
	mux.HandleFunc("GET /users", s.HandleGetUser())
	mux.HandleFunc("GET /users/all", v.RequireAdmin(store, s.HandleListUsers()))
	mux.HandleFunc("PATCH /users/admin/{id}", v.RequireAdmin(store, s.HandlePromoteAdmin()))
	mux.HandleFunc("PATCH /users/badge/{email}", s.HandleSetBadge())

	// Comments
	mux.HandleFunc("GET /comments", s.HandleListComments())
	mux.HandleFunc("POST /comments", v.RequireAuth(s.HandleCreateComment()))
	mux.HandleFunc("DELETE /comments/{id}", v.RequireAuth(s.HandleDeleteComment()))

	// Reports
	mux.HandleFunc("POST /reports", s.HandleCreateReport())
	mux.HandleFunc("GET /reports", v.RequireAdmin(store, s.HandleListReports()))
	mux.HandleFunc("GET /reports/{postId}", s.HandleListPostReports())
	mux.HandleFunc("DELETE /reports/byComment/{commentId}", v.RequireAdmin(store, s.HandleDeleteReportsByComment()))
	mux.HandleFunc("DELETE /reports/{id}", v.RequireAdmin(store, s.HandleDeleteReport()))

	// Announcements
	mux.HandleFunc("GET /announcements", s.HandleListAnnouncements())
	mux.HandleFunc("POST /announcements", v.RequireAuth(s.HandleCreateAnnouncement()))
	mux.HandleFunc("PATCH /announcements/{id}/read", s.HandleMarkAnnouncementRead())

	// Feedback
	mux.HandleFunc("POST /feedback", s.HandleCreateFeedback())
	mux.HandleFunc("GET /feedback", v.RequireAdmin(store, s.HandleListFeedback()))
	mux.HandleFunc("PATCH /feedback/{id}", v.RequireAdmin(store, s.HandleUpdateFeedback()))
	mux.HandleFunc("DELETE /feedback/{id}", v.RequireAdmin(store, s.HandleDeleteFeedback()))

	// Tags ("/Alltags" is an alias kept for older frontends)
	mux.HandleFunc("GET /tags", s.HandleListTags())
	mux.HandleFunc("GET /Alltags", s.HandleListTags())
	mux.HandleFunc("POST /tags", v.RequireAuth(s.HandleCreateTag()))

	// Static pages
	mux.HandleFunc("GET /staticPages/{id}", s.HandleGetPage())
	mux.HandleFunc("PUT /staticPages/{id}", v.RequireAdmin(store, s.HandleUpsertPage()))
	mux.HandleFunc("PATCH /staticPages/{id}", v.RequireAdmin(store, s.HandlePatchPage()))

	// Payments
	mux.HandleFunc("POST /create-payment-intent", s.HandleCreatePaymentIntent())
}

func countRequests(metrics *utils.MetricsCollector, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.IncrementRequests()
		next.ServeHTTP(w, r)
	})
}
