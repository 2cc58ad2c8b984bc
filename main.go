package main

import (
	auth "AusTreeCalc/internal/auth"
	assessment "AusTreeCalc/internal/calc/assessment"
	biometrics "AusTreeCalc/internal/calc/biometrics"
	report "AusTreeCalc/internal/calc/report"
	risk "AusTreeCalc/internal/calc/risk"
	scenario "AusTreeCalc/internal/calc/scenario"
	species "AusTreeCalc/internal/calc/species"
	validate "AusTreeCalc/internal/calc/validate"
	config "AusTreeCalc/internal/config"
	repo "AusTreeCalc/internal/repo"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, accounts repo.Repository) {
	authEnv := &auth.Authenv{JWTkey: cfg.TokenKey, Repo: accounts}
	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	speciesH := &species.Handler{}
	validateH := &validate.Handler{Limits: cfg.Limits}
	calcH := &risk.Handler{}
	pruneH := &scenario.Handler{}
	assessH := &assessment.Handler{Limits: cfg.Limits}
	reportH := &report.Handler{Limits: cfg.Limits}
	bioH := &biometrics.Handler{}

	secureApi.HandleFunc("/tools/tree/species", speciesH.List).Methods("GET")
	secureApi.HandleFunc("/tools/tree/validate", validateH.Check).Methods("POST")
	secureApi.HandleFunc("/tools/tree/calc", calcH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/tree/prune", pruneH.Prune).Methods("POST")
	secureApi.HandleFunc("/tools/tree/assess", assessH.Assess).Methods("POST")
	secureApi.HandleFunc("/tools/tree/report/pdf", reportH.PDF).Methods("POST")
	secureApi.HandleFunc("/tools/tree/report/xlsx", reportH.XLSX).Methods("POST")
	secureApi.HandleFunc("/tools/tree/biometrics", bioH.Calc).Methods("POST")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := repo.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database unavailable: ", err)
	}
	defer db.Close()

	accounts := repo.NewPostgresAssessorDB(db)
	if err := accounts.Migrate(ctx); err != nil {
		log.Fatal("migrate: ", err)
	}

	router := mux.NewRouter()
	HandleList(router, cfg, accounts)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           CORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.ListenAddr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
