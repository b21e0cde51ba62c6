package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"stylemuse-server/modules/auth"
	"stylemuse-server/modules/common/config"
	"stylemuse-server/modules/recommend"
)

// ServerMetrics - request counters exposed on /metrics
type ServerMetrics struct {
	TotalRecommendations  int       `json:"totalRecommendations"`
	TotalAccessoryLookups int       `json:"totalAccessoryLookups"`
	StartTime             time.Time `json:"startTime"`
	mutex                 sync.RWMutex
}

var metrics = &ServerMetrics{
	StartTime: time.Now(),
}

// counted - bump a metrics counter before running the handler
func counted(counter *int, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.mutex.Lock()
		*counter++
		metrics.mutex.Unlock()
		next(w, r)
	}
}

// enableCORS - CORS headers on every response
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthCheck - service liveness endpoint
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "stylemuse-recommender",
	})
}

// getMetrics - server metrics endpoint
func getMetrics(w http.ResponseWriter, r *http.Request) {
	metrics.mutex.RLock()
	totalRecommendations := metrics.TotalRecommendations
	totalAccessoryLookups := metrics.TotalAccessoryLookups
	startTime := metrics.StartTime
	metrics.mutex.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"server": map[string]interface{}{
			"uptime":                time.Since(startTime).String(),
			"startTime":             startTime,
			"totalRecommendations":  totalRecommendations,
			"totalAccessoryLookups": totalAccessoryLookups,
		},
	})
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	authService := auth.NewService(cfg)
	authService.StartCleanupRoutine()
	authHandler := auth.NewHandler(authService)

	recommendService := recommend.NewService(cfg)
	recommendHandler := recommend.NewHandler(recommendService)

	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/metrics", getMetrics).Methods("GET")

	r.HandleFunc("/api/auth/register", authHandler.HandleRegister).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/login", authHandler.HandleLogin).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/logout", authHandler.HandleLogout).Methods("POST", "OPTIONS")

	recommendFn := counted(&metrics.TotalRecommendations, recommendHandler.HandleRecommend)
	accessoriesFn := counted(&metrics.TotalAccessoryLookups, recommendHandler.HandleAccessories)
	if cfg.RequireAuth {
		recommendFn = authHandler.RequireSession(recommendFn)
		accessoriesFn = authHandler.RequireSession(accessoriesFn)
	}
	r.HandleFunc("/api/recommend", recommendFn).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/accessories", accessoriesFn).Methods("POST", "OPTIONS")

	log.Printf("🚀 StyleMuse server starting on port %s", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("📊 Metrics: http://localhost:%s/metrics", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
