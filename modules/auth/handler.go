package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleRegister - POST /api/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Printf("❌ [Auth] Invalid register request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(AuthResponse{Success: false, ErrorMessage: "Invalid request format"})
		return
	}

	if err := h.service.Register(creds.Username, creds.Password); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrUserExists) {
			status = http.StatusConflict
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(AuthResponse{Success: false, ErrorMessage: err.Error()})
		return
	}

	json.NewEncoder(w).Encode(AuthResponse{Success: true})
}

// HandleLogin - POST /api/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Printf("❌ [Auth] Invalid login request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(AuthResponse{Success: false, ErrorMessage: "Invalid request format"})
		return
	}

	token, err := h.service.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(AuthResponse{Success: false, ErrorMessage: "Invalid credentials"})
		return
	}

	json.NewEncoder(w).Encode(AuthResponse{Success: true, Token: token})
}

// HandleLogout - POST /api/auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	h.service.Logout(r.Context(), bearerToken(r))
	json.NewEncoder(w).Encode(AuthResponse{Success: true})
}

// RequireSession - wrap a handler so it only runs with a valid session token
func (h *Handler) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, valid := h.service.Validate(r.Context(), bearerToken(r))
		if !valid {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(AuthResponse{Success: false, ErrorMessage: "Login required"})
			return
		}

		log.Printf("👤 [Auth] Request by %s: %s %s", username, r.Method, r.URL.Path)
		next(w, r)
	}
}

// bearerToken - extract the session token from the Authorization header
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
