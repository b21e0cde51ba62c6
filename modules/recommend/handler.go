package recommend

import (
	"encoding/json"
	"log"
	"net/http"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleRecommend - POST /api/recommend
// Phase 1 of the pipeline. Only a malformed body fails; once decoded, the
// pipeline always answers with a complete (possibly degraded) response.
func (h *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Recommend] Invalid request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request format"})
		return
	}

	response := h.service.Recommend(r.Context(), &req)

	log.Printf("✅ [Recommend] Response sent: query=%q images=%d accessories=%v",
		response.Query, len(response.ImageURLs), response.Accessories != nil)

	json.NewEncoder(w).Encode(response)
}

// HandleAccessories - POST /api/accessories
// Phase 2 as a follow-up call carrying the serialized preferences.
func (h *Handler) HandleAccessories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req AccessoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Recommend] Invalid accessories request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request format"})
		return
	}

	response := h.service.Accessories(r.Context(), &req)

	log.Printf("✅ [Recommend] Accessories sent: items=%d resolved=%d",
		len(req.Items), len(response.Images))

	json.NewEncoder(w).Encode(response)
}
