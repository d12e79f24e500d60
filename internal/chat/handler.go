package chat

import (
	"encoding/json"
	"log"
	"net/http"
)

const maxBodyBytes = 1 << 20

type Request struct {
	Message *string `json:"message"`
}

type Response struct {
	Reply string  `json:"reply"`
	CRID  *string `json:"cr_id"`
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// HandleHealth is a liveness probe; it touches nothing downstream.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// HandleChat answers one chat message. The Authorization header is forwarded
// downstream exactly as received.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var payload Request

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if payload.Message == nil {
		http.Error(w, "missing message", http.StatusBadRequest)
		return
	}

	res := h.svc.Handle(r.Context(), *payload.Message, r.Header.Get("Authorization"))

	out := Response{Reply: res.Reply}
	if res.CRID != "" {
		id := res.CRID
		out.CRID = &id
	}

	b, err := json.Marshal(out)
	if err != nil {
		log.Printf("[chat] encode response: %v", err)
		http.Error(w, "encoding error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
