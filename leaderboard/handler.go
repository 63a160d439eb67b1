package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
)

// DefaultLimit and MaxLimit bound GET /scores.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

const maxRequestBody = 1 << 12 // 4 KB

// Scores is the storage behind the HTTP handlers.
type Scores interface {
	Submit(ctx context.Context, e Entry) (Entry, error)
	Top(ctx context.Context, limit int) ([]Entry, error)
}

type submitRequest struct {
	Name  string `json:"name"`
	Score uint   `json:"score"`
}

// NewMux registers the leaderboard routes.
func NewMux(scores Scores) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /scores", ListScores(scores))
	mux.HandleFunc("POST /scores", SubmitScore(scores))
	mux.HandleFunc("GET /health", Health())
	return mux
}

func ListScores(scores Scores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		limit := DefaultLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				http.Error(w, `{"error":"limit must be a positive integer"}`, http.StatusBadRequest)
				return
			}
			limit = min(n, MaxLimit)
		}

		entries, err := scores.Top(r.Context(), limit)
		if err != nil {
			log.Printf("[leaderboard] list error: %v", err)
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			log.Printf("[leaderboard] list encode error: %v", err)
		}
	}
}

func SubmitScore(scores Scores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}

		entry, err := scores.Submit(r.Context(), Entry{Name: req.Name, Score: req.Score})
		if errors.Is(err, ErrInvalidEntry) {
			http.Error(w, `{"error":"name required, at most 32 bytes"}`, http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Printf("[leaderboard] submit error: %v", err)
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		log.Printf("[leaderboard] %q scored %d (id=%d)", entry.Name, entry.Score, entry.ID)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(entry)
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
