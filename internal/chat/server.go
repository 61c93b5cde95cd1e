package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hotelrev/revman/internal/gemini"
)

// Converser answers a conversation transcript with a model reply.
type Converser interface {
	Converse(ctx context.Context, systemPrompt string, turns []gemini.Turn) (string, error)
}

// Server hosts the guest-facing concierge chat API.
type Server struct {
	llm           Converser
	appsScriptURL string
	httpClient    *http.Client
	httpSrv       *http.Server
	logger        *zap.Logger
	port          int
}

type ServerConfig struct {
	LLM           Converser
	AppsScriptURL string
	Port          int
	Logger        *zap.Logger
}

func New(cfg ServerConfig) *Server {
	s := &Server{
		llm:           cfg.LLM,
		appsScriptURL: cfg.AppsScriptURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		logger:        cfg.Logger,
		port:          cfg.Port,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)
	r.Post("/llm-chat", s.handleLLMChat)
	r.Post("/save-chat", s.handleSaveChat)
	r.Get("/health", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.logger.Info("starting chat server", zap.Int("port", s.port))
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler returns the server's HTTP handler for testing purposes
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
