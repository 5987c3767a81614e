// Package httpapi is the request shell in front of the bridge services.
// It maps inbound HTTP calls to state-machine operations and enforces
// the owner check on state-mutating routes.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	appAccount "github.com/oracle-bridge/oracle-bridge/internal/application/account"
	appContract "github.com/oracle-bridge/oracle-bridge/internal/application/contract"
	appPrice "github.com/oracle-bridge/oracle-bridge/internal/application/price"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	accountSvc     *appAccount.Service
	contractSvc    *appContract.Service
	priceSvc       *appPrice.Service
	ownerTokenHash string
}

// NewServer creates the API server. ownerTokenHash is the bcrypt hash
// of the owner bearer token; empty leaves mutating routes open.
func NewServer(accountSvc *appAccount.Service, contractSvc *appContract.Service, priceSvc *appPrice.Service, ownerTokenHash string) *Server {
	return &Server{
		accountSvc:     accountSvc,
		contractSvc:    contractSvc,
		priceSvc:       priceSvc,
		ownerTokenHash: ownerTokenHash,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/account", func(r chi.Router) {
			r.Get("/address", s.getAccountAddress)
			r.Group(func(r chi.Router) {
				r.Use(s.requireOwner)
				r.Post("/register", s.registerAccount)
				r.Post("/reset", s.resetAccount)
			})
		})

		r.Route("/contract", func(r chi.Router) {
			r.Get("/address", s.getContractAddress)
			r.Group(func(r chi.Router) {
				r.Use(s.requireOwner)
				r.Post("/deploy", s.deployContract)
				r.Post("/confirm", s.confirmContract)
				r.Post("/pairs", s.addAggregatorPair)
				r.Post("/answers", s.pushAnswers)
			})
		})

		r.Route("/pairs", func(r chi.Router) {
			r.Get("/", s.listPairs)
			r.Get("/{pair}/latest", s.getLatestPrice)
			r.Get("/{pair}/prices", s.getPrices)
			r.Group(func(r chi.Router) {
				r.Use(s.requireOwner)
				r.Post("/", s.addPair)
				r.Delete("/{pair}", s.removePair)
				r.Post("/refresh", s.refreshPrices)
			})
		})

		r.Get("/alerts", s.listAlerts)
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error": map[string]string{"code": code, "message": message},
	})
}
