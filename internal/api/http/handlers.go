package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"

	domainAccount "github.com/oracle-bridge/oracle-bridge/internal/domain/account"
	domainContract "github.com/oracle-bridge/oracle-bridge/internal/domain/contract"
	"github.com/oracle-bridge/oracle-bridge/internal/domain/evm"
	"github.com/oracle-bridge/oracle-bridge/internal/domain/pricepair"
)

// --- account ---

type registerRequest struct {
	Transaction evm.Transaction `json:"transaction"`
	SigningKey  hexutil.Bytes   `json:"signingKey"`
}

func (s *Server) registerAccount(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if err := s.accountSvc.Register(r.Context(), req.Transaction, req.SigningKey); err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"address": req.Transaction.From.Hex()})
}

func (s *Server) resetAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.accountSvc.Reset(r.Context()); err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "reset"})
}

func (s *Server) getAccountAddress(w http.ResponseWriter, r *http.Request) {
	addr, err := s.accountSvc.CurrentIdentity(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"address": addr.Hex()})
}

// --- contract ---

func (s *Server) deployContract(w http.ResponseWriter, r *http.Request) {
	hash, err := s.contractSvc.Deploy(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"txHash": hash.Hex()})
}

func (s *Server) confirmContract(w http.ResponseWriter, r *http.Request) {
	addr, err := s.contractSvc.Confirm(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"address": addr.Hex()})
}

func (s *Server) getContractAddress(w http.ResponseWriter, r *http.Request) {
	addr, err := s.contractSvc.CurrentContract(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"address": addr.Hex()})
}

type addAggregatorPairRequest struct {
	Pair        string `json:"pair"`
	Decimal     uint8  `json:"decimal"`
	Description string `json:"description"`
	Version     int64  `json:"version"`
}

func (s *Server) addAggregatorPair(w http.ResponseWriter, r *http.Request) {
	var req addAggregatorPairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if req.Pair == "" {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "pair is required")
		return
	}
	hash, err := s.contractSvc.AddPair(r.Context(), req.Pair, req.Decimal, req.Description, big.NewInt(req.Version))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"txHash": hash.Hex()})
}

type pushAnswersRequest struct {
	Pairs      []string `json:"pairs"`
	Timestamps []uint64 `json:"timestamps"`
	Answers    []uint64 `json:"answers"`
}

// pushAnswers submits an updateAnswers call. With an explicit body the
// supplied values are used; an empty body pushes the latest stored
// observation of every tracked pair.
func (s *Server) pushAnswers(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if len(body) == 0 {
		hash, err := s.priceSvc.PushAnswers(r.Context())
		if err != nil {
			s.respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"txHash": hash.Hex()})
		return
	}

	var req pushAnswersRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if len(req.Pairs) == 0 || len(req.Pairs) != len(req.Timestamps) || len(req.Pairs) != len(req.Answers) {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "pairs, timestamps and answers must be non-empty and of equal length")
		return
	}
	timestamps := make([]*big.Int, len(req.Timestamps))
	answers := make([]*big.Int, len(req.Answers))
	for i := range req.Pairs {
		timestamps[i] = new(big.Int).SetUint64(req.Timestamps[i])
		answers[i] = new(big.Int).SetUint64(req.Answers[i])
	}
	hash, err := s.contractSvc.UpdateAnswers(r.Context(), req.Pairs, timestamps, answers)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"txHash": hash.Hex()})
}

// --- price pairs ---

type addPairRequest struct {
	Pair string `json:"pair"`
}

func (s *Server) addPair(w http.ResponseWriter, r *http.Request) {
	var req addPairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if req.Pair == "" {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "pair is required")
		return
	}
	if err := s.priceSvc.AddPair(r.Context(), req.Pair); err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"pair": req.Pair})
}

func (s *Server) removePair(w http.ResponseWriter, r *http.Request) {
	pair := pairParam(r)
	if err := s.priceSvc.RemovePair(r.Context(), pair); err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "removed"})
}

func (s *Server) listPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := s.priceSvc.Pairs(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if pairs == nil {
		pairs = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"pairs": pairs})
}

func (s *Server) getLatestPrice(w http.ResponseWriter, r *http.Request) {
	pair := pairParam(r)
	obs, err := s.priceSvc.LatestPrice(r.Context(), pair)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, obs)
}

func (s *Server) getPrices(w http.ResponseWriter, r *http.Request) {
	pair := pairParam(r)
	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "n must be a positive integer")
			return
		}
		n = parsed
	}
	prices, err := s.priceSvc.Prices(r.Context(), pair, n)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if prices == nil {
		prices = []pricepair.Observation{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"prices": prices})
}

type refreshRequest struct {
	Pairs  []string `json:"pairs"`
	Source string   `json:"source"`
}

func (s *Server) refreshPrices(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if len(req.Pairs) == 0 {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "pairs is required")
		return
	}
	switch req.Source {
	case "coinbase":
		if err := s.priceSvc.RefreshCoinbase(r.Context(), req.Pairs[0]); err != nil {
			s.respondServiceError(w, err)
			return
		}
	case "coingecko", "":
		if err := s.priceSvc.RefreshCoingecko(r.Context(), req.Pairs); err != nil {
			s.respondServiceError(w, err)
			return
		}
	default:
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "source must be coinbase or coingecko")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "refreshed"})
}

// pairParam extracts the {pair} route segment. Pair symbols contain a
// slash, so clients send them percent-encoded.
func pairParam(r *http.Request) string {
	pair := chi.URLParam(r, "pair")
	if decoded, err := url.PathUnescape(pair); err == nil {
		return decoded
	}
	return pair
}

func (s *Server) listAlerts(w http.ResponseWriter, _ *http.Request) {
	alerts := s.priceSvc.Alerts()
	if alerts == nil {
		alerts = []pricepair.AlertRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"alerts": alerts})
}

// respondServiceError maps domain errors onto HTTP statuses.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainAccount.ErrAlreadyRegistered):
		respondError(w, http.StatusConflict, "ALREADY_REGISTERED", err.Error())
	case errors.Is(err, domainContract.ErrAlreadyDeployed):
		respondError(w, http.StatusConflict, "ALREADY_DEPLOYED", err.Error())
	case errors.Is(err, domainContract.ErrNothingPending):
		respondError(w, http.StatusConflict, "NOTHING_PENDING", err.Error())
	case errors.Is(err, domainAccount.ErrNotRegistered):
		respondError(w, http.StatusNotFound, "NOT_REGISTERED", err.Error())
	case errors.Is(err, domainContract.ErrNotDeployed):
		respondError(w, http.StatusNotFound, "NOT_DEPLOYED", err.Error())
	case errors.Is(err, domainContract.ErrDeploymentLost):
		respondError(w, http.StatusBadGateway, "DEPLOYMENT_LOST", err.Error())
	case errors.Is(err, pricepair.ErrPairExists):
		respondError(w, http.StatusConflict, "PAIR_EXISTS", err.Error())
	case errors.Is(err, pricepair.ErrPairNotFound):
		respondError(w, http.StatusNotFound, "PAIR_NOT_FOUND", err.Error())
	case errors.Is(err, pricepair.ErrNoPrice):
		respondError(w, http.StatusNotFound, "NO_PRICE", err.Error())
	default:
		if _, ok := evm.AsHostError(err); ok {
			respondError(w, http.StatusBadGateway, "HOST_REJECTED", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
