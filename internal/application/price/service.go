// Package price maintains the tracked trading pairs and their bounded
// observation histories: CRUD for pairs, third-party feed refresh,
// alert rule evaluation and the periodic push of latest answers into
// the deployed aggregator contract.
package price

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/pricepair"
)

// maxAlertRecords bounds the in-memory alert audit trail.
const maxAlertRecords = 256

// Invoker submits the batched answer update to the aggregator contract.
type Invoker interface {
	UpdateAnswers(ctx context.Context, pairs []string, timestamps, answers []*big.Int) (common.Hash, error)
}

// Service handles price pair operations.
type Service struct {
	repo    pricepair.Repository
	invoker Invoker
	rules   []pricepair.AlertRule
	logger  zerolog.Logger

	httpClient   *http.Client
	coinbaseURL  string
	coingeckoURL string

	mu     sync.Mutex
	alerts []pricepair.AlertRecord
}

// NewService creates a price service with the given alert rules.
func NewService(repo pricepair.Repository, invoker Invoker, rules []pricepair.AlertRule, logger zerolog.Logger) *Service {
	return &Service{
		repo:         repo,
		invoker:      invoker,
		rules:        rules,
		logger:       logger.With().Str("service", "price").Logger(),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		coinbaseURL:  defaultCoinbaseURL,
		coingeckoURL: defaultCoingeckoURL,
	}
}

// AddPair starts tracking a pair.
func (s *Service) AddPair(ctx context.Context, symbol string) error {
	if err := s.repo.AddPair(ctx, symbol); err != nil {
		return err
	}
	s.logger.Info().Str("pair", symbol).Msg("price pair added")
	return nil
}

// RemovePair stops tracking a pair and discards its history.
func (s *Service) RemovePair(ctx context.Context, symbol string) error {
	if err := s.repo.DeletePair(ctx, symbol); err != nil {
		return err
	}
	s.logger.Info().Str("pair", symbol).Msg("price pair removed")
	return nil
}

// Pairs lists tracked pair symbols.
func (s *Service) Pairs(ctx context.Context) ([]string, error) {
	return s.repo.ListPairs(ctx)
}

// LatestPrice returns the most recent observation for a pair.
func (s *Service) LatestPrice(ctx context.Context, symbol string) (pricepair.Observation, error) {
	return s.repo.LatestPrice(ctx, symbol)
}

// Prices returns up to n most recent observations, oldest first.
func (s *Service) Prices(ctx context.Context, symbol string, n int) ([]pricepair.Observation, error) {
	return s.repo.Prices(ctx, symbol, n)
}

// PushAnswers collects the latest observation of every tracked pair and
// submits one batched updateAnswers call. Pairs without observations
// are skipped. Failures are surfaced, never retried here.
func (s *Service) PushAnswers(ctx context.Context) (common.Hash, error) {
	symbols, err := s.repo.ListPairs(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to list pairs: %w", err)
	}

	var (
		pairs      []string
		timestamps []*big.Int
		answers    []*big.Int
	)
	for _, symbol := range symbols {
		obs, err := s.repo.LatestPrice(ctx, symbol)
		if errors.Is(err, pricepair.ErrNoPrice) {
			s.logger.Warn().Str("pair", symbol).Msg("pair has no observations, skipping push")
			continue
		}
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to read latest price for %s: %w", symbol, err)
		}
		pairs = append(pairs, symbol)
		timestamps = append(timestamps, new(big.Int).SetUint64(obs.Timestamp))
		answers = append(answers, new(big.Int).SetUint64(obs.Price))
	}
	if len(pairs) == 0 {
		return common.Hash{}, errors.New("no observations to push")
	}

	hash, err := s.invoker.UpdateAnswers(ctx, pairs, timestamps, answers)
	if err != nil {
		return common.Hash{}, fmt.Errorf("answer push failed: %w", err)
	}
	s.logger.Info().Int("pairs", len(pairs)).Str("tx", hash.Hex()).Msg("answers pushed to aggregator")
	return hash, nil
}

// Alerts returns the recorded alert matches, oldest first.
func (s *Service) Alerts() []pricepair.AlertRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]pricepair.AlertRecord, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// appendObservation records an observation and evaluates alert rules
// against it.
func (s *Service) appendObservation(ctx context.Context, symbol string, obs pricepair.Observation) error {
	prev, err := s.repo.LatestPrice(ctx, symbol)
	hadPrev := err == nil
	if err != nil && !errors.Is(err, pricepair.ErrNoPrice) {
		return err
	}
	if err := s.repo.AppendPrice(ctx, symbol, obs); err != nil {
		return err
	}
	s.evaluateRules(symbol, obs, prev, hadPrev)
	return nil
}

func (s *Service) record(rec pricepair.AlertRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, rec)
	if len(s.alerts) > maxAlertRecords {
		s.alerts = s.alerts[len(s.alerts)-maxAlertRecords:]
	}
}

func newAlertRecord(rule pricepair.AlertRule, symbol string, obs, prev pricepair.Observation, deviation float64) pricepair.AlertRecord {
	return pricepair.AlertRecord{
		ID:           uuid.New(),
		Rule:         rule.Name,
		Pair:         symbol,
		Price:        obs.Price,
		PrevPrice:    prev.Price,
		DeviationPct: deviation,
		CreatedAt:    time.Now().UTC(),
	}
}
