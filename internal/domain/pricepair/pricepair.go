package pricepair

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrPairExists is returned when adding a pair that is already tracked.
	ErrPairExists = errors.New("price pair already exists")

	// ErrPairNotFound is returned for operations on an unknown pair.
	ErrPairNotFound = errors.New("price pair does not exist")

	// ErrNoPrice is returned when a tracked pair has no observations yet.
	ErrNoPrice = errors.New("no price recorded for pair")
)

// Observation is a single (timestamp, price) sample. Timestamp is unix
// seconds; Price is the quote scaled to eight decimal places.
type Observation struct {
	Timestamp uint64 `json:"timestamp"`
	Price     uint64 `json:"price"`
}

// PriceDecimals is the fixed scaling applied to feed quotes before they
// are stored or pushed on-chain.
const PriceDecimals = 8

// Pair is a tracked trading pair, e.g. "ETH/USD". Its observation
// history is bounded; the oldest sample is evicted first.
type Pair struct {
	Symbol    string    `json:"symbol"`
	CreatedAt time.Time `json:"createdAt"`
}

// AlertRule is a named govaluate expression evaluated against each
// appended observation. Parameters available to the expression:
// pair, price, prev_price, deviation_pct.
type AlertRule struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
}

// AlertRecord captures a rule match for auditing.
type AlertRecord struct {
	ID           uuid.UUID `json:"id"`
	Rule         string    `json:"rule"`
	Pair         string    `json:"pair"`
	Price        uint64    `json:"price"`
	PrevPrice    uint64    `json:"prevPrice"`
	DeviationPct float64   `json:"deviationPct"`
	CreatedAt    time.Time `json:"createdAt"`
}
