package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/pricepair"
)

const (
	defaultCoinbaseURL  = "https://api.coinbase.com"
	defaultCoingeckoURL = "https://api.coingecko.com"

	fetchAttempts = 3
	fetchDelay    = 500 * time.Millisecond
)

// coingeckoIDs maps base currency symbols to CoinGecko asset ids.
var coingeckoIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"BNB":  "binancecoin",
	"SOL":  "solana",
	"ICP":  "internet-computer",
	"USDT": "tether",
	"USDC": "usd-coin",
}

// RefreshCoinbase fetches the Coinbase spot price for one pair and
// appends it to the pair's history.
func (s *Service) RefreshCoinbase(ctx context.Context, symbol string) error {
	exists, err := s.repo.Exists(ctx, symbol)
	if err != nil {
		return err
	}
	if !exists {
		return pricepair.ErrPairNotFound
	}

	// "ETH/USD" -> "ETH-USD"
	endpoint := fmt.Sprintf("%s/v2/prices/%s/spot", s.coinbaseURL, strings.ReplaceAll(symbol, "/", "-"))
	body, err := s.fetch(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("coinbase fetch for %s failed: %w", symbol, err)
	}

	var resp struct {
		Data struct {
			Amount string `json:"amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("malformed coinbase response for %s: %w", symbol, err)
	}
	scaled, err := scalePrice(resp.Data.Amount)
	if err != nil {
		return fmt.Errorf("bad coinbase price for %s: %w", symbol, err)
	}

	return s.appendObservation(ctx, symbol, pricepair.Observation{
		Timestamp: uint64(time.Now().Unix()),
		Price:     scaled,
	})
}

// RefreshCoingecko fetches CoinGecko simple prices for the given pairs
// in one batched request and appends each to its pair's history.
func (s *Service) RefreshCoingecko(ctx context.Context, symbols []string) error {
	type pairRef struct {
		symbol string
		id     string
		quote  string
	}
	refs := make([]pairRef, 0, len(symbols))
	for _, symbol := range symbols {
		exists, err := s.repo.Exists(ctx, symbol)
		if err != nil {
			return err
		}
		if !exists {
			return pricepair.ErrPairNotFound
		}
		base, quote, ok := strings.Cut(symbol, "/")
		if !ok {
			return fmt.Errorf("malformed pair symbol %q", symbol)
		}
		id, ok := coingeckoIDs[strings.ToUpper(base)]
		if !ok {
			id = strings.ToLower(base)
		}
		refs = append(refs, pairRef{symbol: symbol, id: id, quote: strings.ToLower(quote)})
	}

	ids := make([]string, 0, len(refs))
	quotes := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.id)
		quotes = append(quotes, ref.quote)
	}
	endpoint := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=%s",
		s.coingeckoURL, url.QueryEscape(strings.Join(ids, ",")), url.QueryEscape(strings.Join(quotes, ",")))
	body, err := s.fetch(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("coingecko fetch failed: %w", err)
	}

	var resp map[string]map[string]float64
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("malformed coingecko response: %w", err)
	}

	now := uint64(time.Now().Unix())
	for _, ref := range refs {
		quote, ok := resp[ref.id][ref.quote]
		if !ok {
			s.logger.Warn().Str("pair", ref.symbol).Msg("coingecko response missing pair, skipping")
			continue
		}
		scaled, err := scalePrice(strconv.FormatFloat(quote, 'f', -1, 64))
		if err != nil {
			return fmt.Errorf("bad coingecko price for %s: %w", ref.symbol, err)
		}
		if err := s.appendObservation(ctx, ref.symbol, pricepair.Observation{Timestamp: now, Price: scaled}); err != nil {
			return err
		}
	}
	return nil
}

// fetch issues a GET with bounded retries. Server-side and transport
// failures are retried; client errors are not.
func (s *Service) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := s.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode >= 500 {
				return fmt.Errorf("feed returned status %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("feed returned status %d", resp.StatusCode))
			}
			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(fetchAttempts),
		retry.Delay(fetchDelay),
		retry.LastErrorOnly(true),
	)
	return body, err
}

// scalePrice converts a decimal quote string into a uint64 scaled to
// PriceDecimals places.
func scalePrice(amount string) (uint64, error) {
	rat, ok := new(big.Rat).SetString(amount)
	if !ok || rat.Sign() < 0 {
		return 0, fmt.Errorf("unparseable price %q", amount)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(pricepair.PriceDecimals), nil)
	scaled := new(big.Rat).Mul(rat, new(big.Rat).SetInt(scale))
	value := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	if !value.IsUint64() {
		return 0, fmt.Errorf("price %q out of range", amount)
	}
	return value.Uint64(), nil
}
