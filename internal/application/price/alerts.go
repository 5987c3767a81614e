package price

import (
	"errors"

	"github.com/Knetic/govaluate"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/pricepair"
)

var errNotBoolean = errors.New("alert rule did not evaluate to a boolean")

// evaluateRules runs every configured alert rule against a freshly
// appended observation. Rule failures are logged and skipped; a broken
// expression must not block price ingestion.
func (s *Service) evaluateRules(symbol string, obs, prev pricepair.Observation, hadPrev bool) {
	if len(s.rules) == 0 {
		return
	}

	price := float64(obs.Price) / priceUnit
	prevPrice := price
	deviation := 0.0
	if hadPrev && prev.Price > 0 {
		prevPrice = float64(prev.Price) / priceUnit
		deviation = (price - prevPrice) / prevPrice * 100
	}

	params := map[string]interface{}{
		"pair":          symbol,
		"price":         price,
		"prev_price":    prevPrice,
		"deviation_pct": deviation,
	}

	for _, rule := range s.rules {
		matched, err := evaluateRule(rule.Expression, params)
		if err != nil {
			s.logger.Error().Err(err).Str("rule", rule.Name).Msg("alert rule evaluation failed")
			continue
		}
		if !matched {
			continue
		}
		rec := newAlertRecord(rule, symbol, obs, prev, deviation)
		s.record(rec)
		s.logger.Warn().
			Str("rule", rule.Name).
			Str("pair", symbol).
			Float64("price", price).
			Float64("deviation_pct", deviation).
			Msg("price alert triggered")
	}
}

// priceUnit converts stored scaled prices back to quote units for rule
// expressions.
const priceUnit = 1e8

func evaluateRule(expression string, params map[string]interface{}) (bool, error) {
	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return false, err
	}
	result, err := expr.Evaluate(params)
	if err != nil {
		return false, err
	}
	matched, ok := result.(bool)
	if !ok {
		return false, errNotBoolean
	}
	return matched, nil
}
