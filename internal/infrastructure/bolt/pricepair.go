package bolt

import (
	"context"
	"encoding/binary"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/pricepair"
)

// AddPair starts tracking a pair.
func (s *Store) AddPair(_ context.Context, symbol string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		pairs := tx.Bucket(bucketPairs)
		if pairs.Get([]byte(symbol)) != nil {
			return pricepair.ErrPairExists
		}
		if err := pairs.Put([]byte(symbol), u64be(uint64(time.Now().Unix()))); err != nil {
			return err
		}
		_, err := tx.Bucket(bucketPrices).CreateBucketIfNotExists([]byte(symbol))
		return err
	})
}

// DeletePair stops tracking a pair and discards its history.
func (s *Store) DeletePair(_ context.Context, symbol string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		pairs := tx.Bucket(bucketPairs)
		if pairs.Get([]byte(symbol)) == nil {
			return pricepair.ErrPairNotFound
		}
		if err := pairs.Delete([]byte(symbol)); err != nil {
			return err
		}
		prices := tx.Bucket(bucketPrices)
		if prices.Bucket([]byte(symbol)) != nil {
			return prices.DeleteBucket([]byte(symbol))
		}
		return nil
	})
}

// ListPairs returns tracked pair symbols in key order.
func (s *Store) ListPairs(_ context.Context) ([]string, error) {
	var symbols []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPairs).ForEach(func(k, _ []byte) error {
			symbols = append(symbols, string(k))
			return nil
		})
	})
	return symbols, err
}

// Exists reports whether a pair is tracked.
func (s *Store) Exists(_ context.Context, symbol string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketPairs).Get([]byte(symbol)) != nil
		return nil
	})
	return found, err
}

// AppendPrice appends an observation, evicting the oldest beyond the
// configured history cap. Keys are a monotonic sequence, so with
// evictions happening only at the front the live count is
// last - first + 1.
func (s *Store) AppendPrice(_ context.Context, symbol string, obs pricepair.Observation) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketPairs).Get([]byte(symbol)) == nil {
			return pricepair.ErrPairNotFound
		}
		history, err := tx.Bucket(bucketPrices).CreateBucketIfNotExists([]byte(symbol))
		if err != nil {
			return err
		}
		seq, err := history.NextSequence()
		if err != nil {
			return err
		}
		value := make([]byte, 16)
		binary.BigEndian.PutUint64(value[:8], obs.Timestamp)
		binary.BigEndian.PutUint64(value[8:], obs.Price)
		if err := history.Put(u64be(seq), value); err != nil {
			return err
		}
		c := history.Cursor()
		for {
			first, _ := c.First()
			if first == nil || seq-binary.BigEndian.Uint64(first)+1 <= uint64(s.maxHistory) {
				return nil
			}
			if err := history.Delete(first); err != nil {
				return err
			}
		}
	})
}

// LatestPrice returns the most recent observation for a pair.
func (s *Store) LatestPrice(_ context.Context, symbol string) (pricepair.Observation, error) {
	var obs pricepair.Observation
	err := s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketPairs).Get([]byte(symbol)) == nil {
			return pricepair.ErrPairNotFound
		}
		history := tx.Bucket(bucketPrices).Bucket([]byte(symbol))
		if history == nil {
			return pricepair.ErrNoPrice
		}
		_, value := history.Cursor().Last()
		if value == nil {
			return pricepair.ErrNoPrice
		}
		obs = decodeObservation(value)
		return nil
	})
	return obs, err
}

// Prices returns up to n most recent observations, oldest first.
func (s *Store) Prices(_ context.Context, symbol string, n int) ([]pricepair.Observation, error) {
	var out []pricepair.Observation
	err := s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketPairs).Get([]byte(symbol)) == nil {
			return pricepair.ErrPairNotFound
		}
		history := tx.Bucket(bucketPrices).Bucket([]byte(symbol))
		if history == nil {
			return nil
		}
		c := history.Cursor()
		for k, v := c.Last(); k != nil && len(out) < n; k, v = c.Prev() {
			out = append(out, decodeObservation(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// reverse into chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func decodeObservation(value []byte) pricepair.Observation {
	return pricepair.Observation{
		Timestamp: binary.BigEndian.Uint64(value[:8]),
		Price:     binary.BigEndian.Uint64(value[8:]),
	}
}
