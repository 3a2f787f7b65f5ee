package cache

import (
	"context"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/metrics"
)

const (
	totalsTTLSeconds = 600
	maxKeyLength     = 250
)

// memcacheClient is the subset of *memcache.Client the totals cache uses.
type memcacheClient interface {
	Get(key string) (*memcache.Item, error)
	Add(item *memcache.Item) error
	Increment(key string, delta uint64) (uint64, error)
}

// Memcache is a TotalsCache backed by memcached. Each user has a generation
// counter; totals are keyed by it and invalidation bumps it, which orphans
// every total stored under the old generation.
type Memcache struct {
	client memcacheClient
	logger *logrus.Logger
	now    func() time.Time
}

var _ TotalsCache = (*Memcache)(nil)

// NewMemcache connects to the given servers and pings them once.
func NewMemcache(hosts []string, logger *logrus.Logger) (*Memcache, error) {
	logger.WithField("hosts", hosts).Info("Memcache.New")
	client := memcache.New(hosts...)
	if err := client.Ping(); err != nil {
		return nil, errors.Wrap(err, "memcache ping")
	}
	return &Memcache{client: client, logger: logger, now: time.Now}, nil
}

func generationKey(userID int64) string {
	return "totalsgen:" + strconv.FormatInt(userID, 10)
}

// totalsKey builds the key for one slot. The tag is hex encoded since
// memcached keys may not contain whitespace. ok is false when the key would
// exceed memcached's length limit.
func totalsKey(slot Slot) (key string, ok bool) {
	key = "totals:" + strconv.FormatInt(slot.UserID, 10) + ":" + slot.Generation + ":" +
		hex.EncodeToString([]byte(slot.TransactionType))
	return key, len(key) <= maxKeyLength
}

// generation returns the user's current generation, seeding it when absent.
// The seed is a timestamp so a counter lost to eviction never comes back
// lower than a generation that totals were stored under.
func (m *Memcache) generation(userID int64) (string, bool) {
	key := generationKey(userID)
	item, err := m.client.Get(key)
	if err == nil {
		return string(item.Value), true
	}
	if !errors.Is(err, memcache.ErrCacheMiss) {
		m.logger.WithError(err).Warn("Memcache.generation")
		return "", false
	}

	seed := strconv.FormatInt(m.now().UnixNano(), 10)
	err = m.client.Add(&memcache.Item{Key: key, Value: []byte(seed)})
	if err == nil {
		return seed, true
	}
	if errors.Is(err, memcache.ErrNotStored) {
		if item, err = m.client.Get(key); err == nil {
			return string(item.Value), true
		}
	}
	m.logger.WithError(err).Warn("Memcache.generation.seed")
	return "", false
}

func (m *Memcache) Get(_ context.Context, userID int64, transactionType string) (decimal.Decimal, Slot, bool) {
	gen, ok := m.generation(userID)
	if !ok {
		metrics.TotalsCacheLookup(false)
		return decimal.Zero, Slot{}, false
	}
	slot := Slot{UserID: userID, TransactionType: transactionType, Generation: gen}
	key, ok := totalsKey(slot)
	if !ok {
		return decimal.Zero, Slot{}, false
	}

	item, err := m.client.Get(key)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			m.logger.WithError(err).Warn("Memcache.Get")
		}
		metrics.TotalsCacheLookup(false)
		return decimal.Zero, slot, false
	}

	total, err := decimal.NewFromString(string(item.Value))
	if err != nil {
		m.logger.WithError(err).WithField("key", key).Warn("Memcache.Get.decode")
		metrics.TotalsCacheLookup(false)
		return decimal.Zero, slot, false
	}
	metrics.TotalsCacheLookup(true)
	return total, slot, true
}

// Set stores total in slot unless another reader already filled it.
func (m *Memcache) Set(_ context.Context, slot Slot, total decimal.Decimal) {
	if slot.Generation == "" {
		return
	}
	key, ok := totalsKey(slot)
	if !ok {
		return
	}
	err := m.client.Add(&memcache.Item{
		Key:        key,
		Value:      []byte(total.String()),
		Expiration: totalsTTLSeconds,
	})
	if err != nil && !errors.Is(err, memcache.ErrNotStored) {
		m.logger.WithError(err).Warn("Memcache.Set")
	}
}

func (m *Memcache) Invalidate(_ context.Context, userID int64) {
	key := generationKey(userID)
	_, err := m.client.Increment(key, 1)
	// A missing counter is reseeded above every earlier generation on the next read.
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		m.logger.WithError(err).WithField("key", key).Warn("Memcache.Invalidate")
	}
}
