package services

import (
	"math/rand"
	"sync"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/utils"
)

// LotteryEngine draws winners uniformly at random without replacement.
// It is safe for concurrent use.
type LotteryEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLotteryEngine creates an engine seeded from crypto/rand.
func NewLotteryEngine() (*LotteryEngine, error) {
	seed, err := utils.NewSeed()
	if err != nil {
		return nil, err
	}
	return NewLotteryEngineWithSeed(seed), nil
}

// NewLotteryEngineWithSeed creates an engine with a fixed seed, for reproducible draws.
func NewLotteryEngineWithSeed(seed int64) *LotteryEngine {
	return &LotteryEngine{rng: rand.New(rand.NewSource(seed))}
}

// Select partitions waitlist into min(requested, len(waitlist)) winners and the remaining
// losers. Duplicate IDs in waitlist are collapsed first, so winners ∪ losers is exactly the
// input set and the two never overlap.
func (e *LotteryEngine) Select(waitlist []string, requested int) (*models.LotteryOutcome, error) {
	const op = "lottery.Select"

	pool := utils.UniqueStrings(waitlist)
	if requested <= 0 || len(pool) == 0 {
		return nil, newError(KindEmptyWaitlist, op, nil)
	}

	count := requested
	if count > len(pool) {
		count = len(pool)
	}

	// Fisher-Yates over the whole pool; every permutation is equally likely.
	e.mu.Lock()
	e.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	e.mu.Unlock()

	return &models.LotteryOutcome{
		Winners: append([]string{}, pool[:count]...),
		Losers:  append([]string{}, pool[count:]...),
	}, nil
}
