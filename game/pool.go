package game

import (
	"math/rand"
	"time"
)

// MaxNumber is the highest ball on a standard 75-ball bingo board.
const MaxNumber = 75

// Pool owns the shuffled undrawn numbers and the ordered ledger of called
// ones. Between Reset and exhaustion the two are disjoint and together cover
// [1..MaxNumber]. Not safe for concurrent use; the session serializes access.
type Pool struct {
	undrawn []int
	called  []int
	rng     *rand.Rand
}

func NewPool() *Pool {
	return &Pool{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Reset repopulates the pool with a fresh permutation of [1..MaxNumber] and
// clears the ledger.
func (p *Pool) Reset() {
	nums := make([]int, MaxNumber)
	for i := range nums {
		nums[i] = i + 1
	}
	p.rng.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
	p.undrawn = nums
	p.called = nil
}

// Clear empties both the pool and the ledger (idle session).
func (p *Pool) Clear() {
	p.undrawn = nil
	p.called = nil
}

// Draw removes the head of the pool and appends it to the ledger. The second
// return is false when the pool is exhausted.
func (p *Pool) Draw() (int, bool) {
	if len(p.undrawn) == 0 {
		return 0, false
	}
	n := p.undrawn[0]
	p.undrawn = p.undrawn[1:]
	p.called = append(p.called, n)
	return n, true
}

func (p *Pool) Remaining() int {
	return len(p.undrawn)
}

// Called returns a copy of the ledger in call order.
func (p *Pool) Called() []int {
	out := make([]int, len(p.called))
	copy(out, p.called)
	return out
}
