package mocks

import (
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/dependencies/random"
)

// MockRandom returns queued Intn results in order.
type MockRandom struct {
	IntnResults []int
	intnIndex   int

	// Bounds records the n passed to every Intn call.
	Bounds []int
}

var _ random.Random = (*MockRandom)(nil)

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining.
func (r *MockRandom) Intn(n int) int {
	r.Bounds = append(r.Bounds, n)
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

func (r *MockRandom) Calls() int {
	return len(r.Bounds)
}

func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.Bounds = nil
}
