// Package puzzle generates arithmetic problems parameterized by difficulty.
package puzzle

import (
	"math/rand"
	"time"

	"github.com/mathadv/quiz/internal/models"
)

// levelConfig describes operand ranges and allowed operations per level.
type levelConfig struct {
	minOperand int
	maxOperand int
	operations []string
}

var levels = map[models.Difficulty]levelConfig{
	models.Easy:   {minOperand: 1, maxOperand: 10, operations: []string{"+", "-"}},
	models.Medium: {minOperand: 5, maxOperand: 50, operations: []string{"+", "-", "*"}},
	models.Hard:   {minOperand: 10, maxOperand: 100, operations: []string{"+", "-", "*", "/"}},
}

// Generator produces puzzles with progressive difficulty. It is not safe
// for concurrent use; each session owns its own generator.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator. A seed of 0 uses the current time; any other
// seed yields a deterministic puzzle stream, used by tests.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns a single puzzle at the given difficulty. Division is
// constrained so the answer is always a whole number.
func (g *Generator) Generate(difficulty models.Difficulty) models.Puzzle {
	cfg, ok := levels[difficulty]
	if !ok {
		cfg = levels[models.Easy]
		difficulty = models.Easy
	}

	operand1 := g.intn(cfg.minOperand, cfg.maxOperand)
	operand2 := g.intn(max(1, cfg.minOperand/2), cfg.maxOperand)
	operation := cfg.operations[g.rng.Intn(len(cfg.operations))]

	var answer int
	switch operation {
	case "+":
		answer = operand1 + operand2
	case "-":
		answer = operand1 - operand2
	case "*":
		answer = operand1 * operand2
	case "/":
		operand2 = max(1, operand1/g.intn(2, 5))
		answer = operand1 / operand2
	}

	return models.Puzzle{
		Operand1:   operand1,
		Operand2:   operand2,
		Operation:  operation,
		Answer:     answer,
		Difficulty: difficulty,
	}
}

// GenerateBatch returns count puzzles at the given difficulty.
func (g *Generator) GenerateBatch(difficulty models.Difficulty, count int) []models.Puzzle {
	out := make([]models.Puzzle, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, g.Generate(difficulty))
	}
	return out
}

// intn returns a random int in [lo, hi], inclusive.
func (g *Generator) intn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}
