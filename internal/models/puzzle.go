package models

import "fmt"

// Puzzle is a single arithmetic problem presented to the learner.
type Puzzle struct {
	Operand1   int        `json:"operand1"`
	Operand2   int        `json:"operand2"`
	Operation  string     `json:"operation"` // "+", "-", "*", "/"
	Answer     int        `json:"-"`         // never serialized to clients
	Difficulty Difficulty `json:"difficulty"`
}

// Question renders the puzzle as a prompt string.
func (p Puzzle) Question() string {
	return fmt.Sprintf("%d %s %d = ?", p.Operand1, p.Operation, p.Operand2)
}
