package models

import (
	"fmt"
	"strings"
)

// Difficulty is an ordered puzzle difficulty level: Easy < Medium < Hard.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists all levels in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the defined levels.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// Harder returns the next harder level, staying at Hard.
func (d Difficulty) Harder() Difficulty {
	if d >= Hard {
		return Hard
	}
	return d + 1
}

// Easier returns the next easier level, staying at Easy.
func (d Difficulty) Easier() Difficulty {
	if d <= Easy {
		return Easy
	}
	return d - 1
}

// ParseDifficulty parses "easy", "medium" or "hard" (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return Easy, fmt.Errorf("unknown difficulty %q", s)
	}
}

// MarshalText encodes the difficulty as its lowercase name. Used for JSON
// values and map keys alike.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a difficulty from its lowercase name.
func (d *Difficulty) UnmarshalText(data []byte) error {
	parsed, err := ParseDifficulty(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
