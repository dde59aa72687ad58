package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	// Adaptive engine tuning
	MinWindowSize  int
	LookbackWindow int
	HighAccuracy   float64
	LowAccuracy    float64
	FastTimeEasy   float64
	FastTimeMedium float64
	FastTimeHard   float64
	SlowTimeEasy   float64
	SlowTimeMedium float64
	SlowTimeHard   float64

	// Session behavior
	MaxPuzzles int // 0 = unlimited
	PuzzleSeed int64

	// Background stats refresh
	StatsWorkerCount int
	StatsQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:     envOr("ADDR", ":8080"),
		DBPath:   envOr("DB_PATH", ":memory:"),
		LogLevel: envOr("LOG_LEVEL", "INFO"),

		MinWindowSize:  envIntOr("MIN_WINDOW_SIZE", 3),
		LookbackWindow: envIntOr("LOOKBACK_WINDOW", 5),
		HighAccuracy:   envFloatOr("HIGH_ACCURACY", 0.75),
		LowAccuracy:    envFloatOr("LOW_ACCURACY", 0.50),
		FastTimeEasy:   envFloatOr("FAST_TIME_EASY", 6),
		FastTimeMedium: envFloatOr("FAST_TIME_MEDIUM", 10),
		FastTimeHard:   envFloatOr("FAST_TIME_HARD", 15),
		SlowTimeEasy:   envFloatOr("SLOW_TIME_EASY", 15),
		SlowTimeMedium: envFloatOr("SLOW_TIME_MEDIUM", 20),
		SlowTimeHard:   envFloatOr("SLOW_TIME_HARD", 30),

		MaxPuzzles: envIntOr("MAX_PUZZLES", 10),
		PuzzleSeed: int64(envIntOr("PUZZLE_SEED", 0)),

		StatsWorkerCount: envIntOr("STATS_WORKER_COUNT", 1),
		StatsQueueSize:   envIntOr("STATS_QUEUE_SIZE", 16),
	}
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.MinWindowSize <= 0 {
		return fmt.Errorf("MIN_WINDOW_SIZE must be positive")
	}
	if c.LookbackWindow < c.MinWindowSize {
		return fmt.Errorf("LOOKBACK_WINDOW must be at least MIN_WINDOW_SIZE")
	}
	if c.HighAccuracy <= 0 || c.HighAccuracy > 1 {
		return fmt.Errorf("HIGH_ACCURACY must be in (0, 1]")
	}
	if c.LowAccuracy < 0 || c.LowAccuracy >= c.HighAccuracy {
		return fmt.Errorf("LOW_ACCURACY must be in [0, HIGH_ACCURACY)")
	}
	if c.MaxPuzzles < 0 {
		return fmt.Errorf("MAX_PUZZLES cannot be negative")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
