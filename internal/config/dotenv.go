package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	NameDurationSeconds      int
	ChooseDurationSeconds    int
	ScoresDurationSeconds    int
	PointsWinOnTurn          int
	PointsCorrectGuess       int
	PointsMislead            int
	GameCodeLength           int
	WordRetryBudget          int
	LockRetries              int
	LockRetryPeriodMillis    int
	JWTSecret                string
	JWTExpirySeconds         int
	StorageBackend           string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
}

func Default() Config {
	return Config{
		NameDurationSeconds:      60,
		ChooseDurationSeconds:    60,
		ScoresDurationSeconds:    20,
		PointsWinOnTurn:          5,
		PointsCorrectGuess:       3,
		PointsMislead:            1,
		GameCodeLength:           4,
		WordRetryBudget:          1000,
		LockRetries:              200,
		LockRetryPeriodMillis:    50,
		JWTSecret:                "local-dev-secret",
		JWTExpirySeconds:         3600,
		StorageBackend:           "postgres",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
	}
}

func Load() Config {
	cfg := Default()
	setInt(&cfg.NameDurationSeconds, "NAME_SECONDS")
	setInt(&cfg.ChooseDurationSeconds, "CHOOSE_SECONDS")
	setInt(&cfg.ScoresDurationSeconds, "SCORES_SECONDS")
	setInt(&cfg.PointsWinOnTurn, "POINTS_WIN_ON_TURN")
	setInt(&cfg.PointsCorrectGuess, "POINTS_CORRECT_GUESS")
	setInt(&cfg.PointsMislead, "POINTS_MISLEAD")
	setInt(&cfg.GameCodeLength, "GAME_CODE_LENGTH")
	setInt(&cfg.WordRetryBudget, "WORD_RETRY_BUDGET")
	setInt(&cfg.LockRetries, "LOCK_RETRIES")
	setInt(&cfg.LockRetryPeriodMillis, "LOCK_RETRY_PERIOD_MS")
	setInt(&cfg.JWTExpirySeconds, "JWT_EXPIRY_SECONDS")
	setInt(&cfg.DBMaxOpenConns, "DB_MAX_OPEN_CONNS")
	setInt(&cfg.DBMaxIdleConns, "DB_MAX_IDLE_CONNS")
	setInt(&cfg.DBConnMaxLifetimeSeconds, "DB_CONN_MAX_LIFETIME_SECONDS")
	if raw := os.Getenv("JWT_SECRET"); raw != "" {
		cfg.JWTSecret = raw
	}
	if raw := os.Getenv("STORAGE_BACKEND"); raw != "" {
		cfg.StorageBackend = raw
	}
	return cfg
}

func setInt(dest *int, key string) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	if value, err := strconv.Atoi(raw); err == nil && value > 0 {
		*dest = value
	}
}
