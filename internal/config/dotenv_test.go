package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.NameDurationSeconds != 60 || cfg.ChooseDurationSeconds != 60 || cfg.ScoresDurationSeconds != 20 {
		t.Fatalf("unexpected stage durations: %+v", cfg)
	}
	if cfg.PointsWinOnTurn != 5 || cfg.PointsCorrectGuess != 3 || cfg.PointsMislead != 1 {
		t.Fatalf("unexpected point values: %+v", cfg)
	}
	if cfg.StorageBackend != "postgres" {
		t.Fatalf("default backend = %q", cfg.StorageBackend)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NAME_SECONDS", "90")
	t.Setenv("POINTS_MISLEAD", "2")
	t.Setenv("JWT_SECRET", "override")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SCORES_SECONDS", "not-a-number")

	cfg := Load()
	if cfg.NameDurationSeconds != 90 {
		t.Errorf("NameDurationSeconds = %d, want 90", cfg.NameDurationSeconds)
	}
	if cfg.PointsMislead != 2 {
		t.Errorf("PointsMislead = %d, want 2", cfg.PointsMislead)
	}
	if cfg.JWTSecret != "override" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.StorageBackend != "memory" {
		t.Errorf("StorageBackend = %q", cfg.StorageBackend)
	}
	if cfg.ScoresDurationSeconds != 20 {
		t.Errorf("invalid override must keep the default, got %d", cfg.ScoresDurationSeconds)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv("does-not-exist.env"); err != nil {
		t.Fatalf("missing file should be fine: %v", err)
	}
}
