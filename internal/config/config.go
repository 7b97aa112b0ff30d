package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kpi_tracker/backend/internal/models"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	SeedFile       string        `mapstructure:"SEED_FILE"`
	AdminKey       string        `mapstructure:"ADMIN_KEY"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	Workers        int           `mapstructure:"WORKERS"`

	DeliveryWeight  float64 `mapstructure:"DELIVERY_WEIGHT"`
	QualityWeight   float64 `mapstructure:"QUALITY_WEIGHT"`
	PenaltyCritical float64 `mapstructure:"PENALTY_CRITICAL"`
	PenaltyHigh     float64 `mapstructure:"PENALTY_HIGH"`
	PenaltyMedium   float64 `mapstructure:"PENALTY_MEDIUM"`
	PenaltyLow      float64 `mapstructure:"PENALTY_LOW"`
	// ScoringConfigFile points to a YAML scoring profile that replaces the
	// weight and penalty variables above.
	ScoringConfigFile string `mapstructure:"SCORING_CONFIG_FILE"`
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	def := models.DefaultScoringConfig()
	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("ADMIN_KEY", "")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("WORKERS", 4)
	v.SetDefault("DELIVERY_WEIGHT", def.DeliveryWeight)
	v.SetDefault("QUALITY_WEIGHT", def.QualityWeight)
	v.SetDefault("PENALTY_CRITICAL", def.BugPenalties.Critical)
	v.SetDefault("PENALTY_HIGH", def.BugPenalties.High)
	v.SetDefault("PENALTY_MEDIUM", def.BugPenalties.Medium)
	v.SetDefault("PENALTY_LOW", def.BugPenalties.Low)
	v.SetDefault("SCORING_CONFIG_FILE", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Scoring(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Scoring returns the validated scoring configuration, read from
// ScoringConfigFile when set.
func (c Config) Scoring() (models.ScoringConfig, error) {
	if c.ScoringConfigFile != "" {
		return LoadScoringFile(c.ScoringConfigFile)
	}
	sc := models.ScoringConfig{
		DeliveryWeight: c.DeliveryWeight,
		QualityWeight:  c.QualityWeight,
		BugPenalties: models.BugPenalties{
			Critical: c.PenaltyCritical,
			High:     c.PenaltyHigh,
			Medium:   c.PenaltyMedium,
			Low:      c.PenaltyLow,
		},
	}
	if err := sc.Validate(); err != nil {
		return models.ScoringConfig{}, err
	}
	return sc, nil
}

// LoadScoringFile reads a YAML scoring profile. Keys missing from the file
// keep their default values.
func LoadScoringFile(path string) (models.ScoringConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return models.ScoringConfig{}, fmt.Errorf("read scoring config: %w", err)
	}
	sc := models.DefaultScoringConfig()
	if err := yaml.Unmarshal(b, &sc); err != nil {
		return models.ScoringConfig{}, fmt.Errorf("%w: parse %s: %v", models.ErrInvalidConfig, path, err)
	}
	if err := sc.Validate(); err != nil {
		return models.ScoringConfig{}, err
	}
	return sc, nil
}

// SaveScoringFile writes sc as a YAML scoring profile. The file is replaced
// atomically so a concurrent LoadScoringFile never sees a partial write.
func SaveScoringFile(path string, sc models.ScoringConfig) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	b, err := yaml.Marshal(sc)
	if err != nil {
		return fmt.Errorf("encode scoring config: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".scoring-*.yaml")
	if err != nil {
		return fmt.Errorf("write scoring config: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write scoring config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write scoring config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write scoring config: %w", err)
	}
	return nil
}
