package service

import (
	"github.com/kpi_tracker/backend/internal/config"
	"github.com/kpi_tracker/backend/internal/models"
)

func (s *KPIService) ScoringConfig() models.ScoringConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Config
}

// UpdateConfig replaces the scoring configuration used by later generations.
// An invalid configuration is rejected with ErrInvalidConfig and the current
// one stays in place. KPIs already stored are not recomputed.
func (s *KPIService) UpdateConfig(sc models.ScoringConfig) (models.ScoringConfig, error) {
	if err := sc.Validate(); err != nil {
		return models.ScoringConfig{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ConfigFile != "" {
		if err := config.SaveScoringFile(s.ConfigFile, sc); err != nil {
			return models.ScoringConfig{}, err
		}
	}
	s.Config = sc

	s.Logger.Info().
		Float64("delivery_weight", sc.DeliveryWeight).
		Float64("quality_weight", sc.QualityWeight).
		Bool("persisted", s.ConfigFile != "").
		Msg("scoring config updated")
	return sc, nil
}
