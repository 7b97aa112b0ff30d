package models

import (
	"fmt"
	"math"
)

// WeightSumTolerance is how far delivery+quality weight may drift from 1.0.
const WeightSumTolerance = 0.01

type BugPenalties struct {
	Critical float64 `json:"critical" yaml:"critical" validate:"gte=0"`
	High     float64 `json:"high" yaml:"high" validate:"gte=0"`
	Medium   float64 `json:"medium" yaml:"medium" validate:"gte=0"`
	Low      float64 `json:"low" yaml:"low" validate:"gte=0"`
}

type ScoringConfig struct {
	DeliveryWeight float64      `json:"delivery_weight" yaml:"delivery_weight" validate:"gte=0,lte=1"`
	QualityWeight  float64      `json:"quality_weight" yaml:"quality_weight" validate:"gte=0,lte=1"`
	BugPenalties   BugPenalties `json:"bug_penalties" yaml:"bug_penalties"`
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		DeliveryWeight: 0.5,
		QualityWeight:  0.5,
		BugPenalties: BugPenalties{
			Critical: 15,
			High:     10,
			Medium:   5,
			Low:      2,
		},
	}
}

// Validate reports ErrInvalidConfig for out-of-range weights or penalties and
// for weights that do not sum to 1.0.
func (c ScoringConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	sum := c.DeliveryWeight + c.QualityWeight
	if math.Abs(sum-1.0) > WeightSumTolerance {
		return fmt.Errorf("%w: weights must sum to 1.0 (current: %.2f)", ErrInvalidConfig, sum)
	}
	return nil
}
