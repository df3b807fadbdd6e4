package jobs

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ScoringConfig holds every constant used by the skill matcher and the relevance ranker.
type ScoringConfig struct {
	// Relevance weights; the ranker sums weight × component score.
	SkillsWeight     float64 `yaml:"skills_weight" validate:"gte=0,lte=1"`
	ExperienceWeight float64 `yaml:"experience_weight" validate:"gte=0,lte=1"`
	LocationWeight   float64 `yaml:"location_weight" validate:"gte=0,lte=1"`
	JobTypeWeight    float64 `yaml:"job_type_weight" validate:"gte=0,lte=1"`
	SalaryWeight     float64 `yaml:"salary_weight" validate:"gte=0,lte=1"`

	// ExperienceDecayYears is how far outside a level's band the experience score reaches 0.
	ExperienceDecayYears float64 `yaml:"experience_decay_years" validate:"gt=0"`

	// Skill matcher weights.
	RequiredSkillWeight  float64 `yaml:"required_skill_weight" validate:"gt=0"`
	PreferredSkillWeight float64 `yaml:"preferred_skill_weight" validate:"gt=0"`
	FuzzyExactWord       float64 `yaml:"fuzzy_exact_word" validate:"gte=0"`
	FuzzySubstring       float64 `yaml:"fuzzy_substring" validate:"gte=0"`
	FuzzyPrefix          float64 `yaml:"fuzzy_prefix" validate:"gte=0"`
	FuzzyThreshold       float64 `yaml:"fuzzy_threshold" validate:"gt=0"`
	FuzzyMinWordLen      int     `yaml:"fuzzy_min_word_len" validate:"gte=1"`
	FuzzyPrefixLen       int     `yaml:"fuzzy_prefix_len" validate:"gte=1"`
	MatchScoreScale      float64 `yaml:"match_score_scale" validate:"gt=0"`
}

// DefaultScoring returns the built-in constants.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		SkillsWeight:         0.30,
		ExperienceWeight:     0.25,
		LocationWeight:       0.15,
		JobTypeWeight:        0.15,
		SalaryWeight:         0.15,
		ExperienceDecayYears: 5,
		RequiredSkillWeight:  2,
		PreferredSkillWeight: 1,
		FuzzyExactWord:       1,
		FuzzySubstring:       0.8,
		FuzzyPrefix:          0.6,
		FuzzyThreshold:       0.5,
		FuzzyMinWordLen:      4,
		FuzzyPrefixLen:       4,
		MatchScoreScale:      10,
	}
}

// Validate checks value ranges.
func (c ScoringConfig) Validate() error {
	return validator.New().Struct(c)
}

// LoadScoringConfig overlays the YAML file at path onto DefaultScoring.
// An empty path returns the defaults.
func LoadScoringConfig(path string) (ScoringConfig, error) {
	cfg := DefaultScoring()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scoring config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scoring config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid scoring config: %w", err)
	}
	return cfg, nil
}
