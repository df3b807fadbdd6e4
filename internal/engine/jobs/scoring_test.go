package jobs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadScoringConfig_EmptyPathIsDefault(t *testing.T) {
	cfg, err := LoadScoringConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultScoring(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadScoringConfig_Overlay(t *testing.T) {
	cfg, err := LoadScoringConfig(writeYAML(t, "skills_weight: 0.5\nexperience_decay_years: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.SkillsWeight)
	assert.Equal(t, 10.0, cfg.ExperienceDecayYears)
	assert.Equal(t, DefaultScoring().SalaryWeight, cfg.SalaryWeight, "unset keys keep defaults")
}

func TestLoadScoringConfig_Invalid(t *testing.T) {
	_, err := LoadScoringConfig(writeYAML(t, "skills_weight: 1.5\n"))
	assert.ErrorContains(t, err, "invalid scoring config")

	_, err = LoadScoringConfig(writeYAML(t, "fuzzy_threshold: 0\n"))
	assert.Error(t, err)

	_, err = LoadScoringConfig(writeYAML(t, "skills_weight: [oops\n"))
	assert.ErrorContains(t, err, "parse scoring config")

	_, err = LoadScoringConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read scoring config")
}
