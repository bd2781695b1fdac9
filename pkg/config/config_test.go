package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-codegraph/pkg/community"
	"github.com/dd0wney/cluso-codegraph/pkg/logging"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, community.Leiden, cfg.Algorithm())
	assert.Equal(t, community.Parameters{Resolution: 1, MaxIterations: 100}, cfg.Parameters())
	assert.Equal(t, 20, cfg.Recommendations.SplitSize)
	assert.Equal(t, 5, cfg.Report.MinDescriptionSize)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, logging.InfoLevel, cfg.Level())
}

func TestParse_OverlaysDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Parse([]byte(`
detection:
  algorithm: girvan_newman
  k: 3
  disabled: [leiden]
recommendations:
  split_size: 40
report:
  min_description_size: 8
log_level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, community.GirvanNewman, cfg.Algorithm())
	assert.Equal(t, 3, cfg.Parameters().K)
	assert.Equal(t, 1.0, cfg.Parameters().Resolution)
	assert.Equal(t, 40, cfg.Recommendations.SplitSize)
	assert.Equal(t, 3, cfg.Recommendations.MergeSize)
	assert.Equal(t, 8, cfg.Report.MinDescriptionSize)
	assert.Equal(t, logging.DebugLevel, cfg.Level())
	assert.Equal(t, 40, cfg.Advisor().Thresholds().SplitSize)

	e := community.NewEngine(cfg.EngineOptions()...)
	assert.False(t, e.Available(community.Leiden))
	assert.True(t, e.Available(community.Louvain))
}

func TestParse_DefaultAlias(t *testing.T) {
	cfg, err := Parse([]byte("detection:\n  algorithm: default\n"))
	require.NoError(t, err)
	assert.Equal(t, community.Identity, cfg.Algorithm())
}

func TestParse_EnvOverridesLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Parse([]byte("log_level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, logging.WarnLevel, cfg.Level())
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"unknown algorithm", "detection:\n  algorithm: spectral\n", "detection.algorithm"},
		{"negative resolution", "detection:\n  resolution: -1\n", "detection.resolution"},
		{"negative k", "detection:\n  k: -2\n", "detection.k"},
		{"too many iterations", "detection:\n  max_iterations: 1000001\n", "detection.max_iterations"},
		{"unknown disabled", "detection:\n  disabled: [fast]\n", "detection.disabled"},
		{"identity disabled", "detection:\n  disabled: [identity]\n", "detection.disabled"},
		{"default alias disabled", "detection:\n  algorithm: default\n  disabled: [louvain, default]\n", "detection.disabled"},
		{"empty algorithm", "detection:\n  algorithm: \"\"\n", "detection.algorithm"},
		{"bad thresholds", "recommendations:\n  min_cohesion: 2\n", "recommendations"},
		{"bad coupling", "recommendations:\n  max_coupling: -0.5\n", "recommendations"},
		{"zero workers", "workers: 0\n", "workers"},
		{"bad log level", "log_level: loud\n", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Config."+tt.field)
		})
	}
}

func TestParse_EmptyAlgorithmReportedOnce(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	_, err := Parse([]byte("detection:\n  algorithm: \"\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required field is empty")
	assert.NotContains(t, err.Error(), "errors")
}

func TestEngineOptions_KeepIdentity(t *testing.T) {
	cfg := Default()
	cfg.Detection.Disabled = []string{"leiden", "identity"}
	cfg.Workers = 0

	e := community.NewEngine(cfg.EngineOptions()...)
	assert.False(t, e.Available(community.Leiden))
	assert.True(t, e.Available(community.Identity))
}

func TestParse_CollectsAllErrors(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	_, err := Parse([]byte("workers: 0\nlog_level: loud\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors")
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("detection: [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "codegraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
