package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/gnana997/renderaudit/pkg/audit"
)

// resolveWithArgs runs a throwaway command so resolveRunConfig sees parsed
// flags exactly as runScan would.
func resolveWithArgs(t *testing.T, args ...string) (audit.Config, bool) {
	t.Helper()
	var cfg audit.Config
	var strict bool
	cmd := &cli.Command{
		Name:  "renderaudit",
		Flags: scanFlags(),
		Action: func(_ context.Context, c *cli.Command) error {
			cfg, strict = resolveRunConfig(c)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"renderaudit"}, args...)))
	return cfg, strict
}

func writeProjectConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".renderaudit.yaml"), []byte(content), 0644))
	t.Chdir(dir)
}

func TestLoadProjectConfig_Missing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadProjectConfig_Parsed(t *testing.T) {
	writeProjectConfig(t, `
include:
  - "src/**/*.tsx"
strict: true
thresholds:
  props_warn: 6
  large_component_warn: 400
`)
	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"src/**/*.tsx"}, cfg.Include)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 6, cfg.Thresholds.PropsWarn)
	assert.Equal(t, 400, cfg.Thresholds.LargeComponentWarn)
}

func TestLoadProjectConfig_Malformed(t *testing.T) {
	writeProjectConfig(t, "include: [unclosed\n")
	_, err := loadProjectConfig()
	assert.Error(t, err)
}

func TestResolveRunConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, strict := resolveWithArgs(t)

	def := audit.DefaultConfig()
	assert.Equal(t, def.Include, cfg.Include)
	assert.Equal(t, def.Exclude, cfg.Exclude)
	assert.Equal(t, def.Thresholds, cfg.Thresholds)
	assert.False(t, strict)
	assert.Equal(t, 0, cfg.Workers)
}

func TestResolveRunConfig_ProjectFileApplied(t *testing.T) {
	writeProjectConfig(t, `
exclude:
  - "legacy/**"
strict: true
thresholds:
  state_hooks_warn: 9
`)
	cfg, strict := resolveWithArgs(t)
	assert.Equal(t, []string{"legacy/**"}, cfg.Exclude)
	assert.True(t, strict)
	assert.Equal(t, 9, cfg.Thresholds.StateHooksWarn)
	assert.Equal(t, audit.DefaultConfig().Include, cfg.Include,
		"unset fields keep their defaults")
	assert.Equal(t, 250, cfg.Thresholds.LargeComponentWarn,
		"zero thresholds in the file are ignored")
}

func TestResolveRunConfig_FlagsWin(t *testing.T) {
	writeProjectConfig(t, `
include:
  - "src/**/*.tsx"
`)
	cfg, strict := resolveWithArgs(t,
		"--include", "app/**/*.jsx",
		"--strict",
		"--jobs", "4",
	)
	assert.Equal(t, []string{"app/**/*.jsx"}, cfg.Include)
	assert.True(t, strict)
	assert.Equal(t, 4, cfg.Workers)
}
