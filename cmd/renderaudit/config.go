package main

import (
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/gnana997/renderaudit/pkg/audit"
)

// ProjectConfig holds the contents of .renderaudit.yaml.
type ProjectConfig struct {
	Include    []string `yaml:"include"`
	Exclude    []string `yaml:"exclude"`
	Strict     bool     `yaml:"strict"`
	Thresholds struct {
		LargeComponentWarn int `yaml:"large_component_warn"`
		LargeComponentInfo int `yaml:"large_component_info"`
		PropsWarn          int `yaml:"props_warn"`
		PropsInfo          int `yaml:"props_info"`
		StateHooksWarn     int `yaml:"state_hooks_warn"`
		StateHooksInfo     int `yaml:"state_hooks_info"`
	} `yaml:"thresholds"`
}

// loadProjectConfig reads .renderaudit.yaml from the current directory.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(".renderaudit.yaml")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveRunConfig builds the audit configuration with the fallback chain
// flag > .renderaudit.yaml > default, and returns whether strict mode is
// enabled.
func resolveRunConfig(cmd *cli.Command) (audit.Config, bool) {
	cfg := audit.DefaultConfig()
	strict := false

	if pc, err := loadProjectConfig(); err == nil && pc != nil {
		if len(pc.Include) > 0 {
			cfg.Include = pc.Include
		}
		if len(pc.Exclude) > 0 {
			cfg.Exclude = pc.Exclude
		}
		strict = pc.Strict
		applyThreshold(&cfg.Thresholds.LargeComponentWarn, pc.Thresholds.LargeComponentWarn)
		applyThreshold(&cfg.Thresholds.LargeComponentInfo, pc.Thresholds.LargeComponentInfo)
		applyThreshold(&cfg.Thresholds.PropsWarn, pc.Thresholds.PropsWarn)
		applyThreshold(&cfg.Thresholds.PropsInfo, pc.Thresholds.PropsInfo)
		applyThreshold(&cfg.Thresholds.StateHooksWarn, pc.Thresholds.StateHooksWarn)
		applyThreshold(&cfg.Thresholds.StateHooksInfo, pc.Thresholds.StateHooksInfo)
	}

	if include := cmd.StringSlice("include"); len(include) > 0 {
		cfg.Include = include
	}
	if exclude := cmd.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Exclude = exclude
	}
	if cmd.Bool("strict") {
		strict = true
	}
	cfg.Workers = cmd.Int("jobs")

	return cfg, strict
}

func applyThreshold(dst *int, value int) {
	if value > 0 {
		*dst = value
	}
}
