// Package config holds the guardgen configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"guardgen/internal/codegen"
	"guardgen/internal/selection"
)

// Config holds all guardgen configuration.
type Config struct {
	// Model is the pre-parsed instruction-set description (YAML or JSON).
	Model string `yaml:"model" json:"model" jsonschema:"title=Model,description=Path of the parsed instruction-set model"`
	// Output is the generated file; "-" or empty writes to stdout.
	Output string `yaml:"output,omitempty" json:"output,omitempty" jsonschema:"title=Output,description=Generated C file or - for stdout"`

	Target TargetConfig `yaml:"target" json:"target"`

	// Select is the allow-list of mnemonics to emit.
	Select []string `yaml:"select" json:"select" jsonschema:"title=Selection,description=Mnemonics to emit"`

	KeepGoing bool `yaml:"keep_going,omitempty" json:"keep_going,omitempty" jsonschema:"description=Skip constructors that fail instead of aborting"`
	Jobs      int  `yaml:"jobs,omitempty" json:"jobs,omitempty" jsonschema:"description=Constructors rendered concurrently"`
	Color     bool `yaml:"color" json:"color" jsonschema:"description=Highlight output on terminals"`
}

// TargetConfig names the C conventions of the hand-written disassembler.
type TargetConfig struct {
	Name          string `yaml:"name" json:"name" jsonschema:"description=Instruction id prefix"`
	Inst          string `yaml:"inst" json:"inst" jsonschema:"description=Decoded instruction variable"`
	TraceMacro    string `yaml:"trace_macro" json:"trace_macro"`
	OperandsMacro string `yaml:"operands_macro" json:"operands_macro"`
	// Trailer is written once after all constructors.
	Trailer string `yaml:"trailer" json:"trailer"`
}

// DefaultConfig returns the V850 FPU configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: "-",
		Target: TargetConfig{
			Name:          codegen.V850.Name,
			Inst:          codegen.V850.Inst,
			TraceMacro:    codegen.V850.TraceMacro,
			OperandsMacro: codegen.V850.OperandsMacro,
			Trailer:       "return true;",
		},
		Select: append([]string(nil), selection.V850FPU...),
		Jobs:   1,
		Color:  true,
	}
}

// Load reads a config file on top of DefaultConfig and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		// Relative model and output paths are relative to the config file.
		dir := filepath.Dir(path)
		cfg.Model = resolve(dir, cfg.Model)
		if cfg.Output != "-" {
			cfg.Output = resolve(dir, cfg.Output)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GUARDGEN_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("GUARDGEN_OUTPUT"); v != "" {
		c.Output = v
	}
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks that the config can drive a generation run.
func (c *Config) Validate() error {
	var errs []error
	if c.Model == "" {
		errs = append(errs, errors.New("model path is required"))
	}
	if len(c.Select) == 0 {
		errs = append(errs, errors.New("selection is empty"))
	}
	if c.Target.Name == "" {
		errs = append(errs, errors.New("target name is required"))
	}
	if c.Target.Inst == "" || c.Target.TraceMacro == "" || c.Target.OperandsMacro == "" {
		errs = append(errs, errors.New("target inst, trace_macro and operands_macro are required"))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must not be negative, got %d", c.Jobs))
	}
	return errors.Join(errs...)
}

// CodegenTarget returns the target conventions for the generator.
func (c *Config) CodegenTarget() codegen.Target {
	return codegen.Target{
		Name:          c.Target.Name,
		Inst:          c.Target.Inst,
		TraceMacro:    c.Target.TraceMacro,
		OperandsMacro: c.Target.OperandsMacro,
	}
}

// Selection returns the allow-list as a set.
func (c *Config) Selection() selection.Set {
	return selection.New(c.Select...)
}

// Options returns the batch options.
func (c *Config) Options() codegen.Options {
	return codegen.Options{KeepGoing: c.KeepGoing, Jobs: c.Jobs}
}
