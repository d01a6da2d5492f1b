// Package config decodes the board/kernel configuration knobs from YAML.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	// MinSwitchRateCC is the minimum tick-timer reload value, in clock cycles.
	MinSwitchRateCC uint32 = 0x50
	// MaxSwitchRateCC is the maximum tick-timer reload value, in clock cycles.
	MaxSwitchRateCC uint32 = 0x00FFFFFF
)

// KernelConfig holds the compile-time configuration knobs of the original
// kernel, made runtime-configurable for the host simulation.
type KernelConfig struct {
	AllowedProcesses  int    `yaml:"allowed_processes"`
	ProcessMemorySize uint32 `yaml:"process_memory_size"`
	SwitchRateCC      uint32 `yaml:"switch_rate_cc"`
	Semihosting       bool   `yaml:"semihosting"`
}

// Default returns the configuration the original kernel ships with:
// ALLOWED_PROCESSES=5, PROCESS_MEMORY_SIZE=0x1000, SWITCH_RATE_CC_MIN=0x50,
// semihosting enabled.
func Default() KernelConfig {
	return KernelConfig{
		AllowedProcesses:  5,
		ProcessMemorySize: 0x1000,
		SwitchRateCC:      MinSwitchRateCC,
		Semihosting:       true,
	}
}

// Validate rejects configurations the kernel cannot run under.
func (c KernelConfig) Validate() error {
	if c.AllowedProcesses < 2 {
		return fmt.Errorf("config: allowed_processes must be >= 2 (1 policy + 1 user task), got %d", c.AllowedProcesses)
	}
	if c.ProcessMemorySize == 0 {
		return fmt.Errorf("config: process_memory_size must be nonzero")
	}
	if c.SwitchRateCC < MinSwitchRateCC || c.SwitchRateCC > MaxSwitchRateCC {
		return fmt.Errorf("config: switch_rate_cc 0x%x out of range [0x%x, 0x%x]", c.SwitchRateCC, MinSwitchRateCC, MaxSwitchRateCC)
	}
	return nil
}

// Load decodes a YAML document into a KernelConfig, starting from Default()
// so a partial document only overrides the fields it mentions, then
// validates the result.
func Load(data []byte) (KernelConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return KernelConfig{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return KernelConfig{}, err
	}
	return cfg, nil
}
