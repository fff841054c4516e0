package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// whitelistSet is a precomputed lookup table for fast whitelist
// membership checks.
var whitelistSet map[string]bool

func init() {
	whitelistSet = make(map[string]bool, len(WhitelistedVars))
	for _, v := range WhitelistedVars {
		whitelistSet[v] = true
	}
}

// envOverrides mirrors the whitelisted variables as SKYNET_LOOP_*
// environment variables, parsed with caarlos0/env. Pointer fields
// distinguish "unset" from zero values so absent variables never clobber
// lower layers.
type envOverrides struct {
	StateDir          *string `env:"SKYNET_LOOP_STATE_DIR"`
	HistoryTail       *int    `env:"SKYNET_LOOP_HISTORY_TAIL"`
	LockTimeout       *int    `env:"SKYNET_LOOP_LOCK_TIMEOUT"`
	NextSprintCommand *string `env:"SKYNET_LOOP_NEXT_SPRINT_COMMAND"`
	Verbose           *bool   `env:"SKYNET_LOOP_VERBOSE"`
	NoColor           *bool   `env:"SKYNET_LOOP_NO_COLOR"`
}

// LoadFile parses a KEY=VALUE config file at the given path.
//
// Lines are processed according to these rules:
//   - Empty lines and lines starting with # are skipped.
//   - Lines without an = sign are skipped.
//   - Leading and trailing whitespace is trimmed from both key and value.
//   - Keys not present in WhitelistedVars are silently ignored.
//
// Returns a map of whitelisted key-value pairs, or an error if the file
// cannot be opened.
func LoadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	result := make(map[string]string)
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on first '=' only.
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		// Enforce whitelist.
		if !whitelistSet[key] {
			continue
		}

		result[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return result, nil
}

// LoadWithPrecedence assembles a Config by merging sources in order of
// increasing priority:
//
//  1. Built-in defaults
//  2. Global config file (globalPath)
//  3. Project config file (projectPath)
//  4. Explicit config file (explicitPath)
//  5. SKYNET_LOOP_* environment variables
//  6. CLI overrides (cliOverrides map)
//
// Any path that is empty is silently skipped; missing global and project
// configs are not errors. An explicit config file must exist if specified.
func LoadWithPrecedence(globalPath, projectPath, explicitPath string, cliOverrides map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	// Layer 2: global config file.
	if globalPath != "" {
		m, err := LoadFile(globalPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("global config: %w", err)
			}
			// Missing global config is not an error.
		} else {
			ApplyMapToConfig(cfg, m)
		}
	}

	// Layer 3: project config file.
	if projectPath != "" {
		m, err := LoadFile(projectPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("project config: %w", err)
			}
			// Missing project config is not an error.
		} else {
			ApplyMapToConfig(cfg, m)
		}
	}

	// Layer 4: explicit config file (must exist if specified).
	if explicitPath != "" {
		m, err := LoadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("explicit config: %w", err)
		}
		ApplyMapToConfig(cfg, m)
	}

	// Layer 5: environment overrides.
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("environment config: %w", err)
	}
	applyEnvOverrides(cfg, overrides)

	// Layer 6: CLI overrides (highest priority).
	if len(cliOverrides) > 0 {
		ApplyMapToConfig(cfg, cliOverrides)
	}

	return cfg, nil
}

// ApplyMapToConfig sets fields on cfg from the key-value pairs in m.
// Keys must use the WhitelistedVars naming convention (e.g., "STATE_DIR").
// Unknown keys are silently ignored. Integer fields that fail to parse
// are silently ignored (the previous value is preserved).
func ApplyMapToConfig(cfg *Config, m map[string]string) {
	for key, value := range m {
		switch key {
		case "STATE_DIR":
			cfg.StateDir = value
		case "HISTORY_TAIL":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.HistoryTail = v
			}
		case "LOCK_TIMEOUT":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.LockTimeoutSecs = v
			}
		case "NEXT_SPRINT_COMMAND":
			cfg.NextSprintCommand = value
		case "VERBOSE":
			cfg.Verbose = parseBool(value)
		case "NO_COLOR":
			cfg.NoColor = parseBool(value)
		}
	}
}

func applyEnvOverrides(cfg *Config, o envOverrides) {
	if o.StateDir != nil {
		cfg.StateDir = *o.StateDir
	}
	if o.HistoryTail != nil {
		cfg.HistoryTail = *o.HistoryTail
	}
	if o.LockTimeout != nil {
		cfg.LockTimeoutSecs = *o.LockTimeout
	}
	if o.NextSprintCommand != nil {
		cfg.NextSprintCommand = *o.NextSprintCommand
	}
	if o.Verbose != nil {
		cfg.Verbose = *o.Verbose
	}
	if o.NoColor != nil {
		cfg.NoColor = *o.NoColor
	}
}

// parseBool interprets common boolean representations.
// "true", "1", "yes" (case-insensitive) return true; everything else
// returns false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
