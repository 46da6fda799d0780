package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const (
	// CapabilityInsight marks a plugin that contributes insight cards from
	// a study snapshot.
	CapabilityInsight Capability = "insight"
)

var (
	ErrPluginDisabled   = errors.New("plugin is disabled")
	ErrChecksumMismatch = errors.New("plugin checksum mismatch")
	ErrPluginTimeout    = errors.New("plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("plugin capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityInsight:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// Snapshot is the study picture handed to insight plugins, a mirror of the
// built-in rule engine's input.
type Snapshot struct {
	Streak         int            `json:"streak"`
	HasHistory     bool           `json:"hasHistory"`
	GlobalAccuracy float64        `json:"globalAccuracy"`
	GlobalQPM      float64        `json:"globalQpm"`
	Subjects       []SubjectStat  `json:"subjects"`
	Locations      []LocationStat `json:"locations"`
}

type SubjectStat struct {
	Name      string  `json:"name"`
	Questions int     `json:"questions"`
	Accuracy  float64 `json:"accuracy"`
}

// LocationStat carries the per-location study tempo in questions per
// minute.
type LocationStat struct {
	Name      string  `json:"name"`
	Questions int     `json:"questions"`
	QPM       float64 `json:"qpm"`
}

// PluginInsight is one card returned by a plugin. Category must be one of
// positive, neutral, negative; anything else is coerced to neutral.
type PluginInsight struct {
	Category string
	Message  string
}
