package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Capability string

const (
	CapabilityProjects Capability = "projects"
)

var (
	ErrPluginDisabled    = errors.New("plugin is disabled")
	ErrChecksumMismatch  = errors.New("plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("plugin capability missing")
	ErrPluginTimeout     = errors.New("plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name" yaml:"name"`
	Version      string       `json:"version" yaml:"version"`
	Binary       string       `json:"binary" yaml:"binary"`
	SHA256       string       `json:"sha256" yaml:"sha256"`
	Enabled      bool         `json:"enabled" yaml:"enabled"`
	Capabilities []Capability `json:"capabilities" yaml:"capabilities"`
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
	case CapabilityProjects:
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

// ProjectRecord is one project as reported by a plugin.
type ProjectRecord struct {
	ID                 string
	Name               string
	DescriptionSerious string
	DescriptionPlayful string
	Tech               []string
	GitHubURL          string
	LiveURL            string
}

func (r ProjectRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("project id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	return nil
}
