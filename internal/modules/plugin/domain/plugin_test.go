package domain_test

import (
	"strings"
	"testing"

	"folio/internal/modules/plugin/domain"
)

var validSHA = strings.Repeat("a", 64)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	projects := []domain.Capability{domain.CapabilityProjects}
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA, Enabled: true, Capabilities: projects}, shouldErr: false},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/p", SHA256: validSHA, Capabilities: projects}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "p", Binary: "/tmp/p", SHA256: validSHA, Capabilities: projects}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "p", Version: "1", SHA256: validSHA, Capabilities: projects}, shouldErr: true},
		{name: "uppercase sha", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: strings.Repeat("A", 64), Capabilities: projects}, shouldErr: true},
		{name: "no capabilities", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA}, shouldErr: true},
		{name: "invalid capability", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA, Capabilities: []domain.Capability{"command"}}, shouldErr: true},
		{name: "duplicate capability", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA, Capabilities: []domain.Capability{domain.CapabilityProjects, domain.CapabilityProjects}}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestHasCapabilityAndRecordValidation(t *testing.T) {
	t.Parallel()
	manifest := domain.Manifest{Capabilities: []domain.Capability{domain.CapabilityProjects}}
	if !manifest.HasCapability(domain.CapabilityProjects) {
		t.Fatalf("expected projects capability")
	}
	if (domain.Manifest{}).HasCapability(domain.CapabilityProjects) {
		t.Fatalf("empty manifest must not have capabilities")
	}
	if err := (domain.ProjectRecord{ID: "x", Name: "X"}).Validate(); err != nil {
		t.Fatalf("record validate: %v", err)
	}
	if err := (domain.ProjectRecord{ID: " ", Name: "X"}).Validate(); err == nil {
		t.Fatalf("expected blank id error")
	}
}
