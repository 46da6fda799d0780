package domain_test

import (
	"strings"
	"testing"

	"etut/internal/modules/plugin/domain"
)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	valid := domain.Manifest{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       "/opt/etut/plugins/reference",
		SHA256:       strings.Repeat("ab", 32),
		Capabilities: []domain.Capability{domain.CapabilityInsight},
	}

	cases := []struct {
		name    string
		mutate  func(*domain.Manifest)
		wantErr string
	}{
		{name: "valid", mutate: func(*domain.Manifest) {}},
		{name: "missing name", mutate: func(m *domain.Manifest) { m.Name = "" }, wantErr: "name"},
		{name: "missing version", mutate: func(m *domain.Manifest) { m.Version = "" }, wantErr: "version"},
		{name: "missing binary", mutate: func(m *domain.Manifest) { m.Binary = "" }, wantErr: "binary"},
		{name: "uppercase sha", mutate: func(m *domain.Manifest) { m.SHA256 = strings.Repeat("AB", 32) }, wantErr: "sha256"},
		{name: "short sha", mutate: func(m *domain.Manifest) { m.SHA256 = "abc123" }, wantErr: "sha256"},
		{name: "no capabilities", mutate: func(m *domain.Manifest) { m.Capabilities = nil }, wantErr: "capabilities"},
		{name: "unknown capability", mutate: func(m *domain.Manifest) { m.Capabilities = []domain.Capability{"telemetry"} }, wantErr: "unknown capability"},
		{name: "duplicate capability", mutate: func(m *domain.Manifest) {
			m.Capabilities = []domain.Capability{domain.CapabilityInsight, domain.CapabilityInsight}
		}, wantErr: "duplicate"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := valid
			tc.mutate(&m)
			err := m.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid manifest, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestHasCapability(t *testing.T) {
	t.Parallel()
	m := domain.Manifest{Capabilities: []domain.Capability{domain.CapabilityInsight}}
	if !m.HasCapability(domain.CapabilityInsight) {
		t.Fatalf("expected insight capability")
	}
	if m.HasCapability("telemetry") {
		t.Fatalf("unexpected capability match")
	}
}
