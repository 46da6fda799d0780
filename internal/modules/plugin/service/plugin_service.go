package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"etut/internal/modules/plugin/domain"
	"etut/internal/modules/plugin/dto"
	pluginout "etut/internal/modules/plugin/port/out"
)

type PluginService struct {
	store pluginout.ManifestStore
	host  pluginout.Host
}

func NewPluginService(store pluginout.ManifestStore, host pluginout.Host) *PluginService {
	return &PluginService{store: store, host: host}
}

func (s *PluginService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *PluginService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Generate fans the snapshot out to every runnable insight plugin and
// collects the cards. A failing plugin is skipped so one broken binary
// cannot take down the insight view.
func (s *PluginService) Generate(ctx context.Context, input dto.SnapshotInput) ([]dto.InsightOutput, error) {
	if s.host == nil {
		return nil, nil
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := toSnapshot(input)

	var out []dto.InsightOutput
	for _, m := range manifests {
		if !m.Enabled || !m.HasCapability(domain.CapabilityInsight) {
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			continue
		}
		insights, err := s.host.GenerateInsights(ctx, m, snapshot)
		if err != nil {
			continue
		}
		for _, insight := range insights {
			out = append(out, dto.InsightOutput{
				Plugin:   m.Name,
				Category: normalizeCategory(insight.Category),
				Message:  insight.Message,
			})
		}
	}
	return out, nil
}

func (s *PluginService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Manifest, 0, len(manifests))
	for _, m := range manifests {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("plugin %s: %w", m.Name, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func toSnapshot(input dto.SnapshotInput) domain.Snapshot {
	snapshot := domain.Snapshot{
		Streak:         input.Streak,
		HasHistory:     input.HasHistory,
		GlobalAccuracy: input.GlobalAccuracy,
		GlobalQPM:      input.GlobalQPM,
	}
	for _, s := range input.Subjects {
		snapshot.Subjects = append(snapshot.Subjects, domain.SubjectStat(s))
	}
	for _, l := range input.Locations {
		snapshot.Locations = append(snapshot.Locations, domain.LocationStat(l))
	}
	return snapshot
}

func normalizeCategory(category string) string {
	switch category {
	case "positive", "neutral", "negative":
		return category
	default:
		return "neutral"
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func checksumMatches(path, expected string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open plugin binary: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("hash plugin binary: %w", err)
	}
	if hex.EncodeToString(h.Sum(nil)) != expected {
		return domain.ErrChecksumMismatch
	}
	return nil
}
