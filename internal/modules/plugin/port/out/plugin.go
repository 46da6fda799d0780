package out

import (
	"context"

	"etut/internal/modules/plugin/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	GenerateInsights(ctx context.Context, manifest domain.Manifest, snapshot domain.Snapshot) ([]domain.PluginInsight, error)
}
