package out

import (
	"context"

	"etut/internal/modules/insight/domain"
)

// InsightSource supplies extra insights beyond the built-in rules, typically
// from out-of-process plugins. Failures should degrade to an empty slice at
// the call site, not break the built-ins.
type InsightSource interface {
	Insights(ctx context.Context, snapshot domain.Snapshot) ([]domain.Insight, error)
}
