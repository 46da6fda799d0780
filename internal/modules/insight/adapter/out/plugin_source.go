package out

import (
	"context"

	"etut/internal/modules/insight/domain"
	insightout "etut/internal/modules/insight/port/out"
	plugindto "etut/internal/modules/plugin/dto"
	pluginin "etut/internal/modules/plugin/port/in"
)

// PluginInsightSource feeds the snapshot to the plugin host and maps the
// returned cards back into insight domain terms.
type PluginInsightSource struct {
	plugins pluginin.Usecase
}

func NewPluginInsightSource(plugins pluginin.Usecase) insightout.InsightSource {
	return &PluginInsightSource{plugins: plugins}
}

func (s *PluginInsightSource) Insights(ctx context.Context, snapshot domain.Snapshot) ([]domain.Insight, error) {
	input := plugindto.SnapshotInput{
		Streak:         snapshot.Streak,
		HasHistory:     snapshot.HasHistory,
		GlobalAccuracy: snapshot.GlobalAccuracy,
		GlobalQPM:      snapshot.GlobalQPM,
	}
	for _, subject := range snapshot.Subjects {
		input.Subjects = append(input.Subjects, plugindto.SubjectStatInput(subject))
	}
	for _, location := range snapshot.Locations {
		input.Locations = append(input.Locations, plugindto.LocationStatInput(location))
	}

	generated, err := s.plugins.Generate(ctx, input)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Insight, 0, len(generated))
	for _, insight := range generated {
		out = append(out, domain.Insight{
			Category: domain.Category(insight.Category),
			Message:  insight.Message,
		})
	}
	return out, nil
}
