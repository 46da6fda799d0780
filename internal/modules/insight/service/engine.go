package service

import (
	"fmt"
	"time"

	"etut/internal/modules/insight/domain"
)

const (
	streakMilestone      = 3
	minSubjectQuestions  = 20
	strongAccuracy       = 85.0
	weakAccuracy         = 50.0
	minLocationQuestions = 20
	locationRatio        = 0.7
)

// Engine evaluates the insight rules. It is stateless; both methods are
// pure functions of their inputs.
type Engine struct{}

func NewEngine() Engine {
	return Engine{}
}

// Streak counts consecutive study days ending today. A single day of grace
// applies at the head: an inactive today falls back to yesterday before the
// walk starts, so the evening of a rest day still shows yesterday's run.
// Excused days extend the streak like active ones.
func (Engine) Streak(today time.Time, lookup func(time.Time) (domain.DayInfo, bool)) int {
	cursor := today
	if info, ok := lookup(cursor); !ok || !(info.Active || info.Excused) {
		cursor = cursor.AddDate(0, 0, -1)
	}
	streak := 0
	for {
		info, ok := lookup(cursor)
		if !ok || !(info.Active || info.Excused) {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// Generate runs every rule and returns the matches, positives first.
func (Engine) Generate(input domain.Snapshot) []domain.Insight {
	var insights []domain.Insight

	if input.Streak >= streakMilestone {
		insights = append(insights, domain.Insight{
			Category: domain.CategoryPositive,
			Message:  fmt.Sprintf("%d gündür aralıksız çalışıyorsun, böyle devam!", input.Streak),
		})
	}
	for _, s := range input.Subjects {
		if s.Questions >= minSubjectQuestions && s.Accuracy > strongAccuracy {
			insights = append(insights, domain.Insight{
				Category: domain.CategoryPositive,
				Message:  fmt.Sprintf("%s sorularında isabetin %%%.0f, bu ders artık güçlü yanın.", s.Name, s.Accuracy),
			})
		}
	}

	for _, l := range input.Locations {
		if l.Questions >= minLocationQuestions && input.GlobalQPM > 0 && l.QPM < input.GlobalQPM*locationRatio {
			insights = append(insights, domain.Insight{
				Category: domain.CategoryNeutral,
				Message:  fmt.Sprintf("%s ortamında soru çözme hızın genel temponun belirgin altında, çalışma yerini gözden geçir.", l.Name),
			})
		}
	}

	if input.Streak == 0 && input.HasHistory {
		insights = append(insights, domain.Insight{
			Category: domain.CategoryNegative,
			Message:  "Seri koptu. Bugün kısa bir oturum bile zinciri yeniden başlatır.",
		})
	}
	for _, s := range input.Subjects {
		if s.Questions >= minSubjectQuestions && s.Accuracy < weakAccuracy {
			insights = append(insights, domain.Insight{
				Category: domain.CategoryNegative,
				Message:  fmt.Sprintf("%s isabetin %%%.0f seviyesinde, konu tekrarına öncelik ver.", s.Name, s.Accuracy),
			})
		}
	}

	return insights
}
