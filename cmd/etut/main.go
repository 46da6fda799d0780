package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"etut/internal/bootstrap"
	plugindto "etut/internal/modules/plugin/dto"
	sessiondto "etut/internal/modules/session/dto"
	statsdto "etut/internal/modules/stats/dto"
	"etut/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string
	var devMode bool

	root := &cobra.Command{
		Use:           "etut",
		Short:         "YKS study tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", ".", "data directory")
	root.PersistentFlags().BoolVar(&devMode, "dev", false, "enable demo data sources")

	opts := &appOptions{dataPath: &dataPath, devMode: &devMode}

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newBookCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newMockCmd(opts))
	root.AddCommand(newStreakCmd(opts))
	root.AddCommand(newInsightCmd(opts))
	root.AddCommand(newCatalogCmd(opts))
	root.AddCommand(newPluginCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	return root
}

type appOptions struct {
	dataPath *string
	devMode  *bool
}

func (o *appOptions) load() (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(*o.dataPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	if *o.devMode {
		cfg.DevMode = true
	}
	app, err := bootstrap.New(cfg)
	return app, cfg, err
}

func newTUICmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the etut terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cfg, err := opts.load()
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(cfg, app)
		},
	}
}

func newSessionCmd(opts *appOptions) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Record and manage study sessions"}

	var (
		sessionType string
		subject     string
		topic       string
		location    string
		bookRef     string
		examType    string
		publisher   string
		questions   int
		correct     int
		wrong       int
		empty       int
		durationMin int
		mock        bool
		pending     bool
		date        string
		notes       []string
		topicStats  []string
	)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a completed session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			stats, err := parseTopicStats(topicStats)
			if err != nil {
				return err
			}
			input := sessiondto.AddInput{
				Type:            sessionType,
				IsMockTest:      mock,
				ExamType:        examType,
				Publisher:       publisher,
				IsPendingResult: pending,
				Subject:         subject,
				Topic:           topic,
				Location:        location,
				Questions:       questions,
				Correct:         correct,
				Wrong:           wrong,
				Empty:           empty,
				DurationSeconds: durationMin * 60,
				TopicStats:      stats,
				BookID:          bookRef,
				Notes:           notes,
			}
			if date != "" {
				when, err := time.ParseInLocation(time.DateOnly, date, time.Local)
				if err != nil {
					return fmt.Errorf("parse --date: %w", err)
				}
				input.CustomDate = when
			}
			out, err := app.SessionCLI.Add(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s: %s %d soru, %.2f net\n", out.ID, out.Subject, out.Questions, out.Net)
			return nil
		},
	}
	addCmd.Flags().StringVar(&sessionType, "type", "question", "session type: question|lecture")
	addCmd.Flags().StringVar(&subject, "subject", "", "subject name")
	addCmd.Flags().StringVar(&topic, "topic", "", "topic name")
	addCmd.Flags().StringVar(&location, "location", "", "study location")
	addCmd.Flags().StringVar(&bookRef, "book", "", "book ref (user:<id> or seed:<id>)")
	addCmd.Flags().StringVar(&examType, "exam", "", "exam type: TYT|AYT|YDT")
	addCmd.Flags().StringVar(&publisher, "publisher", "", "mock exam publisher")
	addCmd.Flags().IntVar(&questions, "questions", 0, "question count")
	addCmd.Flags().IntVar(&correct, "correct", 0, "correct count")
	addCmd.Flags().IntVar(&wrong, "wrong", 0, "wrong count")
	addCmd.Flags().IntVar(&empty, "empty", 0, "empty count")
	addCmd.Flags().IntVar(&durationMin, "duration", 0, "duration in minutes")
	addCmd.Flags().BoolVar(&mock, "mock", false, "record as a mock exam")
	addCmd.Flags().BoolVar(&pending, "pending", false, "results not announced yet")
	addCmd.Flags().StringVar(&date, "date", "", "back-date the session (YYYY-MM-DD)")
	addCmd.Flags().StringArrayVar(&notes, "note", nil, "session note (repeatable)")
	addCmd.Flags().StringArrayVar(&topicStats, "topic-stat", nil, "per-topic stats: label:questions:correct:wrong:empty (repeatable)")

	var updateID string
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Correct a session or resolve a pending mock result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			stats, err := parseTopicStats(topicStats)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Update(context.Background(), sessiondto.UpdateInput{
				ID:              updateID,
				Questions:       questions,
				Correct:         correct,
				Wrong:           wrong,
				Empty:           empty,
				IsPendingResult: pending,
				Notes:           notes,
				TopicStats:      stats,
			})
			if err != nil {
				return err
			}
			if out.ID == "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no session with id %s\n", updateID)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s: %.2f net\n", out.ID, out.Net)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&updateID, "id", "", "session id")
	updateCmd.Flags().IntVar(&questions, "questions", 0, "question count (0 keeps stored)")
	updateCmd.Flags().IntVar(&correct, "correct", 0, "correct count")
	updateCmd.Flags().IntVar(&wrong, "wrong", 0, "wrong count")
	updateCmd.Flags().IntVar(&empty, "empty", 0, "empty count")
	updateCmd.Flags().BoolVar(&pending, "pending", false, "keep marked as pending")
	updateCmd.Flags().StringArrayVar(&notes, "note", nil, "replace notes (repeatable)")
	updateCmd.Flags().StringArrayVar(&topicStats, "topic-stat", nil, "replace per-topic stats (repeatable)")
	_ = updateCmd.MarkFlagRequired("id")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session and revert its book effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			if err := app.SessionCLI.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			records, err := app.SessionCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, r := range records {
				marker := " "
				if r.IsPendingResult {
					marker = "?"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s%s  %s  %-12s %3d soru  %.2f net\n",
					r.ID, marker, r.CompletedAt.Format(time.DateOnly), r.Subject, r.Questions, r.Net)
			}
			return nil
		},
	}

	var dayDate, dayType string
	dayCmd := &cobra.Command{
		Use:   "day",
		Short: "Show one day's totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			when := time.Now()
			if dayDate != "" {
				when, err = time.ParseInLocation(time.DateOnly, dayDate, time.Local)
				if err != nil {
					return fmt.Errorf("parse --date: %w", err)
				}
			}
			stats, err := app.SessionCLI.DailyStats(context.Background(), when, dayType)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d soru (%dD %dY %dB) %.2f net, %d oturum\n",
				when.Format(time.DateOnly), stats.Val, stats.Correct, stats.Wrong, stats.Empty, stats.Net, stats.SessionCount)
			for _, subject := range stats.Subjects {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %d soru\n", subject.Subject, subject.Questions)
			}
			return nil
		},
	}
	dayCmd.Flags().StringVar(&dayDate, "date", "", "day to show (YYYY-MM-DD, default today)")
	dayCmd.Flags().StringVar(&dayType, "type", "", "filter by session type")

	var planDate, planTime, planSubject, planTopic string
	var planDuration int
	planAddCmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a future session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.AddPlanned(context.Background(), sessiondto.PlanInput{
				Date:            planDate,
				Time:            planTime,
				Subject:         planSubject,
				Topic:           planTopic,
				DurationMinutes: planDuration,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "planned %s %s %s\n", out.Date, out.Time, out.Subject)
			return nil
		},
	}
	planAddCmd.Flags().StringVar(&planDate, "date", "", "planned day (YYYY-MM-DD)")
	planAddCmd.Flags().StringVar(&planTime, "time", "", "planned time (HH:MM)")
	planAddCmd.Flags().StringVar(&planSubject, "subject", "", "subject")
	planAddCmd.Flags().StringVar(&planTopic, "topic", "", "topic")
	planAddCmd.Flags().IntVar(&planDuration, "duration", 0, "planned duration in minutes")
	_ = planAddCmd.MarkFlagRequired("date")

	plansCmd := &cobra.Command{
		Use:   "plans",
		Short: "List planned sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			plans, err := app.SessionCLI.ListPlanned(context.Background())
			if err != nil {
				return err
			}
			for _, plan := range plans {
				marker := " "
				if plan.IsPast {
					marker = "!"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s  %-14s %s (%d dk)\n",
					plan.Date, marker, plan.Time, plan.Subject, plan.Topic, plan.DurationMinutes)
			}
			return nil
		},
	}

	session.AddCommand(addCmd, updateCmd, deleteCmd, listCmd, dayCmd, planAddCmd, plansCmd)
	return session
}

func newBookCmd(opts *appOptions) *cobra.Command {
	book := &cobra.Command{Use: "book", Short: "Manage the question-bank shelf"}

	var title, category string
	var examTypes, topics []string
	var total int
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the shelf",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			var totalPtr *int
			if cmd.Flags().Changed("total") {
				totalPtr = &total
			}
			out, err := app.LibraryCLI.AddBook(context.Background(), title, category, examTypes, totalPtr, topics)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", out.Title, out.Ref)
			return nil
		},
	}
	addCmd.Flags().StringVar(&title, "title", "", "book title")
	addCmd.Flags().StringVar(&category, "category", "", "subject category")
	addCmd.Flags().StringSliceVar(&examTypes, "exam", nil, "exam types")
	addCmd.Flags().IntVar(&total, "total", 0, "total question count (0 = unknown; omit for estimate)")
	addCmd.Flags().StringSliceVar(&topics, "topics", nil, "initial topics")
	_ = addCmd.MarkFlagRequired("title")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List shelf books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			books, err := app.LibraryCLI.ListBooks(context.Background())
			if err != nil {
				return err
			}
			for _, b := range books {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-32s %%%-3d %5d soru  %%%d isabet\n",
					b.Ref, b.Title, b.Progress, b.SolvedQuestions, b.Accuracy)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <ref>",
		Short: "Show one book with its topics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			detail, err := app.LibraryCLI.GetBook(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", detail.Title, detail.Ref)
			if detail.TotalQuestions != nil && *detail.TotalQuestions > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %d/%d soru, %%%d\n", detail.SolvedQuestions, *detail.TotalQuestions, detail.Progress)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %d soru, %%%d\n", detail.SolvedQuestions, detail.Progress)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  isabet %%%d, hız %.2f soru/dk\n", detail.Accuracy, detail.QPM)
			for _, topic := range detail.Topics {
				if topic.IsDeleted {
					continue
				}
				marker := " "
				if topic.IsFinished {
					marker = "x"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %-26s %%%d\n", marker, topic.Label, topic.Progress)
			}
			return nil
		},
	}

	var solveTopic string
	var solveCount int
	solveCmd := &cobra.Command{
		Use:   "solve <ref>",
		Short: "Record questions solved outside tracked sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			detail, err := app.LibraryCLI.RecordExternalSolves(context.Background(), args[0], solveTopic, solveCount)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s now %%%d\n", detail.Title, detail.Progress)
			return nil
		},
	}
	solveCmd.Flags().StringVar(&solveTopic, "topic", "", "topic label")
	solveCmd.Flags().IntVar(&solveCount, "count", 0, "questions solved")
	_ = solveCmd.MarkFlagRequired("topic")
	_ = solveCmd.MarkFlagRequired("count")

	var finishTopic string
	finishCmd := &cobra.Command{
		Use:   "finish-topic <ref>",
		Short: "Mark a book topic as finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			return app.LibraryCLI.MarkTopicFinished(context.Background(), args[0], finishTopic)
		},
	}
	finishCmd.Flags().StringVar(&finishTopic, "topic", "", "topic label")
	_ = finishCmd.MarkFlagRequired("topic")

	var removeTopic string
	removeCmd := &cobra.Command{
		Use:   "remove-topic <ref>",
		Short: "Remove a topic from progress math",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			return app.LibraryCLI.RemoveTopic(context.Background(), args[0], removeTopic)
		},
	}
	removeCmd.Flags().StringVar(&removeTopic, "topic", "", "topic label")
	_ = removeCmd.MarkFlagRequired("topic")

	book.AddCommand(addCmd, listCmd, showCmd, solveCmd, finishCmd, removeCmd)
	return book
}

func newStatsCmd(opts *appOptions) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Aggregate study statistics"}

	var fromFlag, toFlag, view, subject, topic string
	periodCmd := &cobra.Command{
		Use:   "period",
		Short: "Summarize a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			input, err := periodInput(fromFlag, toFlag, view)
			if err != nil {
				return err
			}
			var summary statsdto.SummaryOutput
			switch {
			case topic != "":
				summary, err = app.StatsCLI.TopicSummary(context.Background(), input, subject, topic)
			case subject != "":
				summary, err = app.StatsCLI.SubjectSummary(context.Background(), input, subject)
			default:
				summary, err = app.StatsCLI.PeriodSummary(context.Background(), input)
			}
			if err != nil {
				return err
			}
			printSummary(cmd, summary)
			return nil
		},
	}
	periodCmd.Flags().StringVar(&fromFlag, "from", "", "range start (YYYY-MM-DD, default 7 days ago)")
	periodCmd.Flags().StringVar(&toFlag, "to", "", "range end (YYYY-MM-DD, default today)")
	periodCmd.Flags().StringVar(&view, "view", "", "view: question|lecture|mock")
	periodCmd.Flags().StringVar(&subject, "subject", "", "drill into one subject")
	periodCmd.Flags().StringVar(&topic, "topic", "", "drill into one topic (requires --subject)")

	var dayDate, dayView string
	dayCmd := &cobra.Command{
		Use:   "day",
		Short: "Show one day's aggregate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			date := time.Now()
			if dayDate != "" {
				date, err = time.ParseInLocation(time.DateOnly, dayDate, time.Local)
				if err != nil {
					return fmt.Errorf("parse --date: %w", err)
				}
			}
			day, err := app.StatsCLI.DayDetail(context.Background(), date, dayView)
			if err != nil {
				return err
			}
			label := day.Date
			if day.Synthetic {
				label += " (örnek veri)"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d soru, %.2f net, %d dk\n",
				label, day.Val, day.Net, day.DurationSeconds/60)
			for _, share := range day.Subjects {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %4d soru\n", share.Subject, share.Questions)
			}
			return nil
		},
	}
	dayCmd.Flags().StringVar(&dayDate, "date", "", "day to show (YYYY-MM-DD, default today)")
	dayCmd.Flags().StringVar(&dayView, "view", "", "view: question|lecture|mock")

	stats.AddCommand(periodCmd, dayCmd)
	return stats
}

func newMockCmd(opts *appOptions) *cobra.Command {
	var fromFlag, toFlag, examType string
	mock := &cobra.Command{
		Use:   "mock",
		Short: "Summarize mock exams",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			input, err := periodInput(fromFlag, toFlag, "")
			if err != nil {
				return err
			}
			summary, err := app.StatsCLI.MockSummary(context.Background(), input.From, input.To, examType)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d deneme (%d açıklandı, %d bekliyor)\n",
				summary.Total, summary.Announced, summary.Pending)
			if summary.Announced > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ortalama %.2f net, en iyi %.2f, son %.2f\n",
					summary.AvgNet, summary.MaxNet, summary.LastNet)
				for _, sn := range summary.Subjects {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %.2f net\n", sn.Subject, sn.AvgNet)
				}
			}
			return nil
		},
	}
	mock.Flags().StringVar(&fromFlag, "from", "", "range start (YYYY-MM-DD, default 7 days ago)")
	mock.Flags().StringVar(&toFlag, "to", "", "range end (YYYY-MM-DD, default today)")
	mock.Flags().StringVar(&examType, "exam", "", "filter by exam type")
	return mock
}

func newStreakCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the current study streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			streak, err := app.InsightCLI.Streak(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d gün\n", streak)
			return nil
		},
	}
}

func newInsightCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insight",
		Short: "Generate study insights",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			insights, err := app.InsightCLI.Insights(context.Background())
			if err != nil {
				return err
			}
			for _, insight := range insights {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", insight.Category, insight.Message)
			}
			return nil
		},
	}
}

func newCatalogCmd(opts *appOptions) *cobra.Command {
	catalog := &cobra.Command{Use: "catalog", Short: "Browse the subject/topic catalog"}

	var examType string
	subjectsCmd := &cobra.Command{
		Use:   "subjects",
		Short: "List subjects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			subjects, err := app.CatalogCLI.Subjects(context.Background(), examType)
			if err != nil {
				return err
			}
			for _, s := range subjects {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s (%d konu)\n",
					s.Name, strings.Join(s.ExamTypes, ","), len(s.Topics))
			}
			return nil
		},
	}
	subjectsCmd.Flags().StringVar(&examType, "exam", "", "filter by exam type")

	topicsCmd := &cobra.Command{
		Use:   "topics <subject>",
		Short: "List a subject's topics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			topics, err := app.CatalogCLI.Topics(context.Background(), examType, args[0])
			if err != nil {
				return err
			}
			for _, topic := range topics {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), topic)
			}
			return nil
		},
	}
	topicsCmd.Flags().StringVar(&examType, "exam", "", "filter by exam type")

	var addSubject string
	addTopicCmd := &cobra.Command{
		Use:   "add-topic <topic>",
		Short: "Add a custom topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			return app.CatalogCLI.AddTopic(context.Background(), examType, addSubject, args[0])
		},
	}
	addTopicCmd.Flags().StringVar(&examType, "exam", "", "exam type")
	addTopicCmd.Flags().StringVar(&addSubject, "subject", "", "subject name")
	_ = addTopicCmd.MarkFlagRequired("subject")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search topics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			hits, err := app.CatalogCLI.Search(context.Background(), args[0], 25)
			if err != nil {
				return err
			}
			for _, hit := range hits {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-4s %-14s %s\n", hit.ExamType, hit.Subject, hit.Topic)
			}
			return nil
		},
	}

	catalog.AddCommand(subjectsCmd, topicsCmd, addTopicCmd, searchCmd)
	return catalog
}

func newPluginCmd(opts *appOptions) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Manage insight plugins"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			plugins, err := app.PluginCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, p := range plugins {
				state := "disabled"
				if p.Enabled {
					state = "enabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-8s %-9s %s\n",
					p.Name, p.Version, state, strings.Join(p.Capabilities, ","))
			}
			return nil
		},
	}

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Verify plugin binaries and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			results, err := app.PluginCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			for _, r := range results {
				status := "ok"
				if r.Error != "" {
					status = r.Error
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-16s binary=%t checksum=%t lifecycle=%t  %s\n",
					r.Name, r.BinaryReachable, r.ChecksumValid, r.LifecycleOK, status)
			}
			return nil
		},
	}

	var snapshotPath string
	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "Feed a snapshot to insight plugins",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			snapshot, err := readSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			insights, err := app.PluginCLI.Generate(context.Background(), snapshot)
			if err != nil {
				return err
			}
			for _, insight := range insights {
				if len(args) == 1 && insight.Plugin != args[0] {
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %-8s %s\n", insight.Plugin, insight.Category, insight.Message)
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "snapshot JSON file (default stdin)")

	plugin.AddCommand(listCmd, doctorCmd, runCmd)
	return plugin
}

// readSnapshot decodes the same JSON shape the plugins receive over the
// wire, from a file or stdin.
func readSnapshot(path string) (plugindto.SnapshotInput, error) {
	var raw struct {
		Streak         int     `json:"streak"`
		HasHistory     bool    `json:"hasHistory"`
		GlobalAccuracy float64 `json:"globalAccuracy"`
		GlobalQPM      float64 `json:"globalQpm"`
		Subjects       []struct {
			Name      string  `json:"name"`
			Questions int     `json:"questions"`
			Accuracy  float64 `json:"accuracy"`
		} `json:"subjects"`
		Locations []struct {
			Name      string  `json:"name"`
			Questions int     `json:"questions"`
			QPM       float64 `json:"qpm"`
		} `json:"locations"`
	}

	reader := io.Reader(os.Stdin)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return plugindto.SnapshotInput{}, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		reader = f
	}
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		return plugindto.SnapshotInput{}, fmt.Errorf("decode snapshot: %w", err)
	}

	snapshot := plugindto.SnapshotInput{
		Streak:         raw.Streak,
		HasHistory:     raw.HasHistory,
		GlobalAccuracy: raw.GlobalAccuracy,
		GlobalQPM:      raw.GlobalQPM,
	}
	for _, s := range raw.Subjects {
		snapshot.Subjects = append(snapshot.Subjects, plugindto.SubjectStatInput{Name: s.Name, Questions: s.Questions, Accuracy: s.Accuracy})
	}
	for _, l := range raw.Locations {
		snapshot.Locations = append(snapshot.Locations, plugindto.LocationStatInput{Name: l.Name, Questions: l.Questions, QPM: l.QPM})
	}
	return snapshot, nil
}

func newExportCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export session notes as markdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			paths, err := app.SessionCLI.ExportNotes(context.Background())
			if err != nil {
				return err
			}
			for _, path := range paths {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
}

func newReindexCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the derived sqlite indexes from canonical files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := opts.load()
			if err != nil {
				return err
			}
			ctx := context.Background()
			if err := app.SessionCLI.Reindex(ctx); err != nil {
				return err
			}
			if err := app.LibraryCLI.Reindex(ctx); err != nil {
				return err
			}
			if err := app.CatalogCLI.Reindex(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindexed")
			return nil
		},
	}
}

func periodInput(from, to, view string) (statsdto.PeriodInput, error) {
	now := time.Now()
	input := statsdto.PeriodInput{
		From: now.AddDate(0, 0, -6),
		To:   now,
		View: view,
	}
	if from != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, from, time.Local)
		if err != nil {
			return statsdto.PeriodInput{}, fmt.Errorf("parse --from: %w", err)
		}
		input.From = parsed
	}
	if to != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, to, time.Local)
		if err != nil {
			return statsdto.PeriodInput{}, fmt.Errorf("parse --to: %w", err)
		}
		input.To = parsed
	}
	return input, nil
}

func printSummary(cmd *cobra.Command, summary statsdto.SummaryOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d soru (%dD %dY %dB), %.2f net\n",
		summary.Questions, summary.Correct, summary.Wrong, summary.Empty, summary.Net)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "isabet %%%.1f, hız %.2f soru/dk, %d oturum\n",
		summary.Accuracy, summary.DBS, summary.SessionCount)
	for _, subject := range summary.Subjects {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %d soru\n", subject.Subject, subject.Questions)
	}
}

// parseTopicStats parses repeated label:questions:correct:wrong:empty flags.
func parseTopicStats(raw []string) ([]sessiondto.TopicStatInput, error) {
	out := make([]sessiondto.TopicStatInput, 0, len(raw))
	for _, entry := range raw {
		parts := strings.Split(entry, ":")
		if len(parts) != 5 {
			return nil, fmt.Errorf("topic-stat %q: want label:questions:correct:wrong:empty", entry)
		}
		nums := make([]int, 4)
		for i, part := range parts[1:] {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("topic-stat %q: %w", entry, err)
			}
			nums[i] = n
		}
		out = append(out, sessiondto.TopicStatInput{
			Label:     parts[0],
			Questions: nums[0],
			Correct:   nums[1],
			Wrong:     nums[2],
			Empty:     nums[3],
		})
	}
	return out, nil
}
