// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/survey-intake/metrics"
	"github.com/danielhkuo/survey-intake/models"
)

// Source names, used in logs, metrics and unavailable_sources.
const (
	SourceUsers             = "users"
	SourceCreators          = "creators"
	SourceNotInterested     = "not_interested"
	SourceFeedback          = "feedback"
	SourceUserAnalytics     = "user_analytics"
	SourceFeedbackAnalytics = "feedback_analytics"
)

// UserSource reads registrations.
type UserSource interface {
	GetAllUsers(ctx context.Context) ([]models.UserRecord, error)
	GetAllCreators(ctx context.Context) ([]models.UserRecord, error)
	GetAllNotInterested(ctx context.Context) ([]models.NotInterestedRecord, error)
	GetUserAnalytics(ctx context.Context) (models.UserAnalytics, error)
}

// FeedbackSource reads feedback. Analytics never fail.
type FeedbackSource interface {
	GetAllFeedback(ctx context.Context) ([]models.FeedbackRecord, error)
	GetFeedbackAnalytics(ctx context.Context) models.FeedbackAnalytics
}

// Result is one source's outcome: its value, or the empty default and
// the error that replaced it.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool { return r.Err == nil }

// fetch runs one source in isolation. Errors and panics both become a
// failed Result carrying empty.
func fetch[T any](ctx context.Context, source string, empty T, get func(context.Context) (T, error)) (res Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			res = fail(source, empty, fmt.Errorf("panic: %v", p))
		}
	}()

	v, err := get(ctx)
	if err != nil {
		return fail(source, empty, err)
	}
	return Result[T]{Value: v}
}

func fail[T any](source string, empty T, err error) Result[T] {
	slog.Error("export source failed", "source", source, "error", err)
	metrics.RecordExportSourceFailure(source)
	return Result[T]{Value: empty, Err: err}
}

type sourceSet uint8

const (
	needUsers sourceSet = 1 << iota
	needCreators
	needNotInterested
	needFeedback
	needUserAnalytics
	needFeedbackAnalytics

	needAll = needUsers | needCreators | needNotInterested | needFeedback | needUserAnalytics | needFeedbackAnalytics
)

var scopeSources = map[Scope]sourceSet{
	ScopeAll:           needAll,
	ScopeUsers:         needUsers | needUserAnalytics,
	ScopeCreators:      needCreators,
	ScopeFeedback:      needFeedback | needFeedbackAnalytics,
	ScopeNotInterested: needNotInterested,
}

// collected holds every requested source; unrequested ones stay zero.
type collected struct {
	users             Result[[]models.UserRecord]
	creators          Result[[]models.UserRecord]
	notInterested     Result[[]models.NotInterestedRecord]
	feedback          Result[[]models.FeedbackRecord]
	userAnalytics     Result[models.UserAnalytics]
	feedbackAnalytics Result[models.FeedbackAnalytics]

	mu     sync.Mutex
	failed []string
}

func (c *collected) markFailed(source string) {
	c.mu.Lock()
	c.failed = append(c.failed, source)
	c.mu.Unlock()
}

// unavailable lists failed sources in a stable order.
func (c *collected) unavailable() []string {
	sort.Strings(c.failed)
	return c.failed
}

// Exporter assembles statistics and export bundles from independent sources.
type Exporter struct {
	users    UserSource
	feedback FeedbackSource
	now      func() time.Time
}

func NewExporter(users UserSource, feedback FeedbackSource) *Exporter {
	return &Exporter{
		users:    users,
		feedback: feedback,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// collect fetches the requested sources concurrently. Each source is
// isolated; a failure leaves its empty default in place.
func (e *Exporter) collect(ctx context.Context, need sourceSet) *collected {
	c := &collected{}
	var g errgroup.Group

	run := func(flag sourceSet, source string, f func() bool) {
		if need&flag == 0 {
			return
		}
		g.Go(func() error {
			if !f() {
				c.markFailed(source)
			}
			return nil
		})
	}

	run(needUsers, SourceUsers, func() bool {
		c.users = fetch(ctx, SourceUsers, []models.UserRecord{}, e.users.GetAllUsers)
		return c.users.OK()
	})
	run(needCreators, SourceCreators, func() bool {
		c.creators = fetch(ctx, SourceCreators, []models.UserRecord{}, e.users.GetAllCreators)
		return c.creators.OK()
	})
	run(needNotInterested, SourceNotInterested, func() bool {
		c.notInterested = fetch(ctx, SourceNotInterested, []models.NotInterestedRecord{}, e.users.GetAllNotInterested)
		return c.notInterested.OK()
	})
	run(needFeedback, SourceFeedback, func() bool {
		c.feedback = fetch(ctx, SourceFeedback, []models.FeedbackRecord{}, e.feedback.GetAllFeedback)
		return c.feedback.OK()
	})
	run(needUserAnalytics, SourceUserAnalytics, func() bool {
		c.userAnalytics = fetch(ctx, SourceUserAnalytics, models.EmptyUserAnalytics(), e.users.GetUserAnalytics)
		return c.userAnalytics.OK()
	})
	run(needFeedbackAnalytics, SourceFeedbackAnalytics, func() bool {
		c.feedbackAnalytics = fetch(ctx, SourceFeedbackAnalytics, models.EmptyFeedbackAnalytics(),
			func(ctx context.Context) (models.FeedbackAnalytics, error) {
				return e.feedback.GetFeedbackAnalytics(ctx), nil
			})
		return c.feedbackAnalytics.OK()
	})

	// Every goroutine returns nil
	_ = g.Wait()
	return c
}

// Statistics returns totals per entity plus both analytics.
func (e *Exporter) Statistics(ctx context.Context) Statistics {
	c := e.collect(ctx, needAll)

	return Statistics{
		TotalUsers:         len(c.users.Value),
		TotalCreators:      len(c.creators.Value),
		TotalNotInterested: len(c.notInterested.Value),
		TotalFeedback:      len(c.feedback.Value),
		UserAnalytics:      c.userAnalytics.Value,
		FeedbackAnalytics:  c.feedbackAnalytics.Value,
		UnavailableSources: c.unavailable(),
	}
}

// Export builds the bundle for scope. The export date is the current
// time; tokenExpiry is carried for display and omitted when zero.
func (e *Exporter) Export(ctx context.Context, scope Scope, tokenExpiry time.Time) (Bundle, error) {
	need, ok := scopeSources[scope]
	if !ok {
		return nil, fmt.Errorf("unknown export scope %q", scope)
	}

	c := e.collect(ctx, need)

	header := Header{ExportDate: e.now()}
	if !tokenExpiry.IsZero() {
		exp := tokenExpiry.UTC()
		header.TokenExpiresAt = &exp
	}
	header.UnavailableSources = c.unavailable()

	scoped := func(dataType string, total int) (Header, ScopedSummary) {
		h := header
		h.DataType = dataType
		return h, ScopedSummary{Total: total, ExportTimestamp: header.ExportDate}
	}

	switch scope {
	case ScopeUsers:
		h, summary := scoped("user_data", len(c.users.Value))
		return UserDataBundle{Header: h, Users: c.users.Value, Analytics: c.userAnalytics.Value, Summary: summary}, nil
	case ScopeCreators:
		h, summary := scoped("creator_data", len(c.creators.Value))
		return CreatorDataBundle{Header: h, Creators: c.creators.Value, Summary: summary}, nil
	case ScopeFeedback:
		h, summary := scoped("feedback_data", len(c.feedback.Value))
		return FeedbackDataBundle{Header: h, Feedback: c.feedback.Value, Analytics: c.feedbackAnalytics.Value, Summary: summary}, nil
	case ScopeNotInterested:
		h, summary := scoped("not_interested_data", len(c.notInterested.Value))
		return NotInterestedDataBundle{Header: h, NotInterested: c.notInterested.Value, Summary: summary}, nil
	default:
		return AllDataBundle{
			Header:        header,
			Users:         c.users.Value,
			Creators:      c.creators.Value,
			NotInterested: c.notInterested.Value,
			Feedback:      c.feedback.Value,
			Analytics: CombinedAnalytics{
				UserAnalytics:     c.userAnalytics.Value,
				FeedbackAnalytics: c.feedbackAnalytics.Value,
			},
			Summary: AllDataSummary{
				TotalUsers:         len(c.users.Value),
				TotalCreators:      len(c.creators.Value),
				TotalNotInterested: len(c.notInterested.Value),
				TotalFeedback:      len(c.feedback.Value),
			},
		}, nil
	}
}
