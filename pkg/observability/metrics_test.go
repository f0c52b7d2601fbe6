package observability_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/aretw0/semtoken/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnRender(ctx, &domain.RenderEvent{Bytes: 300})
	hooks.OnRender(ctx, &domain.RenderEvent{Bytes: 500})
	hooks.OnDraft(ctx, &domain.DraftEvent{EventBase: domain.EventBase{Type: domain.EventDraftSaved}})
	hooks.OnDraft(ctx, &domain.DraftEvent{EventBase: domain.EventBase{Type: domain.EventDraftLoaded}, IsError: true})
	hooks.OnPublish(ctx, &domain.PublishEvent{Duration: 2 * time.Second})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Renders))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Drafts.WithLabelValues("save", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Drafts.WithLabelValues("load", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PublishDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics(nil)
	m.Hooks().OnRender(context.Background(), &domain.RenderEvent{Bytes: 10})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "semtoken_renders_total 1")
}

func TestMergeHooks(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnRender: func(context.Context, *domain.RenderEvent) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{
		OnRender:  func(context.Context, *domain.RenderEvent) { calls = append(calls, "b") },
		OnPublish: func(context.Context, *domain.PublishEvent) { calls = append(calls, "b-publish") },
	}

	merged := observability.MergeHooks(a, domain.LifecycleHooks{}, b)
	merged.OnRender(context.Background(), &domain.RenderEvent{})
	merged.OnPublish(context.Background(), &domain.PublishEvent{})

	assert.Equal(t, []string{"a", "b", "b-publish"}, calls)
	assert.Nil(t, merged.OnDraft)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	hooks := observability.LogHooks(logger)

	hooks.OnPublish(context.Background(), &domain.PublishEvent{Address: "ok-addr"})
	hooks.OnPublish(context.Background(), &domain.PublishEvent{IsError: true})

	assert.NotContains(t, buf.String(), "ok-addr")
	assert.Contains(t, buf.String(), "is_error=true")
}
