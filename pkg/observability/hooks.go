package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/semtoken/pkg/domain"
)

// LogHooks logs every lifecycle event at debug level, failures at warn.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRender: func(ctx context.Context, e *domain.RenderEvent) {
			logger.DebugContext(ctx, "render", "token", e.TokenName, "bytes", e.Bytes)
		},
		OnDraft: func(ctx context.Context, e *domain.DraftEvent) {
			level := slog.LevelDebug
			if e.IsError {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, string(e.Type), "draft_id", e.DraftID, "bytes", e.Bytes, "is_error", e.IsError)
		},
		OnPublish: func(ctx context.Context, e *domain.PublishEvent) {
			level := slog.LevelDebug
			if e.IsError {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "publish", "address", e.Address, "bytes", e.Bytes, "duration", e.Duration, "is_error", e.IsError)
		},
	}
}

// MergeHooks fans each event out to all hook sets, in order. Nil callbacks are skipped.
func MergeHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var merged domain.LifecycleHooks
	for _, h := range sets {
		if h.OnRender != nil {
			prev, next := merged.OnRender, h.OnRender
			merged.OnRender = func(ctx context.Context, e *domain.RenderEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnDraft != nil {
			prev, next := merged.OnDraft, h.OnDraft
			merged.OnDraft = func(ctx context.Context, e *domain.DraftEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnPublish != nil {
			prev, next := merged.OnPublish, h.OnPublish
			merged.OnPublish = func(ctx context.Context, e *domain.PublishEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
	}
	return merged
}
