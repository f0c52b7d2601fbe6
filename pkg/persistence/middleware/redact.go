package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/aretw0/semtoken/pkg/ports"
)

// RedactedValue replaces the value of a masked property.
const RedactedValue = "***"

type redactMiddleware struct {
	next     ports.DraftStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks the value of every draft
// property whose key matches one of the patterns (e.g. "foaf:mbox").
// Blobs that are not JSON objects pass through untouched.
func NewRedactMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.DraftStore) ports.DraftStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactMiddleware) Save(ctx context.Context, id string, blob []byte, info domain.DraftInfo) error {
	var raw map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil || raw == nil {
		return m.next.Save(ctx, id, blob, info)
	}

	if !maskProperties(raw, m.patterns) {
		return m.next.Save(ctx, id, blob, info)
	}

	masked, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal redacted draft: %w", err)
	}
	return m.next.Save(ctx, id, masked, info)
}

func (m *redactMiddleware) Load(ctx context.Context, id string) ([]byte, error) {
	return m.next.Load(ctx, id)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactMiddleware) List(ctx context.Context) ([]domain.DraftInfo, error) {
	return m.next.List(ctx)
}

// maskProperties reports whether any value was replaced.
func maskProperties(raw map[string]any, patterns []*regexp.Regexp) bool {
	props, _ := raw[domain.FieldProperties].([]any)
	changed := false
	for _, item := range props {
		p, ok := item.(map[string]any)
		if !ok {
			continue
		}
		key, _ := p["key"].(string)
		for _, re := range patterns {
			if re.MatchString(key) {
				if p["value"] != RedactedValue {
					p["value"] = RedactedValue
					changed = true
				}
				break
			}
		}
	}
	return changed
}
