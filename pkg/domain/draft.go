package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// DraftInfo describes a stored draft for listings.
type DraftInfo struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SortDrafts orders drafts most recently updated first, then by ID.
func SortDrafts(drafts []DraftInfo) {
	sort.SliceStable(drafts, func(i, j int) bool {
		if !drafts[i].UpdatedAt.Equal(drafts[j].UpdatedAt) {
			return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
		}
		return drafts[i].ID < drafts[j].ID
	})
}

// DraftID derives the storage key of a draft from its token name.
func DraftID(tokenName string) (string, error) {
	name := strings.TrimSpace(tokenName)
	if name == "" {
		return "", ErrDraftNameRequired
	}
	return url.PathEscape(name), nil
}

// EncodeDraft serializes d into the draft blob format.
// Nil lists are written as empty arrays so that every documented field is present.
func EncodeDraft(d TokenDescriptor) ([]byte, error) {
	out := d.Clone()
	if out.Properties == nil {
		out.Properties = []Property{}
	}
	if out.Shapes == nil {
		out.Shapes = []Shape{}
	}
	for i := range out.Shapes {
		if out.Shapes[i].Constraints == nil {
			out.Shapes[i].Constraints = []Constraint{}
		}
	}
	if out.SelectedOntologies == nil {
		out.SelectedOntologies = []string{}
	}
	if out.Prefixes == nil {
		out.Prefixes = []PrefixBinding{}
	}
	if out.SameAs == nil {
		out.SameAs = []EquivalenceRelation{}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}
	return data, nil
}

// DecodeDraft parses a draft blob, tolerating missing fields, loosely typed
// values (numbers sent as strings and vice versa) and legacy field names.
func DecodeDraft(data []byte) (TokenDescriptor, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return TokenDescriptor{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return DecodeDraftMap(raw)
}

// DecodeDraftMap decodes an already parsed draft object.
func DecodeDraftMap(raw map[string]any) (TokenDescriptor, error) {
	normalizeLegacyFields(raw)
	normalizeDecimals(raw)

	var d TokenDescriptor
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &d,
	})
	if err != nil {
		return TokenDescriptor{}, fmt.Errorf("failed to build draft decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return TokenDescriptor{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	applyDraftDefaults(&d, raw)
	return d, nil
}

// normalizeDecimals drops a tokenDecimals value that is not a number, so the
// default applies instead of the whole draft failing to load.
func normalizeDecimals(raw map[string]any) {
	switch v := raw[FieldTokenDecimals].(type) {
	case nil, bool, int, int64, uint64, float64:
	case string:
		if _, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
			delete(raw, FieldTokenDecimals)
		} else {
			raw[FieldTokenDecimals] = strings.TrimSpace(v)
		}
	default:
		delete(raw, FieldTokenDecimals)
	}
}

func normalizeLegacyFields(raw map[string]any) {
	if _, ok := raw[FieldSameAs]; !ok {
		if legacy, ok := raw[legacyFieldSameAs]; ok {
			raw[FieldSameAs] = legacy
		}
	}
	delete(raw, legacyFieldSameAs)

	props, _ := raw[FieldProperties].([]any)
	for _, item := range props {
		p, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := p["kind"]; !ok {
			if legacy, ok := p[legacyFieldPropertyKind]; ok {
				p["kind"] = legacy
			}
		}
		delete(p, legacyFieldPropertyKind)
	}
}

func applyDraftDefaults(d *TokenDescriptor, raw map[string]any) {
	if strings.TrimSpace(d.Name) == "" {
		d.Name = DefaultTokenName
	}
	if strings.TrimSpace(d.Ticker) == "" {
		d.Ticker = DefaultTokenTicker
	}
	if v, ok := raw[FieldTokenDecimals]; !ok || v == nil || v == "" {
		d.Decimals = DefaultTokenDecimals
	}
	if _, ok := raw[FieldSelectedOntologies]; !ok {
		d.SelectedOntologies = DefaultOntologies()
	}

	if d.Properties == nil {
		d.Properties = []Property{}
	}
	for i := range d.Properties {
		d.Properties[i].Kind = d.Properties[i].Kind.Normalize()
	}
	if d.Shapes == nil {
		d.Shapes = []Shape{}
	}
	for i := range d.Shapes {
		if d.Shapes[i].Constraints == nil {
			d.Shapes[i].Constraints = []Constraint{}
		}
	}
	if d.SelectedOntologies == nil {
		d.SelectedOntologies = []string{}
	}
	if d.Prefixes == nil {
		d.Prefixes = []PrefixBinding{}
	}
	if d.SameAs == nil {
		d.SameAs = []EquivalenceRelation{}
	}
}
