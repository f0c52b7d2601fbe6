package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID returns an identifier for a new list entry.
// IDs only address updates; they never reach the serialized output.
func NewID() string {
	return uuid.NewString()
}

// WithName returns a copy of d with the token name replaced.
func WithName(d TokenDescriptor, name string) TokenDescriptor {
	out := d.Clone()
	out.Name = name
	return out
}

// WithTicker returns a copy of d with the ticker replaced.
func WithTicker(d TokenDescriptor, ticker string) TokenDescriptor {
	out := d.Clone()
	out.Ticker = ticker
	return out
}

// WithDecimals returns a copy of d with the decimals replaced.
func WithDecimals(d TokenDescriptor, decimals int) TokenDescriptor {
	out := d.Clone()
	out.Decimals = decimals
	return out
}

// Properties

// AddProperty appends p, assigning an ID when it has none.
func AddProperty(d TokenDescriptor, p Property) TokenDescriptor {
	out := d.Clone()
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Kind == "" {
		p.Kind = KindLiteral
	}
	out.Properties = append(out.Properties, p)
	return out
}

// UpdateProperty sets one field ("key", "value" or "kind") of the property with the given ID.
func UpdateProperty(d TokenDescriptor, id, field, value string) (TokenDescriptor, error) {
	out := d.Clone()
	i := indexOf(out.Properties, func(p Property) bool { return p.ID == id })
	if i < 0 {
		return d, fmt.Errorf("property %q: %w", id, ErrEntryNotFound)
	}
	p := &out.Properties[i]
	switch field {
	case "key":
		p.Key = value
	case "value":
		p.Value = value
	case "kind", legacyFieldPropertyKind:
		p.Kind = TermKind(value).Normalize()
	default:
		return d, fmt.Errorf("property field %q: %w", field, ErrUnknownField)
	}
	return out, nil
}

// RemoveProperty drops the property with the given ID.
func RemoveProperty(d TokenDescriptor, id string) TokenDescriptor {
	out := d.Clone()
	out.Properties = removeWhere(out.Properties, func(p Property) bool { return p.ID == id })
	return out
}

// MoveProperty moves the property with the given ID to position to (clamped to the list bounds).
func MoveProperty(d TokenDescriptor, id string, to int) (TokenDescriptor, error) {
	out := d.Clone()
	from := indexOf(out.Properties, func(p Property) bool { return p.ID == id })
	if from < 0 {
		return d, fmt.Errorf("property %q: %w", id, ErrEntryNotFound)
	}
	to = max(0, min(to, len(out.Properties)-1))
	p := out.Properties[from]
	rest := append(out.Properties[:from:from], out.Properties[from+1:]...)
	out.Properties = append(rest[:to:to], append([]Property{p}, rest[to:]...)...)
	return out, nil
}

// Prefixes

// AddPrefix appends a namespace binding.
func AddPrefix(d TokenDescriptor, p PrefixBinding) TokenDescriptor {
	out := d.Clone()
	if p.ID == "" {
		p.ID = NewID()
	}
	out.Prefixes = append(out.Prefixes, p)
	return out
}

// UpdatePrefix sets "prefix" or "uri" of the binding with the given ID.
func UpdatePrefix(d TokenDescriptor, id, field, value string) (TokenDescriptor, error) {
	out := d.Clone()
	i := indexOf(out.Prefixes, func(p PrefixBinding) bool { return p.ID == id })
	if i < 0 {
		return d, fmt.Errorf("prefix %q: %w", id, ErrEntryNotFound)
	}
	switch field {
	case "prefix":
		out.Prefixes[i].Prefix = value
	case "uri":
		out.Prefixes[i].URI = value
	default:
		return d, fmt.Errorf("prefix field %q: %w", field, ErrUnknownField)
	}
	return out, nil
}

// RemovePrefix drops the binding with the given ID.
func RemovePrefix(d TokenDescriptor, id string) TokenDescriptor {
	out := d.Clone()
	out.Prefixes = removeWhere(out.Prefixes, func(p PrefixBinding) bool { return p.ID == id })
	return out
}

// Shapes

// AddShape appends an empty NodeShape named name (trimmed).
// It returns the new descriptor and the ID of the created shape.
func AddShape(d TokenDescriptor, name string) (TokenDescriptor, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return d, "", ErrShapeNameRequired
	}
	out := d.Clone()
	id := NewID()
	out.Shapes = append(out.Shapes, Shape{ID: id, Name: name, Constraints: []Constraint{}})
	return out, id, nil
}

// UpdateShape sets "name" or "targetClass" of the shape with the given ID.
func UpdateShape(d TokenDescriptor, id, field, value string) (TokenDescriptor, error) {
	out := d.Clone()
	i := indexOf(out.Shapes, func(s Shape) bool { return s.ID == id })
	if i < 0 {
		return d, fmt.Errorf("shape %q: %w", id, ErrEntryNotFound)
	}
	switch field {
	case "name":
		out.Shapes[i].Name = value
	case "targetClass":
		out.Shapes[i].TargetClass = value
	default:
		return d, fmt.Errorf("shape field %q: %w", field, ErrUnknownField)
	}
	return out, nil
}

// RemoveShape drops the shape with the given ID together with its constraints.
func RemoveShape(d TokenDescriptor, id string) TokenDescriptor {
	out := d.Clone()
	out.Shapes = removeWhere(out.Shapes, func(s Shape) bool { return s.ID == id })
	return out
}

// AddConstraint appends c to the shape with the given ID.
func AddConstraint(d TokenDescriptor, shapeID string, c Constraint) (TokenDescriptor, error) {
	out := d.Clone()
	i := indexOf(out.Shapes, func(s Shape) bool { return s.ID == shapeID })
	if i < 0 {
		return d, fmt.Errorf("shape %q: %w", shapeID, ErrEntryNotFound)
	}
	if c.ID == "" {
		c.ID = NewID()
	}
	out.Shapes[i].Constraints = append(out.Shapes[i].Constraints, c)
	return out, nil
}

// UpdateConstraint sets one field ("path", "datatype", "minCount", "maxCount")
// of the constraint with the given ID, wherever it lives.
func UpdateConstraint(d TokenDescriptor, id, field, value string) (TokenDescriptor, error) {
	out := d.Clone()
	for si := range out.Shapes {
		cs := out.Shapes[si].Constraints
		ci := indexOf(cs, func(c Constraint) bool { return c.ID == id })
		if ci < 0 {
			continue
		}
		switch field {
		case "path":
			cs[ci].Path = value
		case "datatype":
			cs[ci].Datatype = value
		case "minCount":
			cs[ci].MinCount = Count(value)
		case "maxCount":
			cs[ci].MaxCount = Count(value)
		default:
			return d, fmt.Errorf("constraint field %q: %w", field, ErrUnknownField)
		}
		return out, nil
	}
	return d, fmt.Errorf("constraint %q: %w", id, ErrEntryNotFound)
}

// RemoveConstraint drops the constraint with the given ID from every shape.
func RemoveConstraint(d TokenDescriptor, id string) TokenDescriptor {
	out := d.Clone()
	for si := range out.Shapes {
		out.Shapes[si].Constraints = removeWhere(out.Shapes[si].Constraints, func(c Constraint) bool { return c.ID == id })
	}
	return out
}

// Equivalence relations

// AddSameAs appends an owl:sameAs relation.
func AddSameAs(d TokenDescriptor, r EquivalenceRelation) TokenDescriptor {
	out := d.Clone()
	if r.ID == "" {
		r.ID = NewID()
	}
	out.SameAs = append(out.SameAs, r)
	return out
}

// UpdateSameAs sets "termA" or "termB" of the relation with the given ID.
func UpdateSameAs(d TokenDescriptor, id, field, value string) (TokenDescriptor, error) {
	out := d.Clone()
	i := indexOf(out.SameAs, func(r EquivalenceRelation) bool { return r.ID == id })
	if i < 0 {
		return d, fmt.Errorf("sameAs %q: %w", id, ErrEntryNotFound)
	}
	switch field {
	case "termA":
		out.SameAs[i].TermA = value
	case "termB":
		out.SameAs[i].TermB = value
	default:
		return d, fmt.Errorf("sameAs field %q: %w", field, ErrUnknownField)
	}
	return out, nil
}

// RemoveSameAs drops the relation with the given ID.
func RemoveSameAs(d TokenDescriptor, id string) TokenDescriptor {
	out := d.Clone()
	out.SameAs = removeWhere(out.SameAs, func(r EquivalenceRelation) bool { return r.ID == id })
	return out
}

// ToggleOntology selects key when absent and deselects it otherwise.
// Derived vocabulary and prefixes are recomputed by the vocabulary package.
func ToggleOntology(d TokenDescriptor, key string) TokenDescriptor {
	out := d.Clone()
	if i := indexOf(out.SelectedOntologies, func(k string) bool { return k == key }); i >= 0 {
		out.SelectedOntologies = append(out.SelectedOntologies[:i], out.SelectedOntologies[i+1:]...)
		return out
	}
	out.SelectedOntologies = append(out.SelectedOntologies, key)
	return out
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

func removeWhere[T any](items []T, match func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
