package domain

import (
	"encoding/json"
	"strings"
)

// TermKind selects how a Property value is rendered.
type TermKind string

const (
	KindLiteral TermKind = "literal" // Quoted string literal
	KindURI     TermKind = "uri"     // Angle-bracketed IRI reference
)

// Normalize maps unknown kinds to KindLiteral.
func (k TermKind) Normalize() TermKind {
	if strings.EqualFold(string(k), string(KindURI)) {
		return KindURI
	}
	return KindLiteral
}

// Property is a custom predicate/object pair attached to the token subject.
type Property struct {
	ID    string   `json:"id,omitempty" mapstructure:"id"`
	Key   string   `json:"key" mapstructure:"key"`
	Value string   `json:"value" mapstructure:"value"`
	Kind  TermKind `json:"kind" mapstructure:"kind"`
}

// IsEmpty reports whether the property contributes nothing to the output.
func (p Property) IsEmpty() bool {
	return p.Key == "" || p.Value == ""
}

// PrefixBinding maps a short alias to a namespace IRI.
// Uniqueness by prefix is not enforced.
type PrefixBinding struct {
	ID     string `json:"id,omitempty" mapstructure:"id"`
	Prefix string `json:"prefix" mapstructure:"prefix"`
	URI    string `json:"uri" mapstructure:"uri"`
}

// IsEmpty reports whether the binding is missing its prefix or its IRI.
func (p PrefixBinding) IsEmpty() bool {
	return p.Prefix == "" || p.URI == ""
}

// Count is a cardinality bound kept as raw text.
// Numeric sanity is not checked; the empty value means "absent".
type Count string

// IsSet reports whether the bound was provided.
func (c Count) IsSet() bool { return c != "" }

// String returns the raw text.
func (c Count) String() string { return string(c) }

// Constraint is a single sh:property block inside a Shape.
type Constraint struct {
	ID       string `json:"id,omitempty" mapstructure:"id"`
	Path     string `json:"path" mapstructure:"path"`
	Datatype string `json:"datatype" mapstructure:"datatype"`
	MinCount Count  `json:"minCount" mapstructure:"minCount"`
	MaxCount Count  `json:"maxCount" mapstructure:"maxCount"`
}

// IsEmpty reports whether no field of the constraint is set.
func (c Constraint) IsEmpty() bool {
	return c.Path == "" && c.Datatype == "" && !c.MinCount.IsSet() && !c.MaxCount.IsSet()
}

// Shape is a sh:NodeShape with an ordered list of property constraints.
type Shape struct {
	ID          string       `json:"id,omitempty" mapstructure:"id"`
	Name        string       `json:"name" mapstructure:"name"`
	TargetClass string       `json:"targetClass" mapstructure:"targetClass"`
	Constraints []Constraint `json:"constraints" mapstructure:"constraints"`
}

// EquivalenceRelation asserts termA owl:sameAs termB.
type EquivalenceRelation struct {
	ID    string `json:"id,omitempty" mapstructure:"id"`
	TermA string `json:"termA" mapstructure:"termA"`
	TermB string `json:"termB" mapstructure:"termB"`
}

// IsEmpty reports whether either side of the relation is missing.
func (r EquivalenceRelation) IsEmpty() bool {
	return r.TermA == "" || r.TermB == ""
}

// TokenDescriptor is the aggregate root of the form model.
// It is the unit saved and loaded as a draft.
type TokenDescriptor struct {
	Name               string                `json:"tokenName" mapstructure:"tokenName"`
	Ticker             string                `json:"tokenTicker" mapstructure:"tokenTicker"`
	Decimals           int                   `json:"tokenDecimals" mapstructure:"tokenDecimals"`
	Properties         []Property            `json:"properties" mapstructure:"properties"`
	Shapes             []Shape               `json:"shapes" mapstructure:"shapes"`
	SelectedOntologies []string              `json:"selectedOntologies" mapstructure:"selectedOntologies"`
	Prefixes           []PrefixBinding       `json:"prefixes" mapstructure:"prefixes"`
	SameAs             []EquivalenceRelation `json:"sameAs" mapstructure:"sameAs"`
}

// NewDescriptor returns the initial editor state.
func NewDescriptor() TokenDescriptor {
	return TokenDescriptor{
		Name:     DefaultTokenName,
		Ticker:   DefaultTokenTicker,
		Decimals: DefaultTokenDecimals,
		Properties: []Property{
			{ID: "1", Key: "dcterms:description", Value: "A token with rich, machine-readable metadata.", Kind: KindLiteral},
			{ID: "2", Key: "foaf:maker", Value: "https://my-profile.example.com", Kind: KindURI},
		},
		Shapes:             []Shape{},
		SelectedOntologies: DefaultOntologies(),
		Prefixes: []PrefixBinding{
			{ID: "dcterms", Prefix: "dcterms", URI: "http://purl.org/dc/terms/"},
			{ID: "foaf", Prefix: "foaf", URI: "http://xmlns.com/foaf/0.1/"},
			{ID: "owl", Prefix: "owl", URI: "http://www.w3.org/2002/07/owl#"},
			{ID: "rdfs", Prefix: "rdfs", URI: "http://www.w3.org/2000/01/rdf-schema#"},
			{ID: "sh", Prefix: "sh", URI: "http://www.w3.org/ns/shacl#"},
			{ID: "xsd", Prefix: "xsd", URI: "http://www.w3.org/2001/XMLSchema#"},
		},
		SameAs: []EquivalenceRelation{},
	}
}

// Clone returns a deep copy so callers can derive new descriptors without sharing lists.
func (d TokenDescriptor) Clone() TokenDescriptor {
	out := d
	out.Properties = cloneSlice(d.Properties)
	out.Prefixes = cloneSlice(d.Prefixes)
	out.SameAs = cloneSlice(d.SameAs)
	out.SelectedOntologies = cloneSlice(d.SelectedOntologies)
	out.Shapes = cloneSlice(d.Shapes)
	for i := range out.Shapes {
		out.Shapes[i].Constraints = cloneSlice(out.Shapes[i].Constraints)
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (c *Count) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*c = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Count(s)
	default:
		*c = Count(raw)
	}
	return nil
}
