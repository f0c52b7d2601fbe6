package vocabulary

import (
	"github.com/aretw0/semtoken/pkg/domain"
)

// Ontology is a named vocabulary offered to the editor.
type Ontology struct {
	Key    string   `json:"key" yaml:"key"`
	Name   string   `json:"name" yaml:"name"`
	Prefix string   `json:"prefix" yaml:"prefix"`
	URI    string   `json:"uri" yaml:"uri"`
	Terms  []string `json:"terms" yaml:"terms"`
}

// Binding returns the prefix binding contributed by the ontology.
// The binding ID is the ontology key.
func (o Ontology) Binding() domain.PrefixBinding {
	return domain.PrefixBinding{ID: o.Key, Prefix: o.Prefix, URI: o.URI}
}

// QualifiedTerms returns the terms as prefix:term names.
func (o Ontology) QualifiedTerms() []string {
	out := make([]string, len(o.Terms))
	for i, term := range o.Terms {
		out[i] = o.Prefix + ":" + term
	}
	return out
}

// Catalog is an ordered, read-only table of ontologies keyed by Ontology.Key.
// Values are never modified after construction, so a Catalog may be shared.
type Catalog struct {
	order []string
	byKey map[string]Ontology
}

// NewCatalog builds a catalog. A later entry replaces an earlier one with the same key
// while keeping the first position.
func NewCatalog(ontologies ...Ontology) *Catalog {
	c := &Catalog{byKey: make(map[string]Ontology, len(ontologies))}
	for _, o := range ontologies {
		if o.Key == "" {
			continue
		}
		if _, exists := c.byKey[o.Key]; !exists {
			c.order = append(c.order, o.Key)
		}
		o.Terms = append([]string(nil), o.Terms...)
		c.byKey[o.Key] = o
	}
	return c
}

// DefaultCatalog returns the built-in ontologies.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Ontology{
			Key:    "dcterms",
			Name:   "Dublin Core Terms",
			Prefix: "dcterms",
			URI:    NamespaceDCTerms,
			Terms:  []string{"title", "description", "creator", "date", "identifier", "publisher", "rights"},
		},
		Ontology{
			Key:    "foaf",
			Name:   "Friend of a Friend",
			Prefix: "foaf",
			URI:    NamespaceFOAF,
			Terms:  []string{"Person", "name", "givenName", "familyName", "mbox", "homepage", "maker", "account"},
		},
		Ontology{
			Key:    "skos",
			Name:   "SKOS",
			Prefix: "skos",
			URI:    NamespaceSKOS,
			Terms:  []string{"Concept", "prefLabel", "altLabel", "definition", "broader", "narrower"},
		},
	)
}

// With returns a new catalog extended (or overridden) by the given ontologies.
func (c *Catalog) With(ontologies ...Ontology) *Catalog {
	return NewCatalog(append(c.List(), ontologies...)...)
}

// Get looks up an ontology by key.
func (c *Catalog) Get(key string) (Ontology, bool) {
	o, ok := c.byKey[key]
	if !ok {
		return Ontology{}, false
	}
	o.Terms = append([]string(nil), o.Terms...)
	return o, true
}

// List returns the ontologies in catalog order.
func (c *Catalog) List() []Ontology {
	out := make([]Ontology, 0, len(c.order))
	for _, key := range c.order {
		o, _ := c.Get(key)
		out = append(out, o)
	}
	return out
}

// Keys returns the ontology keys in catalog order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.order...)
}

// DefaultPrefixes returns the namespace table of a fresh editor.
func DefaultPrefixes() []domain.PrefixBinding {
	return []domain.PrefixBinding{
		{ID: "dcterms", Prefix: "dcterms", URI: NamespaceDCTerms},
		{ID: "foaf", Prefix: "foaf", URI: NamespaceFOAF},
		{ID: "owl", Prefix: "owl", URI: NamespaceOWL},
		{ID: "rdfs", Prefix: "rdfs", URI: NamespaceRDFS},
		{ID: "sh", Prefix: "sh", URI: NamespaceSHACL},
		{ID: "xsd", Prefix: "xsd", URI: NamespaceXSD},
	}
}

// Datatypes returns the XSD datatypes offered for constraint pickers.
func Datatypes() []string {
	return []string{"xsd:string", "xsd:integer", "xsd:decimal", "xsd:boolean", "xsd:date"}
}
