package vocabulary_test

import (
	"testing"

	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/aretw0/semtoken/pkg/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countPrefix(bindings []domain.PrefixBinding, prefix string) int {
	n := 0
	for _, b := range bindings {
		if b.Prefix == prefix {
			n++
		}
	}
	return n
}

func TestActivate_Foaf(t *testing.T) {
	act := vocabulary.DefaultCatalog().Activate([]string{"foaf"}, nil)

	assert.Contains(t, act.Vocab, "foaf:name")
	assert.Contains(t, act.Vocab, "foaf:Person")
	require.Len(t, act.Prefixes, 1)
	assert.Equal(t, domain.PrefixBinding{ID: "foaf", Prefix: "foaf", URI: "http://xmlns.com/foaf/0.1/"}, act.Prefixes[0])
}

func TestActivate_Idempotent(t *testing.T) {
	cat := vocabulary.DefaultCatalog()
	current := vocabulary.DefaultPrefixes()

	first := cat.Activate([]string{"foaf", "dcterms"}, current)
	second := cat.Activate([]string{"foaf", "dcterms"}, first.Prefixes)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, countPrefix(second.Prefixes, "foaf"))
	assert.Equal(t, 1, countPrefix(second.Prefixes, "dcterms"))
}

func TestActivate_OntologyBindingsFirst(t *testing.T) {
	current := []domain.PrefixBinding{
		{ID: "x", Prefix: "ex", URI: "http://example.org/"},
		{ID: "old-foaf", Prefix: "foaf", URI: "http://stale.example/foaf#"},
		{ID: "sh", Prefix: "sh", URI: vocabulary.NamespaceSHACL},
	}

	act := vocabulary.DefaultCatalog().Activate([]string{"skos", "foaf"}, current)

	require.Len(t, act.Prefixes, 4)
	assert.Equal(t, "skos", act.Prefixes[0].Prefix)
	assert.Equal(t, "foaf", act.Prefixes[1].Prefix)
	assert.Equal(t, vocabulary.NamespaceFOAF, act.Prefixes[1].URI, "ontology binding wins a collision")
	assert.Equal(t, "ex", act.Prefixes[2].Prefix)
	assert.Equal(t, "sh", act.Prefixes[3].Prefix)
}

func TestActivate_UnknownAndDuplicateKeys(t *testing.T) {
	cat := vocabulary.DefaultCatalog()

	act := cat.Activate([]string{"nope", "skos", "skos"}, nil)
	assert.Len(t, act.Prefixes, 1)

	onlySkos := cat.Activate([]string{"skos"}, nil)
	assert.Equal(t, onlySkos.Vocab, act.Vocab)
}

func TestActivate_EmptySelection(t *testing.T) {
	current := []domain.PrefixBinding{{ID: "1", Prefix: "ex", URI: "http://example.org/"}}

	act := vocabulary.DefaultCatalog().Activate(nil, current)

	assert.NotNil(t, act.Vocab)
	assert.Empty(t, act.Vocab)
	assert.Equal(t, current, act.Prefixes)
}

func TestCatalog_With(t *testing.T) {
	base := vocabulary.DefaultCatalog()
	ext := base.With(vocabulary.Ontology{Key: "schema", Prefix: "schema", URI: "https://schema.org/", Terms: []string{"name"}})

	assert.Equal(t, []string{"dcterms", "foaf", "skos"}, base.Keys())
	assert.Equal(t, []string{"dcterms", "foaf", "skos", "schema"}, ext.Keys())

	act := ext.Activate([]string{"schema"}, nil)
	assert.Equal(t, []string{"schema:name"}, act.Vocab)
}

func TestCatalog_GetReturnsCopy(t *testing.T) {
	cat := vocabulary.DefaultCatalog()
	o, ok := cat.Get("foaf")
	require.True(t, ok)
	o.Terms[0] = "Mutated"

	again, _ := cat.Get("foaf")
	assert.Equal(t, "Person", again.Terms[0])
}

func TestApply(t *testing.T) {
	d := domain.NewDescriptor()
	before := d.Clone()

	out, vocab := vocabulary.DefaultCatalog().Apply(d)

	assert.Contains(t, vocab, "dcterms:title")
	assert.Equal(t, 1, countPrefix(out.Prefixes, "foaf"))
	assert.Equal(t, before, d, "input left untouched")
}

func TestDatatypes(t *testing.T) {
	assert.Equal(t, []string{"xsd:string", "xsd:integer", "xsd:decimal", "xsd:boolean", "xsd:date"}, vocabulary.Datatypes())
}

func TestDefaultPrefixes_MatchFreshDescriptor(t *testing.T) {
	assert.Equal(t, vocabulary.DefaultPrefixes(), domain.NewDescriptor().Prefixes)
}
