package vocabulary

import (
	"github.com/aretw0/semtoken/pkg/domain"
)

// Activation is the result of applying a set of selected ontologies.
type Activation struct {
	// Vocab holds the deduplicated prefix:term suggestions, in selection order.
	Vocab []string `json:"vocab"`
	// Prefixes is the merged namespace table.
	Prefixes []domain.PrefixBinding `json:"prefixes"`
}

// Activate computes the autocomplete vocabulary and the merged prefix table for
// the selected ontology keys.
//
// Ontology bindings come first, in selection order. Every binding of current
// whose prefix is not claimed by a selected ontology follows, in its original
// order. Unknown keys are skipped and repeated keys count once, so applying the
// result again yields the same table.
func (c *Catalog) Activate(selected []string, current []domain.PrefixBinding) Activation {
	var (
		vocab     []string
		prefixes  []domain.PrefixBinding
		seenKey   = make(map[string]bool)
		seenTerm  = make(map[string]bool)
		ontoOwned = make(map[string]bool)
	)

	for _, key := range selected {
		if seenKey[key] {
			continue
		}
		seenKey[key] = true

		o, ok := c.Get(key)
		if !ok {
			continue
		}
		for _, term := range o.QualifiedTerms() {
			if !seenTerm[term] {
				seenTerm[term] = true
				vocab = append(vocab, term)
			}
		}
		if !ontoOwned[o.Prefix] {
			ontoOwned[o.Prefix] = true
			prefixes = append(prefixes, o.Binding())
		}
	}

	for _, p := range current {
		if ontoOwned[p.Prefix] {
			continue
		}
		prefixes = append(prefixes, p)
	}

	if vocab == nil {
		vocab = []string{}
	}
	if prefixes == nil {
		prefixes = []domain.PrefixBinding{}
	}
	return Activation{Vocab: vocab, Prefixes: prefixes}
}

// Apply activates the descriptor's own selection and returns a copy of d with
// the merged prefix table, plus the vocabulary suggestions.
func (c *Catalog) Apply(d domain.TokenDescriptor) (domain.TokenDescriptor, []string) {
	act := c.Activate(d.SelectedOntologies, d.Prefixes)
	out := d.Clone()
	out.Prefixes = act.Prefixes
	return out, act.Vocab
}
