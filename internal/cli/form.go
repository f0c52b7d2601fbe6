package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/semtoken/internal/presentation/tui"
	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/aretw0/semtoken/pkg/vocabulary"
)

// FillDescriptor walks the user through the token fields, the ontology selection
// and any number of extra properties, starting from d. d is not modified.
func FillDescriptor(ctx context.Context, p tui.Prompter, catalog *vocabulary.Catalog, d domain.TokenDescriptor) (domain.TokenDescriptor, error) {
	name, err := p.Input(ctx, tui.InputConfig{Message: "Token name", Default: d.Name, Validator: required})
	if err != nil {
		return d, err
	}
	ticker, err := p.Input(ctx, tui.InputConfig{Message: "Ticker", Default: d.Ticker, Validator: required})
	if err != nil {
		return d, err
	}
	decimals, err := p.Input(ctx, tui.InputConfig{Message: "Decimals", Default: strconv.Itoa(d.Decimals), Validator: nonNegativeInt})
	if err != nil {
		return d, err
	}
	n, _ := strconv.Atoi(strings.TrimSpace(decimals))

	out := domain.WithDecimals(domain.WithTicker(domain.WithName(d, name), ticker), n)

	selected, err := p.MultiSelect(ctx, tui.SelectConfig{
		Message:  "Ontologies",
		Options:  catalog.Keys(),
		Defaults: out.SelectedOntologies,
	})
	if err != nil {
		return d, err
	}
	out.SelectedOntologies = selected
	out, vocab := catalog.Apply(out)

	for {
		more, err := p.Confirm(ctx, "Add a property?", false)
		if err != nil {
			return d, err
		}
		if !more {
			break
		}
		key, err := p.Input(ctx, tui.InputConfig{
			Message:   "Property key",
			Help:      "Suggestions: " + strings.Join(vocab, ", "),
			Validator: required,
		})
		if err != nil {
			return d, err
		}
		value, err := p.Input(ctx, tui.InputConfig{Message: "Value (wrap IRIs in <>)", Validator: required})
		if err != nil {
			return d, err
		}
		out = domain.AddProperty(out, parseProperty(key, value))
	}
	return out, nil
}

// parseProperty treats a value written as <iri> as a URI object.
func parseProperty(key, value string) domain.Property {
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if len(value) > 1 && strings.HasPrefix(value, "<") && strings.HasSuffix(value, ">") {
		return domain.Property{Key: key, Value: value[1 : len(value)-1], Kind: domain.KindURI}
	}
	return domain.Property{Key: key, Value: value, Kind: domain.KindLiteral}
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("%q is not a non-negative integer", s)
	}
	return nil
}
