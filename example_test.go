package semtoken_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/semtoken"
	"github.com/aretw0/semtoken/pkg/adapters/memory"
	"github.com/aretw0/semtoken/pkg/domain"
)

func ExampleStudio_Render() {
	studio := semtoken.New()

	d := domain.TokenDescriptor{
		Name:   "Foo",
		Ticker: "FOO",
		Properties: []domain.Property{
			{Key: "dcterms:description", Value: `Hello "world"`, Kind: domain.KindLiteral},
		},
		Prefixes: []domain.PrefixBinding{{Prefix: "dcterms", URI: "http://purl.org/dc/terms/"}},
	}
	fmt.Print(studio.Render(d))
	// Output:
	// @prefix dcterms: <http://purl.org/dc/terms/> .
	//
	// <>
	//   a <http://slp.dev/ont/v1#Token> ;
	//   dcterms:title "Foo" ;
	//   <http://slp.dev/ont/v1#ticker> "FOO" ;
	//   dcterms:description "Hello \"world\"" ;
	// .
}

func ExampleStudio_Activate() {
	studio := semtoken.New()

	d := domain.TokenDescriptor{SelectedOntologies: []string{"foaf"}}
	d, vocab := studio.Activate(d)

	fmt.Println(vocab[:2])
	fmt.Println(d.Prefixes[0].Prefix, d.Prefixes[0].URI)
	// Output:
	// [foaf:Person foaf:name]
	// foaf http://xmlns.com/foaf/0.1/
}

func ExampleStudio_Publish() {
	studio := semtoken.New(semtoken.WithPublisher(memory.NewPublisher()))

	res, err := studio.Publish(context.Background(), domain.NewDescriptor())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(strings.HasPrefix(res.URI, "ipfs://"))
	// Output: true
}
