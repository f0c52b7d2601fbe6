/*
Package semtoken turns a token's metadata form into an RDF/Turtle document.

A token is described by a TokenDescriptor (see pkg/domain): name, ticker, decimals,
custom properties, namespace prefixes, SHACL node shapes and owl:sameAs links.
The Studio renders it to Turtle, activates ontology vocabularies, keeps drafts in a
Storage Provider and hands the rendered text to a Content Publisher.

# Concept

Rendering and vocabulary activation are pure: the same descriptor always yields
byte-identical Turtle. Everything that performs I/O sits behind the ports in
pkg/ports, so the Studio can be embedded in a CLI, an HTTP server or an MCP agent.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/semtoken"
		"github.com/aretw0/semtoken/pkg/adapters/memory"
		"github.com/aretw0/semtoken/pkg/domain"
	)

	func main() {
		studio := semtoken.New(
			semtoken.WithStore(memory.NewStore()),
			semtoken.WithPublisher(memory.NewPublisher()),
		)

		desc := domain.NewDescriptor()
		fmt.Print(studio.Render(desc))

		res, err := studio.Publish(context.Background(), desc)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.URI)
	}
*/
package semtoken
