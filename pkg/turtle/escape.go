package turtle

import (
	"strings"

	"github.com/aretw0/semtoken/pkg/domain"
)

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Literal renders s as a double-quoted Turtle string.
func Literal(s string) string {
	return `"` + literalEscaper.Replace(s) + `"`
}

// IRI renders s as an angle-bracketed IRI reference. The IRI is not validated.
func IRI(s string) string {
	return "<" + s + ">"
}

// Object renders the value of p according to its kind.
func Object(p domain.Property) string {
	if p.Kind.Normalize() == domain.KindURI {
		return IRI(p.Value)
	}
	return Literal(p.Value)
}
