/*
Package turtle renders a domain.TokenDescriptor as RDF Turtle text.

The document is built from explicit line groups, emitted in this order and
separated by a blank line:

  - Prefixes: one "@prefix p: <iri> ." line per complete binding.
  - Token: the "<>" subject with its type, title, ticker and custom properties.
  - Shapes: one sh:NodeShape statement per named shape.
  - Equivalences: one "a owl:sameAs b ." line per complete relation.

Rendering is pure and deterministic: the same descriptor always yields the
same bytes. Terms, IRIs, datatypes and cardinalities are written verbatim;
only string literals are escaped.
*/
package turtle
