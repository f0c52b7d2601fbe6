package turtle

import (
	"strconv"
	"strings"

	"github.com/aretw0/semtoken/pkg/domain"
)

// Fixed vocabulary of the token definition block.
const (
	TokenClassIRI    = "http://slp.dev/ont/v1#Token"
	TickerIRI        = "http://slp.dev/ont/v1#ticker"
	DecimalsIRI      = "http://slp.dev/ont/v1#decimals"
	TitlePredicate   = "dcterms:title"
	SameAsPredicate  = "owl:sameAs"
	NodeShapeClass   = "sh:NodeShape"
	subjectSelf      = "<>"
	blockSeparator   = "\n\n"
	statementEnd     = "."
	predicateEnd     = " ;"
	constraintIndent = "    "
)

// Serializer renders TokenDescriptors into Turtle text.
// It holds no mutable state and is safe for concurrent use.
type Serializer struct {
	withDecimals bool
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithDecimals adds the token decimals to the token definition block.
func WithDecimals() Option {
	return func(s *Serializer) {
		s.withDecimals = true
	}
}

// New creates a Serializer.
func New(opts ...Option) *Serializer {
	s := &Serializer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSerializer = New()

// Serialize renders d with the default Serializer.
func Serialize(d domain.TokenDescriptor) string {
	return defaultSerializer.Serialize(d)
}

// Serialize renders d. Empty blocks are skipped and the remaining ones are
// separated by a blank line. The output always ends with a newline.
func (s *Serializer) Serialize(d domain.TokenDescriptor) string {
	var parts []string
	for _, b := range s.Blocks(d) {
		if b.IsEmpty() {
			continue
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, blockSeparator) + "\n"
}

// Blocks returns the ordered line groups making up the document:
// prefixes, token definition, one block per named shape, equivalences.
func (s *Serializer) Blocks(d domain.TokenDescriptor) []Block {
	blocks := []Block{prefixBlock(d.Prefixes), s.tokenBlock(d)}
	for _, shape := range d.Shapes {
		if shape.Name == "" {
			continue
		}
		blocks = append(blocks, shapeBlock(shape))
	}
	return append(blocks, equivalenceBlock(d.SameAs))
}

func prefixBlock(prefixes []domain.PrefixBinding) Block {
	b := Block{Kind: BlockPrefixes}
	for _, p := range prefixes {
		if p.IsEmpty() {
			continue
		}
		b.Lines = append(b.Lines, "@prefix "+p.Prefix+": "+IRI(p.URI)+" .")
	}
	return b
}

func (s *Serializer) tokenBlock(d domain.TokenDescriptor) Block {
	b := Block{Kind: BlockToken}
	b.Lines = append(b.Lines,
		subjectSelf,
		"  a "+IRI(TokenClassIRI)+predicateEnd,
		"  "+TitlePredicate+" "+Literal(d.Name)+predicateEnd,
		"  "+IRI(TickerIRI)+" "+Literal(d.Ticker)+predicateEnd,
	)
	if s.withDecimals {
		b.Lines = append(b.Lines, "  "+IRI(DecimalsIRI)+" "+strconv.Itoa(d.Decimals)+predicateEnd)
	}
	for _, p := range d.Properties {
		if p.IsEmpty() {
			continue
		}
		b.Lines = append(b.Lines, "  "+p.Key+" "+Object(p)+predicateEnd)
	}
	b.Lines = append(b.Lines, statementEnd)
	return b
}

// shapeBlock renders one NodeShape. The last emitted constraint of the shape
// closes the statement with "."; a shape without constraints closes on its own line.
func shapeBlock(shape domain.Shape) Block {
	b := Block{Kind: BlockShape}
	b.Lines = append(b.Lines, ":"+shape.Name+" a "+NodeShapeClass+predicateEnd)
	if shape.TargetClass != "" {
		b.Lines = append(b.Lines, "  sh:targetClass "+shape.TargetClass+predicateEnd)
	}

	var groups [][]string
	for _, c := range shape.Constraints {
		if parts := constraintParts(c); len(parts) > 0 {
			groups = append(groups, parts)
		}
	}
	if len(groups) == 0 {
		b.Lines = append(b.Lines, statementEnd)
		return b
	}

	for i, parts := range groups {
		end := predicateEnd
		if i == len(groups)-1 {
			end = statementEnd
		}
		b.Lines = append(b.Lines, "  sh:property [")
		for j, part := range parts {
			line := constraintIndent + part
			if j < len(parts)-1 {
				line += predicateEnd
			}
			b.Lines = append(b.Lines, line)
		}
		b.Lines = append(b.Lines, "  ]"+end)
	}
	return b
}

func constraintParts(c domain.Constraint) []string {
	var parts []string
	if c.Path != "" {
		parts = append(parts, "sh:path "+c.Path)
	}
	if c.Datatype != "" {
		parts = append(parts, "sh:datatype "+c.Datatype)
	}
	if c.MinCount.IsSet() {
		parts = append(parts, "sh:minCount "+c.MinCount.String())
	}
	if c.MaxCount.IsSet() {
		parts = append(parts, "sh:maxCount "+c.MaxCount.String())
	}
	return parts
}

func equivalenceBlock(relations []domain.EquivalenceRelation) Block {
	b := Block{Kind: BlockEquivalence}
	for _, r := range relations {
		if r.IsEmpty() {
			continue
		}
		b.Lines = append(b.Lines, r.TermA+" "+SameAsPredicate+" "+r.TermB+" "+statementEnd)
	}
	return b
}
