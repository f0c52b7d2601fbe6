package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/semtoken/pkg/domain"
)

// Overlay highlights terms on the diagram, e.g. the vocabulary that was just activated.
type Overlay struct {
	Highlighted []string
}

// GenerateMermaid produces a Mermaid flowchart of the descriptor's terms.
// Node shapes:
// - Token: ((Circle))
// - NodeShape: [[Subroutine]]
// - Class or resource: [Rectangle]
// - Constraint path: [/Parallelogram/]
// Edges carry the predicate that relates the two terms. Entities the Turtle
// document would skip are skipped here as well.
func GenerateMermaid(d domain.TokenDescriptor, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := newIDTable()
	node := func(term, opener, closer string) string {
		id, added := ids.assign(term)
		if added {
			sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(term), closer))
		}
		return id
	}
	edge := func(from, label, to string) {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", from, escapeLabel(label), to))
	}

	name := d.Name
	if strings.TrimSpace(name) == "" {
		name = "token"
	}
	token := node("token:"+name, "((", "))")

	for _, p := range d.Properties {
		if p.IsEmpty() || p.Kind != domain.KindURI {
			continue
		}
		edge(token, p.Key, node(p.Value, "[", "]"))
	}

	for _, s := range d.Shapes {
		if s.Name == "" {
			continue
		}
		shape := node(":"+s.Name, "[[", "]]")
		if s.TargetClass != "" {
			edge(shape, "sh:targetClass", node(s.TargetClass, "[", "]"))
		}
		for _, c := range s.Constraints {
			if c.Path == "" {
				continue
			}
			label := "sh:property"
			if c.Datatype != "" {
				label += " " + c.Datatype
			}
			edge(shape, label, node(c.Path, "[/", "/]"))
		}
	}

	for _, r := range d.SameAs {
		if r.IsEmpty() {
			continue
		}
		a := node(r.TermA, "[", "]")
		b := node(r.TermB, "[", "]")
		sb.WriteString(fmt.Sprintf("    %s -. \"owl:sameAs\" .- %s\n", a, b))
	}

	if overlay != nil && len(overlay.Highlighted) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme
		sb.WriteString("    classDef highlighted fill:#ffeb3b,stroke:#fbc02d,stroke-width:2px,color:#000;\n")
		seen := make(map[string]bool)
		for _, term := range overlay.Highlighted {
			id, ok := ids.byTerm[term]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			sb.WriteString(fmt.Sprintf("    class %s highlighted;\n", id))
		}
	}

	return sb.String()
}

var idReplacer = strings.NewReplacer(
	".", "_", "-", "_", "/", "_", "\\", "_",
	":", "_", "#", "_", " ", "_", "<", "_", ">", "_", "%", "_", "\"", "_", "'", "_",
)

func sanitizeMermaidID(id string) string {
	return idReplacer.Replace(id)
}

// idTable hands out one Mermaid ID per term. Terms that sanitize to the same
// ID get a numeric suffix so they stay separate nodes.
type idTable struct {
	byTerm map[string]string
	taken  map[string]bool
}

func newIDTable() *idTable {
	return &idTable{byTerm: make(map[string]string), taken: make(map[string]bool)}
}

// assign returns the ID of term and whether it was handed out just now.
func (t *idTable) assign(term string) (string, bool) {
	if id, ok := t.byTerm[term]; ok {
		return id, false
	}
	base := sanitizeMermaidID(term)
	id := base
	for n := 2; t.taken[id]; n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	t.byTerm[term] = id
	t.taken[id] = true
	return id, true
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
