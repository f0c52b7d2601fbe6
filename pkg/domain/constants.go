package domain

// Defaults applied to fresh descriptors and to drafts missing these fields.
const (
	DefaultTokenName     = "My Semantic Token"
	DefaultTokenTicker   = "MST"
	DefaultTokenDecimals = 2
)

// Draft blob field names, shared by the codec and its legacy aliases.
const (
	FieldTokenName          = "tokenName"
	FieldTokenTicker        = "tokenTicker"
	FieldTokenDecimals      = "tokenDecimals"
	FieldProperties         = "properties"
	FieldShapes             = "shapes"
	FieldSelectedOntologies = "selectedOntologies"
	FieldPrefixes           = "prefixes"
	FieldSameAs             = "sameAs"

	legacyFieldSameAs       = "sameAsRelations"
	legacyFieldPropertyKind = "type"
)

// DefaultOntologies returns the ontology keys selected in a fresh editor.
func DefaultOntologies() []string {
	return []string{"dcterms", "foaf"}
}
