package vocabulary

// Standard namespace IRIs
//
// These are the namespaces the editor binds by default. Prefix bindings in a
// descriptor may point anywhere; these constants only seed the defaults.
//
// References:
// - RDFS: https://www.w3.org/TR/rdf11-schema/
// - OWL: https://www.w3.org/TR/owl2-overview/
// - SHACL: https://www.w3.org/TR/shacl/
// - Dublin Core: https://www.dublincore.org/specifications/dublin-core/dcmi-terms/
// - FOAF: http://xmlns.com/foaf/spec/
// - SKOS: https://www.w3.org/TR/skos-reference/
const (
	NamespaceRDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceOWL     = "http://www.w3.org/2002/07/owl#"
	NamespaceSHACL   = "http://www.w3.org/ns/shacl#"
	NamespaceXSD     = "http://www.w3.org/2001/XMLSchema#"
	NamespaceDCTerms = "http://purl.org/dc/terms/"
	NamespaceFOAF    = "http://xmlns.com/foaf/0.1/"
	NamespaceSKOS    = "http://www.w3.org/2004/02/skos/core#"
)

