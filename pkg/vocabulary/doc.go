/*
Package vocabulary holds the ontology catalog offered to token authors and the
activation step that turns a selection of ontologies into autocomplete terms and
namespace bindings.

# Activation

Selecting "foaf" yields suggestions such as "foaf:name" and "foaf:Person" and
guarantees exactly one binding for the "foaf" prefix, whatever the current
table contains. Bindings the author added by hand survive unless their prefix
collides with a selected ontology.
*/
package vocabulary
