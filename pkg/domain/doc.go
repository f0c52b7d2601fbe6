/*
Package domain contains the form model of the semantic token editor.

It defines the TokenDescriptor aggregate and its entries, the immutable
operations that derive a new descriptor from an old one, and the draft blob
codec used by storage adapters. The package performs no I/O.

# Key Entities

  - TokenDescriptor: name, ticker, decimals plus the ordered lists below.
  - Property: a custom predicate/object pair rendered on the token subject.
  - PrefixBinding: a namespace alias emitted as an @prefix line.
  - Shape / Constraint: a SHACL NodeShape and its sh:property blocks.
  - EquivalenceRelation: an owl:sameAs link between two terms.

List order is significant and preserved. Entry IDs exist only to address
updates and removals.
*/
package domain
