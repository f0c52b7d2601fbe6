package loam

// DraftKind marks documents written by Store so foreign documents in the
// same repository are ignored.
const DraftKind = "semtoken-draft"

// DraftMetadata is the frontmatter of a draft document.
// The draft blob itself is the document content.
type DraftMetadata struct {
	Kind      string `json:"kind" mapstructure:"kind"`
	Title     string `json:"title" mapstructure:"title"`
	UpdatedAt string `json:"updated_at" mapstructure:"updated_at"`
}
