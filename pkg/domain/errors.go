package domain

import "errors"

// ErrDraftNotFound is returned when a draft ID cannot be found in the store.
var ErrDraftNotFound = errors.New("draft not found")

// ErrDraftNameRequired is returned when saving a draft whose token name is blank.
var ErrDraftNameRequired = errors.New("draft requires a token name")

// ErrInvalidDraft is returned when a draft blob cannot be decoded.
var ErrInvalidDraft = errors.New("invalid draft")

// ErrShapeNameRequired is returned when adding a shape with a blank name.
var ErrShapeNameRequired = errors.New("shape name is required")

// ErrEntryNotFound is returned when a mutation addresses an unknown list entry ID.
var ErrEntryNotFound = errors.New("entry not found")

// ErrUnknownField is returned when a mutation names a field the entry does not have.
var ErrUnknownField = errors.New("unknown field")
