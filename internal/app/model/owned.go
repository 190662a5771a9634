package model

// Owned is implemented by every record with a single controlling user.
// Mutation paths run one shared ownership check against it instead of
// per-type field comparisons.
type Owned interface {
	OwnerID() uint
}
