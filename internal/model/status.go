package model

// MutationStatus describes the outcome of an update.  An update of an id
// that does not exist is not an error; it reports MatchedCount 0.
type MutationStatus struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

// DeletionStatus describes the outcome of a delete.  Deleting nothing
// reports DeletedCount 0.
type DeletionStatus struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
