package model

// Outcome is the signal a mutation reports to its caller.
type Outcome string

const (
	OutcomeCreated          Outcome = "created"
	OutcomeUpdated          Outcome = "updated"
	OutcomeDeleted          Outcome = "deleted"
	OutcomeRejected         Outcome = "rejected"          // duplicate name, nothing written
	OutcomeNotFound         Outcome = "not_found"         // id has no row
	OutcomeReferentialError Outcome = "referential_error" // show points at a missing venue or artist
	OutcomeInvalid          Outcome = "invalid"           // field set failed validation
	OutcomeStoreUnavailable Outcome = "store_unavailable" // transaction or connection fault, rolled back
)

// Result describes what a mutation did.  Subject is the human readable
// name of the record involved (venue or artist name) for display; ID is
// set whenever a row was identified or created.
type Result struct {
	Outcome Outcome `json:"outcome"`
	ID      int64   `json:"id,omitempty"`
	Subject string  `json:"subject,omitempty"`
}
