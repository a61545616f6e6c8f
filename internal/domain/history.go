package domain

import "time"

// TriageRecord is the audit row written for every swipe decision. Deletion
// records are stamped committed once the batch delete succeeds.
type TriageRecord struct {
	ID          string
	AssetID     string
	Decision    SwipeDecision
	DecidedAt   time.Time
	CommittedAt *time.Time
}
