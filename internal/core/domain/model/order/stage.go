package order

import (
	"time"

	"courierhub/internal/pkg/errs"
)

// Stage is a single immutable entry in an order's lifecycle history. Once
// appended to an order it is never mutated or removed.
type Stage struct {
	bucket Bucket
	at     time.Time
	action string
}

// NewStage creates a history entry for the given bucket at the given time.
// The action note is free text describing what produced the event.
func NewStage(bucket Bucket, at time.Time, action string) (Stage, error) {
	if err := bucket.Validate(); err != nil {
		return Stage{}, err
	}
	if at.IsZero() {
		return Stage{}, errs.NewValueIsRequiredError("stage time")
	}
	return Stage{bucket: bucket, at: at, action: action}, nil
}

// Bucket returns the lifecycle state this entry recorded.
func (s Stage) Bucket() Bucket {
	return s.bucket
}

// At returns the time the stage was reported.
func (s Stage) At() time.Time {
	return s.at
}

// Action returns the free-text note attached to the entry.
func (s Stage) Action() string {
	return s.action
}
