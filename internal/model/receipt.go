package model

import "time"

// Receipt is the local record of an application the user submitted.
type Receipt struct {
	SubmittedAt   time.Time       `json:"submittedAt"`
	ApplicationID string          `json:"applicationId"`
	Kind          ApplicationKind `json:"kind"`
	ReferenceID   string          `json:"referenceId"`
	Message       string          `json:"message"`
	ID            int64           `json:"id"`
}
