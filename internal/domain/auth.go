package domain

import "time"

// SubjectType differentiates token subjects.
type SubjectType string

const (
	SubjectTypeClient SubjectType = "CLIENT"
)

// Token represents issued authentication token metadata.
type Token struct {
	SubjectID string
	Subject   SubjectType
	ExpiresAt time.Time
	IssuedAt  time.Time
}
