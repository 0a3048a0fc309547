package model

import (
	"time"

	"github.com/google/uuid"
)

// Lookup represents a successful decode recorded in the history table
type Lookup struct {
	ID         uuid.UUID
	VIN        string
	Make       string
	Model      string
	ModelYear  string
	BodyClass  string
	SearchedAt time.Time
}

// LookupSummary represents aggregate figures over the lookup history
type LookupSummary struct {
	TotalLookups int
	UniqueVINs   int
	TopMake      string
	TopMakeCount int
}
