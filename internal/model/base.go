package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money is rendered as a JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Timestamps is the audit trail shared by every table.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
