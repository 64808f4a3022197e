package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Entity names
const (
	EntityBedroomCount = "bedroom_count"
	EntityHomeAreaM2   = "home_area_m2"
	EntityDate         = "date"
	EntityBookingRef   = "booking_ref"
)

// Entity represents a typed value extracted from (or inferred from) an utterance
type Entity struct {
	Name       string  `json:"name"`
	Value      any     `json:"value"` // int or string depending on Name
	RawValue   string  `json:"raw_value"`
	Confidence float64 `json:"confidence"`
	Start      *int    `json:"start,omitempty"` // rune offset into the lower-cased utterance
	End        *int    `json:"end,omitempty"`
	Normalized *string `json:"normalized,omitempty"`
	Estimated  *bool   `json:"estimated,omitempty"`
}

// EntityList is a JSONB column holding extracted entities
type EntityList []Entity

// Value implements driver.Valuer interface
func (l EntityList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface
func (l *EntityList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported entities column type %T", value)
	}
}
