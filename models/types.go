package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice is a custom type for handling JSON arrays of strings in database
type StringSlice []string

// Value implements driver.Valuer interface for database storage
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(ss)
}

// Scan implements sql.Scanner interface for database retrieval
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ss)
	case string:
		return json.Unmarshal([]byte(v), ss)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// GormDataType returns the data type for GORM
func (StringSlice) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (ss StringSlice) MarshalJSON() ([]byte, error) {
	if ss == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ss))
}

// Contains reports whether s is a member of the slice.
func (ss StringSlice) Contains(s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// Without returns a copy of the slice with every occurrence of s removed,
// preserving the order of the remaining elements.
func (ss StringSlice) Without(s string) StringSlice {
	out := make(StringSlice, 0, len(ss))
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// ItineraryDays is the ordered sequence of day plans stored as a JSON column
type ItineraryDays []ItineraryDay

func (d ItineraryDays) Value() (driver.Value, error) {
	if d == nil {
		return json.Marshal([]ItineraryDay{})
	}
	return json.Marshal(d)
}

func (d *ItineraryDays) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into ItineraryDays", value)
	}
}

func (ItineraryDays) GormDataType() string {
	return "json"
}

func (d ItineraryDays) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ItineraryDay(d))
}

// BudgetItems is the list of budget line items stored as a JSON column
type BudgetItems []BudgetItem

func (b BudgetItems) Value() (driver.Value, error) {
	if b == nil {
		return json.Marshal([]BudgetItem{})
	}
	return json.Marshal(b)
}

func (b *BudgetItems) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return fmt.Errorf("cannot scan %T into BudgetItems", value)
	}
}

func (BudgetItems) GormDataType() string {
	return "json"
}

func (b BudgetItems) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]BudgetItem(b))
}
