package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringArray is persisted as a JSON array in a text column. Rows written
// before the column carried JSON may hold a bare string; Scan accepts those
// as a one-element list.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *StringArray) Scan(value interface{}) error {
	if a == nil {
		return fmt.Errorf("models.StringArray: Scan on nil pointer")
	}
	if value == nil {
		*a = []string{}
		return nil
	}

	var text string
	switch v := value.(type) {
	case []byte:
		text = string(v)
	case string:
		text = v
	default:
		return fmt.Errorf("models.StringArray: unsupported Scan type %T", value)
	}

	*a = decodeStringList(strings.TrimSpace(text))
	return nil
}

func decodeStringList(text string) []string {
	if text == "" || text == "null" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(text), &list); err == nil {
		return list
	}

	var one string
	if err := json.Unmarshal([]byte(text), &one); err == nil {
		if one == "" {
			return []string{}
		}
		return []string{one}
	}

	// Legacy rows stored the value without any JSON encoding.
	return []string{text}
}
