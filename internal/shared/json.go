package shared

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MarshalJSON marshals data to JSON, optionally indented for human output.
func MarshalJSON(data any, pretty bool) ([]byte, error) {
	var out []byte
	var err error

	if pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return out, nil
}

// FormatDuration renders a duration in whole seconds as "m:ss".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}
	minutes := seconds / 60
	remainder := seconds % 60
	return strconv.Itoa(minutes) + ":" + fmt.Sprintf("%02d", remainder)
}

// BoolLabel renders a boolean as a pass/fail marker for plain-text reports.
func BoolLabel(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
