package util

import "encoding/json"

// MarshalPretty indents v for files meant to be read by people.
func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
