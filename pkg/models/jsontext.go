// Package models contains domain types for the Universe Builder engine.
package models

import (
	"encoding/json"
	"strings"
)

// DecodeStringList decodes a stored JSON text field into a string list.
// Card list fields and scenario themes predate the JSON encoding: legacy rows
// hold a plain comma-separated string, which falls back to a comma split.
// Null or undecodable values become an empty list, never an error.
func DecodeStringList(raw *string) []string {
	if raw == nil || *raw == "" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(*raw), &list); err == nil {
		if list == nil {
			return []string{}
		}
		return list
	}

	parts := strings.Split(*raw, ",")
	list = make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

// EncodeStringList encodes a string list for storage. Nil input is stored as
// SQL NULL so partial updates can distinguish "absent" from "empty".
func EncodeStringList(list []string) *string {
	if list == nil {
		return nil
	}
	// Marshal of a []string cannot fail.
	data, _ := json.Marshal(list)
	s := string(data)
	return &s
}
