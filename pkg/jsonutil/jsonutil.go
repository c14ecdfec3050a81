package jsonutil

import (
	"encoding/json"
	"strconv"
)

// Document is an untyped JSON object as returned by the provider.
type Document = map[string]interface{}

// GetMap returns the object stored under key, or nil when absent or of a
// different shape.
func GetMap(doc Document, key string) Document {
	if doc == nil {
		return nil
	}
	if m, ok := doc[key].(map[string]interface{}); ok {
		return m
	}
	return nil
}

// GetSlice returns the array stored under key, or nil when absent.
func GetSlice(doc Document, key string) []interface{} {
	if doc == nil {
		return nil
	}
	if s, ok := doc[key].([]interface{}); ok {
		return s
	}
	return nil
}

// MapAt returns the element of s at index i as an object, or nil.
func MapAt(s []interface{}, i int) Document {
	if i < 0 || i >= len(s) {
		return nil
	}
	if m, ok := s[i].(map[string]interface{}); ok {
		return m
	}
	return nil
}

// GetString returns the string stored under key, or "" when absent.
func GetString(doc Document, key string) string {
	if doc == nil {
		return ""
	}
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

// GetNumber returns the numeric value stored under key. Provider payloads
// carry numbers both as JSON numbers and as quoted strings, so both are
// accepted.
func GetNumber(doc Document, key string) (float64, bool) {
	if doc == nil {
		return 0, false
	}
	switch v := doc[key].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

// GetInt returns the integer value stored under key, accepting both JSON
// numbers and quoted strings.
func GetInt(doc Document, key string) (int, bool) {
	f, ok := GetNumber(doc, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}
