// Package normalize turns raw API payloads into canonical model records.
//
// Every function here is pure and total: unexpected shapes produce empty
// results, never errors or panics.
package normalize

import "sort"

var (
	leadingKeys  = []string{"data"}
	trailingKeys = []string{"items", "results"}
)

// LocateItems finds the array of items inside payload.
//
// It accepts a bare array, an object whose "data", resourceKeys, "items" or
// "results" key holds an array (checked in that order, and one level inside
// "data" when it is an object), or failing that the first array-valued key
// in sorted order. The result is never nil.
func LocateItems(payload any, resourceKeys ...string) []any {
	switch v := payload.(type) {
	case []any:
		return v
	case map[string]any:
		if items, ok := fromKnownKeys(v, resourceKeys); ok {
			return items
		}
		if inner, ok := v["data"].(map[string]any); ok {
			if items, ok := fromKnownKeys(inner, resourceKeys); ok {
				return items
			}
		}
		if items, ok := firstArray(v); ok {
			return items
		}
	}
	return []any{}
}

func fromKnownKeys(obj map[string]any, resourceKeys []string) ([]any, bool) {
	for _, group := range [][]string{leadingKeys, resourceKeys, trailingKeys} {
		for _, key := range group {
			if items, ok := obj[key].([]any); ok {
				return items, true
			}
		}
	}
	return nil, false
}

func firstArray(obj map[string]any) ([]any, bool) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if items, ok := obj[k].([]any); ok {
			return items, true
		}
	}
	return nil, false
}

// Objects keeps only the JSON objects in items.
func Objects(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}
