package normalize

import (
	"log/slog"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

var (
	timeType        = reflect.TypeOf(time.Time{})
	stringSliceType = reflect.TypeOf([]string(nil))
	flagMapType     = reflect.TypeOf(map[string]bool(nil))
)

// leadingNumber finds the first number in values like "3 beds" or "Rs 45000".
var leadingNumber = regexp.MustCompile(`-?[0-9]+(\.[0-9]+)?`)

// Keys read, in order, when a list element is an object instead of a string.
var listItemKeys = []string{"url", "secure_url", "src", "path", "name", "title", "label"}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Decode copies raw into out, matching keys against json struct tags and
// converting loosely typed values ("3" into an int, 12 into a string).
//
// Fields that fail to convert are left at their zero value and the rest of
// the record is still filled; the failure is returned for logging.
func Decode(raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			lenientTimeHook,
			numericStringHook,
			stringListHook,
			flagMapHook,
		),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// decodeLogged runs Decode and logs partial failures at debug level.
func decodeLogged(kind string, raw map[string]any, out any) {
	if err := Decode(raw, out); err != nil {
		slog.Debug("Partially decoded record", "kind", kind, "error", err)
	}
}

// lenientTimeHook parses timestamps from strings or epoch milliseconds.
// Unparseable values become the zero time.
func lenientTimeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return ParseTime(v), nil
	case float64:
		return time.UnixMilli(int64(v)).UTC(), nil
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case int:
		return time.UnixMilli(int64(v)).UTC(), nil
	case nil:
		return time.Time{}, nil
	}
	return data, nil
}

// numericStringHook reads numbers written for people: "5,000,000" or
// "3 beds". Strings without any digits become 0.
func numericStringHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return parseNumber(s), nil
	default:
		return data, nil
	}
}

func parseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	f, err := strconv.ParseFloat(leadingNumber.FindString(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// stringListHook accepts lists of objects ({"url": "..."}) and flag maps
// where a list of strings is expected.
func stringListHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != stringSliceType {
		return data, nil
	}
	switch v := data.(type) {
	case []any:
		return listItems(v), nil
	case map[string]any:
		return enabledKeys(v), nil
	}
	return data, nil
}

// flagMapHook turns a list of names, or a comma separated string, into a
// set of enabled flags.
func flagMapHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != flagMapType {
		return data, nil
	}
	var names []string
	switch v := data.(type) {
	case []any:
		names = listItems(v)
	case string:
		names = strings.Split(v, ",")
	case map[string]any:
		flags := make(map[string]bool, len(v))
		for k, val := range v {
			flags[k] = enabled(val)
		}
		return flags, nil
	default:
		return data, nil
	}
	flags := make(map[string]bool, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			flags[name] = true
		}
	}
	return flags, nil
}

func listItems(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			if s := String(obj, listItemKeys...); s != "" {
				out = append(out, s)
			}
			continue
		}
		out = append(out, Strings([]any{item})...)
	}
	return out
}

func enabledKeys(flags map[string]any) []string {
	out := make([]string, 0, len(flags))
	for k, v := range flags {
		if enabled(v) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func enabled(v any) bool {
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "y", "available", "on":
			return true
		}
	}
	return cast.ToBool(v)
}

// ParseTime parses the timestamp formats the backend emits.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// String returns the first key holding a non-empty scalar, as a trimmed string.
func String(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if _, isMap := v.(map[string]any); isMap {
			continue
		}
		if _, isSlice := v.([]any); isSlice {
			continue
		}
		if s := strings.TrimSpace(cast.ToString(v)); s != "" {
			return s
		}
	}
	return ""
}

// Number returns the first key holding a non-zero numeric value, else 0.
// Numeric strings are accepted.
func Number(raw map[string]any, keys ...string) float64 {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString {
			v = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		}
		f, err := cast.ToFloat64E(v)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if f != 0 {
			return f
		}
	}
	return 0
}

// Int is Number rounded to the nearest integer.
func Int(raw map[string]any, keys ...string) int {
	return int(math.Round(Number(raw, keys...)))
}

// ImagePaths reads an image list whose elements may be paths or objects
// carrying the path under url, src or path.
func ImagePaths(v any) []string {
	if items, ok := v.([]any); ok {
		return listItems(items)
	}
	if obj, ok := v.(map[string]any); ok {
		return Strings(String(obj, listItemKeys...))
	}
	return Strings(v)
}

// Strings reads a list of strings. A lone string becomes a one-element list.
// The result is never nil.
func Strings(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case string:
		if strings.TrimSpace(t) == "" {
			return []string{}
		}
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch item.(type) {
			case map[string]any, []any, nil:
				continue
			}
			if s := strings.TrimSpace(cast.ToString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

// Object returns v as a JSON object, or nil.
func Object(v any) map[string]any {
	m, err := cast.ToStringMapE(v)
	if err != nil || len(m) == 0 {
		return nil
	}
	return m
}
