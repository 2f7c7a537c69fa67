package authresult

import (
	"iter"
	"reflect"
	"slices"
	"strings"
)

// HeaderSetCookie is the canonical name of the cookie response header.
const HeaderSetCookie = "Set-Cookie"

// SetCookies returns every raw Set-Cookie value carried by c, in order of
// first occurrence, without duplicates or empty entries. Header names are
// matched case-insensitively. Entries that cannot be coerced to strings are
// skipped.
func SetCookies(c Carrier) []string {
	var found []string
	switch c.kind {
	case KindWireHeaders:
		found = fromWireHeaders(c.value)
	case KindOrderedMap:
		if m, ok := c.value.(rangeMap); ok {
			found = fromEntries(rangeEntries(m))
		}
	case KindRecord:
		found = fromRecord(reflect.ValueOf(c.value))
	case KindListOfPairs:
		found = fromPairList(reflect.ValueOf(c.value))
	case KindIterable:
		found = fromEntries(iterableEntries(c.value))
	}
	return Unique(found)
}

// Unique merges the given cookie lists into one, keeping the first
// occurrence of each exact value and dropping empty strings.
func Unique(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, v := range list {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func isSetCookie(key string) bool {
	return strings.EqualFold(strings.TrimSpace(key), HeaderSetCookie)
}

// fromWireHeaders tries the multi-value accessor first, then a raw header
// map, then a manual scan. A strategy that finds nothing falls through. A
// map-backed collection is always scanned as well, so keys in non-canonical
// case are merged with the canonical ones.
func fromWireHeaders(v any) []string {
	var values []string
	if mv, ok := v.(multiValuer); ok {
		values = mv.Values(HeaderSetCookie)
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Map {
		return Unique(values, fromRecord(rv))
	}
	if len(values) > 0 {
		return values
	}
	if raw, ok := v.(rawHeaderMap); ok {
		if values := fromRecord(reflect.ValueOf(raw.Raw())); len(values) > 0 {
			return values
		}
	}
	if en, ok := v.(entryEnumerator); ok {
		return fromEntries(func(yield func(string, any) bool) {
			for k, val := range en.Entries() {
				if !yield(k, val) {
					return
				}
			}
		})
	}
	return nil
}

func fromRecord(rv reflect.Value) []string {
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})

	var out []string
	for _, k := range keys {
		if !isSetCookie(k.String()) {
			continue
		}
		out = append(out, coerce(rv.MapIndex(k).Interface())...)
	}
	return out
}

func fromPairList(rv reflect.Value) []string {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	var out []string
	for i := range rv.Len() {
		key, value, ok := pairAt(rv.Index(i))
		if !ok || !isSetCookie(key) {
			continue
		}
		out = append(out, coerce(value)...)
	}
	return out
}

func fromEntries(entries iter.Seq2[string, any]) []string {
	if entries == nil {
		return nil
	}
	var out []string
	for k, v := range entries {
		if isSetCookie(k) {
			out = append(out, coerce(v)...)
		}
	}
	return out
}

// pairAt reads a two-element entry: a Pair, a [2]T array or a slice of
// length two whose first element is a string.
func pairAt(rv reflect.Value) (string, any, bool) {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", nil, false
		}
		rv = rv.Elem()
	}
	if rv.Type() == pairType {
		p := rv.Interface().(Pair)
		return p.Key, p.Value, true
	}
	if rv.Kind() != reflect.Array && rv.Kind() != reflect.Slice {
		return "", nil, false
	}
	if rv.Len() != 2 {
		return "", nil, false
	}
	key := rv.Index(0)
	for key.Kind() == reflect.Interface && !key.IsNil() {
		key = key.Elem()
	}
	if key.Kind() != reflect.String {
		return "", nil, false
	}
	return key.String(), rv.Index(1).Interface(), true
}

func rangeEntries(m rangeMap) iter.Seq2[string, any] {
	type entry struct {
		key   string
		value any
	}
	var entries []entry
	m.Range(func(k, v any) bool {
		if key, ok := k.(string); ok {
			entries = append(entries, entry{key: key, value: v})
		}
		return true
	})
	return func(yield func(string, any) bool) {
		for _, e := range entries {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

func iterableEntries(v any) iter.Seq2[string, any] {
	switch seq := v.(type) {
	case iter.Seq2[string, any]:
		return seq
	case func(func(string, any) bool):
		return seq
	case iter.Seq2[string, string]:
		return widen(seq)
	case func(func(string, string) bool):
		return widen[string](seq)
	case iter.Seq2[string, []string]:
		return widen(seq)
	case func(func(string, []string) bool):
		return widen[[]string](seq)
	case iter.Seq[Pair]:
		return pairEntries(seq)
	case func(func(Pair) bool):
		return pairEntries(seq)
	case entryEnumerator:
		return widen(seq.Entries())
	}
	return nil
}

func widen[V any](seq iter.Seq2[string, V]) iter.Seq2[string, any] {
	if seq == nil {
		return nil
	}
	return func(yield func(string, any) bool) {
		for k, v := range seq {
			if !yield(k, v) {
				return
			}
		}
	}
}

func pairEntries(seq iter.Seq[Pair]) iter.Seq2[string, any] {
	if seq == nil {
		return nil
	}
	return func(yield func(string, any) bool) {
		for p := range seq {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// coerce turns a header value into a list of strings. Strings become a
// single entry, string slices pass through, []any keeps its string
// elements. Anything else contributes nothing.
func coerce(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
