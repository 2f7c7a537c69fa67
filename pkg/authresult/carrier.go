package authresult

import (
	"iter"
	"reflect"
)

// Kind identifies the shape of a headers carrier.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindWireHeaders
	KindOrderedMap
	KindRecord
	KindListOfPairs
	KindIterable
)

func (k Kind) String() string {
	switch k {
	case KindWireHeaders:
		return "wire_headers"
	case KindOrderedMap:
		return "ordered_map"
	case KindRecord:
		return "record"
	case KindListOfPairs:
		return "list_of_pairs"
	case KindIterable:
		return "iterable"
	default:
		return "absent"
	}
}

// Pair is a single header key/value entry.
type Pair struct {
	Key   string
	Value any
}

// Headers is the lookup/append/delete fingerprint of a wire-level header
// collection such as http.Header.
type Headers interface {
	Get(key string) string
	Add(key, value string)
	Del(key string)
}

// Optional capabilities probed on carriers.
type (
	multiValuer interface {
		Values(key string) []string
	}
	rawHeaderMap interface {
		Raw() map[string][]string
	}
	entryEnumerator interface {
		Entries() iter.Seq2[string, string]
	}
	rangeMap interface {
		Range(f func(key, value any) bool)
	}
)

// Carrier is a classified headers carrier. The zero value is KindAbsent.
type Carrier struct {
	kind  Kind
	value any
}

// Kind returns the variant of the carrier.
func (c Carrier) Kind() Kind { return c.kind }

// Value returns the underlying carrier value.
func (c Carrier) Value() any { return c.value }

// FromWireHeaders wraps a wire-level header collection.
func FromWireHeaders(h Headers) Carrier {
	if isNil(h) {
		return Carrier{}
	}
	return Carrier{kind: KindWireHeaders, value: h}
}

// FromOrderedMap wraps a map-like value that enumerates its entries through
// Range, such as *sync.Map.
func FromOrderedMap(m interface {
	Range(f func(key, value any) bool)
}) Carrier {
	if isNil(m) {
		return Carrier{}
	}
	return Carrier{kind: KindOrderedMap, value: m}
}

// FromRecord wraps a plain string-keyed record.
func FromRecord[V any](m map[string]V) Carrier {
	if m == nil {
		return Carrier{}
	}
	return Carrier{kind: KindRecord, value: m}
}

// FromPairs wraps an ordered list of key/value pairs.
func FromPairs(pairs []Pair) Carrier {
	if pairs == nil {
		return Carrier{}
	}
	return Carrier{kind: KindListOfPairs, value: pairs}
}

// FromIterable wraps an iterator over key/value pairs.
func FromIterable[V any](seq iter.Seq2[string, V]) Carrier {
	if seq == nil {
		return Carrier{}
	}
	var entries iter.Seq2[string, any] = func(yield func(string, any) bool) {
		for k, v := range seq {
			if !yield(k, v) {
				return
			}
		}
	}
	return Carrier{kind: KindIterable, value: entries}
}

// Classify inspects v and returns the carrier variant it structurally
// matches. Shapes overlap, so the probe order is significant. Values that
// match nothing yield an absent carrier.
func Classify(v any) Carrier {
	if c, ok := v.(Carrier); ok {
		return c
	}
	if isNil(v) {
		return Carrier{}
	}
	// A pointer to a map, such as *http.Header, is classified by its target
	// unless the pointer itself is a header collection or an ordered map.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Map && !isWireHeaders(v) && !isRangeMap(v) {
		v = rv.Elem().Interface()
		if isNil(v) {
			return Carrier{}
		}
	}
	if isWireHeaders(v) {
		return Carrier{kind: KindWireHeaders, value: v}
	}
	if _, ok := v.(rangeMap); ok {
		return Carrier{kind: KindOrderedMap, value: v}
	}
	if isPairList(v) {
		return Carrier{kind: KindListOfPairs, value: v}
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		return Carrier{kind: KindRecord, value: v}
	}
	if isIterable(v) {
		return Carrier{kind: KindIterable, value: v}
	}
	return Carrier{}
}

func isWireHeaders(v any) bool {
	if _, ok := v.(Headers); !ok {
		return false
	}
	if _, ok := v.(entryEnumerator); ok {
		return true
	}
	return reflect.ValueOf(v).Kind() == reflect.Map
}

var pairType = reflect.TypeOf(Pair{})

func isPairList(v any) bool {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	elem := rv.Type().Elem()
	switch {
	case elem == pairType:
		return true
	case elem.Kind() == reflect.Array:
		return elem.Len() == 2
	case elem.Kind() == reflect.Slice:
		return elem.Elem().Kind() != reflect.Uint8
	case elem.Kind() == reflect.Interface:
		for i := range rv.Len() {
			if !isPairShaped(rv.Index(i)) {
				return false
			}
		}
		return true
	}
	return false
}

// isPairShaped reports whether rv holds a Pair or a two-element array or
// slice, regardless of the element types.
func isPairShaped(rv reflect.Value) bool {
	for rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if rv.Type() == pairType {
		return true
	}
	return (rv.Kind() == reflect.Array || rv.Kind() == reflect.Slice) && rv.Len() == 2
}

func isIterable(v any) bool {
	switch v.(type) {
	case iter.Seq2[string, string], func(func(string, string) bool),
		iter.Seq2[string, any], func(func(string, any) bool),
		iter.Seq2[string, []string], func(func(string, []string) bool),
		iter.Seq[Pair], func(func(Pair) bool),
		entryEnumerator:
		return true
	}
	return false
}

func isRangeMap(v any) bool {
	_, ok := v.(rangeMap)
	return ok
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
