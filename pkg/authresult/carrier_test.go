package authresult_test

import (
	"iter"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authbridge/pkg/authresult"
)

// enumHeaders is a wire-headers shape without a multi-value accessor.
type enumHeaders struct {
	entries []authresult.Pair
}

func (h *enumHeaders) Get(key string) string {
	for _, e := range h.entries {
		if e.Key == key {
			s, _ := e.Value.(string)
			return s
		}
	}
	return ""
}

func (h *enumHeaders) Add(key, value string) {
	h.entries = append(h.entries, authresult.Pair{Key: key, Value: value})
}

func (h *enumHeaders) Del(key string) {}

func (h *enumHeaders) Entries() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, e := range h.entries {
			s, _ := e.Value.(string)
			if !yield(e.Key, s) {
				return
			}
		}
	}
}

// rawHeaders exposes only a raw header map accessor besides the fingerprint.
type rawHeaders map[string][]string

func (h rawHeaders) Get(key string) string { return "" }
func (h rawHeaders) Add(key, value string) {}
func (h rawHeaders) Del(key string) {}
func (h rawHeaders) Raw() map[string][]string { return h }

func TestClassify(t *testing.T) {
	t.Parallel()

	var syncMap sync.Map
	syncMap.Store("set-cookie", "a=1")

	var nilHeader http.Header
	var nilHeaderPtr *http.Header

	tests := []struct {
		name  string
		value any
		want  authresult.Kind
	}{
		{"nil", nil, authresult.KindAbsent},
		{"typed nil header", nilHeader, authresult.KindAbsent},
		{"http header", http.Header{"Set-Cookie": {"a=1"}}, authresult.KindWireHeaders},
		{"http header pointer", &http.Header{"Set-Cookie": {"a=1"}}, authresult.KindWireHeaders},
		{"nil header pointer", nilHeaderPtr, authresult.KindAbsent},
		{"record pointer", &map[string]string{"set-cookie": "a=1"}, authresult.KindRecord},
		{"enumerable headers", &enumHeaders{}, authresult.KindWireHeaders},
		{"raw header map", rawHeaders{}, authresult.KindWireHeaders},
		{"sync map", &syncMap, authresult.KindOrderedMap},
		{"pairs", []authresult.Pair{{Key: "set-cookie", Value: "a=1"}}, authresult.KindListOfPairs},
		{"string arrays", [][2]string{{"set-cookie", "a=1"}}, authresult.KindListOfPairs},
		{"string slices", [][]string{{"set-cookie", "a=1"}}, authresult.KindListOfPairs},
		{"any pairs", []any{[]any{"set-cookie", "a=1"}}, authresult.KindListOfPairs},
		{"string record", map[string]string{"set-cookie": "a=1"}, authresult.KindRecord},
		{"multi record", map[string][]string{"set-cookie": {"a=1"}}, authresult.KindRecord},
		{"any record", map[string]any{"set-cookie": "a=1"}, authresult.KindRecord},
		{"seq2", iter.Seq2[string, string](func(yield func(string, string) bool) {}), authresult.KindIterable},
		{"pair seq", iter.Seq[authresult.Pair](func(yield func(authresult.Pair) bool) {}), authresult.KindIterable},
		{"plain func", func(yield func(string, any) bool) {}, authresult.KindIterable},
		{"string", "set-cookie: a=1", authresult.KindAbsent},
		{"int", 42, authresult.KindAbsent},
		{"bytes", []byte("a=1"), authresult.KindAbsent},
		{"int keyed map", map[int]string{1: "a=1"}, authresult.KindAbsent},
		{"mixed any slice", []any{"set-cookie", "a=1"}, authresult.KindAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, authresult.Classify(tt.value).Kind())
		})
	}
}

func TestClassify_CarrierPassthrough(t *testing.T) {
	t.Parallel()

	c := authresult.FromPairs([]authresult.Pair{{Key: "Set-Cookie", Value: "a=1"}})
	assert.Equal(t, c, authresult.Classify(c))
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, authresult.KindWireHeaders, authresult.FromWireHeaders(http.Header{}).Kind())
	assert.Equal(t, authresult.KindAbsent, authresult.FromWireHeaders(nil).Kind())
	assert.Equal(t, authresult.KindAbsent, authresult.FromWireHeaders(http.Header(nil)).Kind())
	assert.Equal(t, authresult.KindOrderedMap, authresult.FromOrderedMap(&sync.Map{}).Kind())
	assert.Equal(t, authresult.KindRecord, authresult.FromRecord(map[string]string{}).Kind())
	assert.Equal(t, authresult.KindAbsent, authresult.FromRecord[string](nil).Kind())
	assert.Equal(t, authresult.KindListOfPairs, authresult.FromPairs([]authresult.Pair{}).Kind())
	assert.Equal(t, authresult.KindIterable, authresult.FromIterable(iter.Seq2[string, string](func(func(string, string) bool) {})).Kind())
	assert.Equal(t, "record", authresult.KindRecord.String())
	assert.Equal(t, "absent", authresult.Kind(99).String())
}
