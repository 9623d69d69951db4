/******************************************************************************
 *
 *  Description :
 *
 *    Subscription filters. A filter is a flat set of field predicates matched
 *    against document content. Equal filters on the same collection must map
 *    to the same room, so the room ID is a digest of the canonical encoding.
 *
 *****************************************************************************/

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"reflect"
)

// Filter is a set of field predicates. A document matches when every listed
// field is present in the content and deep-equal to the filter value. The
// empty filter matches every document.
type Filter map[string]any

// RoomId derives the deterministic room ID for this filter on the given
// index and collection. json.Marshal emits map keys in sorted order, which
// makes the encoding canonical: permutations of the same predicates hash to
// the same room.
func (f Filter) RoomId(index, collection string) string {
	encoded, _ := json.Marshal(map[string]any{
		"index":      index,
		"collection": collection,
		"filter":     map[string]any(f),
	})
	digest := sha256.Sum256(encoded)
	return hex.EncodeToString(digest[:])
}

// Match reports whether the document content satisfies every predicate.
// A field absent from the content never matches, even against a nil
// predicate value.
func (f Filter) Match(content map[string]any) bool {
	for field, want := range f {
		got, present := content[field]
		if !present || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// parseFilter extracts the filter from a request body. A missing or nil
// filter is valid and yields the match-all filter; anything other than an
// object is an error.
func parseFilter(body map[string]any) (Filter, bool) {
	if body == nil {
		return Filter{}, true
	}
	raw, present := body["filter"]
	if !present || raw == nil {
		return Filter{}, true
	}
	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	return Filter(fields), true
}
