package creative

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint returns a content-addressed cache key for the merged
// brief+config. The value is canonicalized through a generic JSON round trip
// so that property insertion order never affects the hash; only semantic
// field changes do.
func Fingerprint(brief ProductBrief, cfg GenerationConfig) string {
	merged := map[string]any{}
	mergeInto(merged, brief)
	mergeInto(merged, cfg)
	canonical, err := json.Marshal(merged)
	if err != nil {
		// Both inputs are plain value structs; marshal cannot fail for them.
		canonical = []byte{}
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

// mergeInto flattens a struct's JSON fields into the target map. Go marshals
// map keys in sorted order, which gives the canonical byte form.
func mergeInto(target map[string]any, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return
	}
	for k, val := range fields {
		target[k] = val
	}
}
