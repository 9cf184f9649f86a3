package sitespec

import (
	"fmt"
	"sort"

	libinjection "github.com/corazawaf/libinjection-go"
)

// ContentViolation reports a string value inside a transformed block that
// carries an injection payload. The generator output is untrusted and the
// block content ends up rendered in tenant sites, so XSS payloads must never
// reach the datastore.
type ContentViolation struct {
	BlockID string // ID of the offending block
	Path    string // field path inside the block content
	Value   string // the value that was flagged
}

// ScreenBlocks checks every string value in the transformed blocks for XSS
// payloads. Returns one violation per flagged value; an empty result means
// the blocks are safe to persist.
func ScreenBlocks(blocks []TransformedBlock) []ContentViolation {
	var violations []ContentViolation
	for _, block := range blocks {
		screenValue(block.ID, "content", block.Content, &violations)
	}
	return violations
}

func screenValue(blockID, path string, value any, violations *[]ContentViolation) {
	switch v := value.(type) {
	case string:
		if libinjection.IsXSS(v) {
			*violations = append(*violations, ContentViolation{
				BlockID: blockID,
				Path:    path,
				Value:   v,
			})
		}
	case map[string]any:
		// Deterministic walk order keeps the first reported violation stable.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			screenValue(blockID, path+"."+k, v[k], violations)
		}
	case []any:
		for i, item := range v {
			screenValue(blockID, fmt.Sprintf("%s[%d]", path, i), item, violations)
		}
	case []map[string]any:
		for i, item := range v {
			screenValue(blockID, fmt.Sprintf("%s[%d]", path, i), item, violations)
		}
	case []string:
		for i, item := range v {
			screenValue(blockID, fmt.Sprintf("%s[%d]", path, i), item, violations)
		}
	}
}
