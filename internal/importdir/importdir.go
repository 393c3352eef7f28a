// Package importdir scans raw GraphQL source text for the tool's
// import-directive comments, before any GraphQL parsing happens.
package importdir

import (
	"regexp"
	"sort"
)

// What distinguishes a star-import ("import * from ...") from a named
// import ("import { a, b } from ...").
type What struct {
	All   bool
	Names []string
}

// Spec is one parsed import directive.
type Spec struct {
	From string
	What What
}

var (
	starImportRe = regexp.MustCompile(`import\s*\*\s*from\s*"([^"]+)"`)
	namedImportRe = regexp.MustCompile(`import\s*\{\s*([A-Za-z0-9_,\s]+?)\s*\}\s*from\s*"([^"]+)"`)
	identRe       = regexp.MustCompile(`[A-Za-z0-9_]+`)
)

type located struct {
	pos  int
	spec Spec
}

// Scan extracts every import directive from raw source text, in the order
// they appear. Malformed directives are silently ignored — the GraphQL
// parser rejects a truly broken file later. Whitespace around tokens is
// flexible; only `[A-Za-z0-9_]+` identifiers are accepted inside braces.
func Scan(source string) []Spec {
	var found []located

	for _, idx := range namedImportRe.FindAllStringSubmatchIndex(source, -1) {
		namesRaw := source[idx[2]:idx[3]]
		from := source[idx[4]:idx[5]]
		names := identRe.FindAllString(namesRaw, -1)
		if len(names) == 0 {
			continue
		}
		found = append(found, located{pos: idx[0], spec: Spec{From: from, What: What{Names: names}}})
	}

	for _, idx := range starImportRe.FindAllStringSubmatchIndex(source, -1) {
		from := source[idx[2]:idx[3]]
		found = append(found, located{pos: idx[0], spec: Spec{From: from, What: What{All: true}}})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	if len(found) == 0 {
		return nil
	}
	specs := make([]Spec, len(found))
	for i, f := range found {
		specs[i] = f.spec
	}
	return specs
}
