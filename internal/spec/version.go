package spec

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Azure-style spec trees version their documents through directory names:
// .../stable/2023-02-01/network.json or .../preview/2022-01-01-preview/x.json.
// Stable strictly outranks preview, and ISO dates compare lexicographically
// within the same qualifier.

type versionQualifier int

const (
	qualifierNone versionQualifier = iota
	qualifierPreview
	qualifierStable
)

type specVersion struct {
	qualifier versionQualifier
	date      string // YYYY-MM-DD, "" when absent
}

var isoDateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// versionOf parses the version qualifier out of a file path. Paths without
// a stable/ or preview/ segment get the zero version, which loses to
// everything dated.
func versionOf(path string) specVersion {
	segs := strings.Split(filepath.ToSlash(filepath.Dir(path)), "/")
	for i := 0; i+1 < len(segs); i++ {
		next := segs[i+1]
		switch segs[i] {
		case "stable":
			if isoDateRE.MatchString(next) {
				return specVersion{qualifier: qualifierStable, date: next[:10]}
			}
		case "preview":
			if isoDateRE.MatchString(next) && strings.HasSuffix(next, "-preview") {
				return specVersion{qualifier: qualifierPreview, date: next[:10]}
			}
		}
	}
	return specVersion{}
}

// newer reports whether a outranks b.
func (a specVersion) newer(b specVersion) bool {
	if a.qualifier != b.qualifier {
		return a.qualifier > b.qualifier
	}
	return a.date > b.date
}

var anyDateRE = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// dateInPath returns the first ISO date embedded anywhere in path, or
// "0000-00-00" when there is none, so that undated paths sort before every
// dated one.
func dateInPath(path string) string {
	if d := anyDateRE.FindString(filepath.ToSlash(path)); d != "" {
		return d
	}
	return "0000-00-00"
}

// LatestByPathDate picks the candidate whose source path embeds the
// lexicographically greatest ISO date, ignoring the stable/preview
// qualifier. Return-type resolution for duplicate names uses this rule.
func LatestByPathDate(candidates []*Definition) *Definition {
	var best *Definition
	for _, c := range candidates {
		if best == nil || dateInPath(c.SourceFile) > dateInPath(best.SourceFile) {
			best = c
		}
	}
	return best
}
