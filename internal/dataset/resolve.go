// Package dataset resolves user-typed dataset names against the platform's
// generated identifiers.
//
// The platform names every user dataset user_custom_<id>_<alias>_content,
// where <id> is the tenant id and <alias> is the name the user chose.
// Users type the alias; mutations need the full identifier.
package dataset

import (
	"fmt"
	"regexp"

	"github.com/asksage-tools/asksage-cli/internal/response"
)

// fullNameRe matches a full platform identifier and captures the alias.
var fullNameRe = regexp.MustCompile(`^user_custom_\d+_(.+)_content$`)

// ListFunc enumerates the caller's dataset identifiers. It is the only
// remote capability the resolver needs.
type ListFunc func() (any, error)

// Resolution is the outcome of resolving a candidate name. Exactly one of
// the branches holds:
//
//   - resolved: Found is true and FullName carries the identifier to use
//   - not found: Found and Fallback are both false
//   - fallback: the listing call failed, so the candidate is assumed to be
//     already fully qualified; Found and Fallback are true
//
// Matches carries every listed identifier that matched the alias pattern.
// More than one entry means the alias was ambiguous and FullName is the
// first match in listing order.
type Resolution struct {
	FullName string
	Found    bool
	Fallback bool
	Matches  []string
}

// Ambiguous reports whether more than one listed identifier matched.
func (r Resolution) Ambiguous() bool {
	return len(r.Matches) > 1
}

// Resolve maps candidate, a short alias or full identifier, to the full
// dataset identifier.
//
// The listing call happens exactly once and is the only side effect. If it
// errors, or its response normalizes to a failure, Resolve degrades to the
// fallback branch rather than failing: a transient listing error must not
// block a mutation the user named by full identifier.
func Resolve(list ListFunc, candidate string) Resolution {
	raw, err := list()
	if err != nil {
		return Resolution{FullName: candidate, Found: true, Fallback: true}
	}
	res := response.Normalize(raw)
	if !res.OK {
		return Resolution{FullName: candidate, Found: true, Fallback: true}
	}

	all := response.StringList(res.Payload)

	// An exact match takes precedence over alias pattern matching.
	for _, name := range all {
		if name == candidate {
			return Resolution{FullName: candidate, Found: true}
		}
	}

	pattern, err := regexp.Compile(`^user_custom_\d+_` + regexp.QuoteMeta(candidate) + `_content$`)
	if err != nil {
		return Resolution{}
	}

	var matches []string
	for _, name := range all {
		if pattern.MatchString(name) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return Resolution{}
	}
	return Resolution{FullName: matches[0], Found: true, Matches: matches}
}

// ExtractShort returns the alias embedded in a full identifier, or the
// input unchanged when it does not follow the platform pattern.
func ExtractShort(fullName string) string {
	if m := fullNameRe.FindStringSubmatch(fullName); m != nil {
		return m[1]
	}
	return fullName
}

// DisplayName renders an identifier for user-facing messages: the short
// name followed by the full identifier in parentheses when they differ.
func DisplayName(fullName string) string {
	short := ExtractShort(fullName)
	if short == fullName {
		return fullName
	}
	return fmt.Sprintf("%s (%s)", short, fullName)
}

// Pair is a full identifier with its extracted short name.
type Pair struct {
	FullName  string `json:"full_name"`
	ShortName string `json:"short_name"`
}

// ListWithShortNames returns every dataset paired with its short name.
// Listing failures degrade to an empty list.
func ListWithShortNames(list ListFunc) []Pair {
	raw, err := list()
	if err != nil {
		return nil
	}
	res := response.Normalize(raw)
	if !res.OK {
		return nil
	}

	names := response.StringList(res.Payload)
	pairs := make([]Pair, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, Pair{FullName: name, ShortName: ExtractShort(name)})
	}
	return pairs
}
