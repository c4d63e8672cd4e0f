package pathbus

import "strings"

// Pattern is a compiled path-pattern: an ordered sequence of segment
// descriptors plus a flag marking the dedicated root form ("/").
//
// Pattern is immutable after BasePathMatcher returns it and is safe for
// concurrent use by multiple goroutines.
type Pattern struct {
	raw        string
	segments   []Segment
	isRoot     bool
	paramNames []string // in declaration order, for convenience/debugging
}

// String returns the original (pre-normalization) pattern text.
func (p *Pattern) String() string {
	return p.raw
}

// BasePathMatcher compiles pattern into a Pattern. It fails with an error
// wrapping ErrInvalidPattern when the pattern is malformed: an unknown
// suffix, a missing parameter name, an unterminated or invalid character
// class, a duplicate parameter name, or a descriptor placed after a greedy
// ("**"/"+") descriptor that can never be reached. Empty fragments (from
// leading, trailing or doubled slashes) are dropped by normalization before
// parsing, so they are not an error.
func BasePathMatcher(pattern string) (*Pattern, error) {
	normalized := normalizePath(pattern)

	if normalized == "/" {
		return &Pattern{raw: pattern, isRoot: true}, nil
	}

	fragments := splitNonEmpty(normalized)
	segments := make([]Segment, 0, len(fragments))
	seenNames := make(map[string]bool, len(fragments))

	for i, frag := range fragments {
		seg, err := parseSegment(pattern, frag)
		if err != nil {
			return nil, err
		}

		if seg.Kind == KindParam {
			if seenNames[seg.Name] {
				return nil, invalidPattern(pattern, frag, "duplicate parameter name \""+seg.Name+"\"")
			}
			seenNames[seg.Name] = true
		}

		if i > 0 && segments[i-1].Arity.greedy() {
			return nil, invalidPattern(pattern, frag, "segment follows a greedy \"**\"/\"+\" segment and can never match")
		}

		segments = append(segments, seg)
	}

	p := &Pattern{raw: pattern, segments: segments}
	for _, seg := range segments {
		if seg.Kind == KindParam {
			p.paramNames = append(p.paramNames, seg.Name)
		}
	}
	return p, nil
}

// Match runs path against the compiled pattern. The returned MatchResult
// always carries the normalized candidate path; Params and Wildcards are
// empty when Matched is false.
func (p *Pattern) Match(path string) MatchResult {
	normalized := normalizePath(path)

	if p.isRoot {
		return MatchResult{Path: normalized, Matched: normalized == "/"}
	}

	remaining := splitNonEmpty(normalized)
	params := make(map[string]ParamValue)
	var wildcards []string

	for _, seg := range p.segments {
		if len(remaining) == 0 {
			if seg.Arity == ArityOptional {
				continue
			}
			return MatchResult{Path: normalized}
		}

		m, ok := seg.match(remaining)
		if !ok {
			return MatchResult{Path: normalized}
		}

		if m.hasParam {
			params[seg.Name] = m.paramValue
		}
		if m.hasWildcard {
			wildcards = append(wildcards, m.wildcardValues...)
		}
		remaining = m.leftover
	}

	if len(remaining) > 0 {
		return MatchResult{Path: normalized}
	}

	return MatchResult{
		Path:      normalized,
		Params:    params,
		Wildcards: wildcards,
		Matched:   true,
	}
}

// normalizePath lower-cases the input, splits on "/", trims each fragment,
// drops empties, and re-joins with a single leading "/". Matching is
// therefore case-insensitive and ignores leading/trailing/duplicate
// slashes.
func normalizePath(path string) string {
	lower := strings.ToLower(path)
	fragments := splitNonEmpty(lower)
	if len(fragments) == 0 {
		return "/"
	}
	return "/" + strings.Join(fragments, "/")
}

func splitNonEmpty(path string) []string {
	raw := strings.Split(path, "/")
	out := make([]string, 0, len(raw))
	for _, frag := range raw {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		out = append(out, frag)
	}
	return out
}
