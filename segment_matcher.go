package pathbus

import "strings"

// segmentMatch is the outcome of matching one Segment against a prefix of
// the remaining path segments.
type segmentMatch struct {
	leftover       []string
	hasParam       bool
	paramValue     ParamValue
	hasWildcard    bool
	wildcardValues []string
}

// match attempts to consume a prefix of remaining according to s's kind and
// arity. It reports false when the descriptor cannot be satisfied at all
// (the caller's pattern matcher treats that as an overall mismatch).
func (s Segment) match(remaining []string) (segmentMatch, bool) {
	switch s.Kind {
	case KindStatic:
		return s.matchStatic(remaining)
	default:
		switch s.Arity {
		case AritySingle:
			return s.matchSingle(remaining)
		case ArityMultiList:
			return s.matchMulti(remaining, false)
		case ArityMultiString:
			return s.matchMulti(remaining, true)
		case ArityOptional:
			return s.matchOptional(remaining)
		default:
			return segmentMatch{}, false
		}
	}
}

func (s Segment) matchStatic(remaining []string) (segmentMatch, bool) {
	if len(remaining) == 0 || remaining[0] != s.Raw {
		return segmentMatch{}, false
	}
	return segmentMatch{leftover: remaining[1:]}, true
}

func (s Segment) matchSingle(remaining []string) (segmentMatch, bool) {
	if len(remaining) == 0 {
		return segmentMatch{}, false
	}
	v := remaining[0]
	if !s.matchesClass(v) {
		return segmentMatch{}, false
	}
	return s.capture(v, []string{v}, remaining[1:]), true
}

// matchMulti implements both "**" (multi-list) and "+" (multi-string): both
// require at least one segment, both validate every remaining segment
// against the class, and both consume all remaining segments. They differ
// only in how the consumed segments are packaged.
func (s Segment) matchMulti(remaining []string, joined bool) (segmentMatch, bool) {
	if len(remaining) == 0 {
		return segmentMatch{}, false
	}
	for _, seg := range remaining {
		if !s.matchesClass(seg) {
			return segmentMatch{}, false
		}
	}

	captured := append([]string(nil), remaining...)
	if joined {
		joinedVal := strings.Join(captured, "/")
		return s.capture(joinedVal, []string{joinedVal}, nil), true
	}

	m := segmentMatch{leftover: nil}
	if s.Kind == KindParam {
		m.hasParam = true
		m.paramValue = ListParamValue(captured)
	} else {
		m.hasWildcard = true
		m.wildcardValues = captured
	}
	return m, true
}

func (s Segment) matchOptional(remaining []string) (segmentMatch, bool) {
	if len(remaining) == 0 {
		return segmentMatch{}, true
	}
	first := remaining[0]
	if s.HasClass && !s.matchesClass(first) {
		// Skip the descriptor without consuming input.
		return segmentMatch{leftover: remaining}, true
	}
	return s.capture(first, []string{first}, remaining[1:]), true
}

// capture packages a single captured value (scalar for param, one-element
// list for wildcard) together with the leftover segments.
func (s Segment) capture(scalar string, wildcardList []string, leftover []string) segmentMatch {
	m := segmentMatch{leftover: leftover}
	if s.Kind == KindParam {
		m.hasParam = true
		m.paramValue = StringParamValue(scalar)
	} else {
		m.hasWildcard = true
		m.wildcardValues = wildcardList
	}
	return m
}
