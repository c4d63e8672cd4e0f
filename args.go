package pathbus

import "fmt"

// ParamValue is a tagged union holding either a single string (the common
// case for "single", "optional" and "multi-string" arities) or a list of
// strings (the "multi-list" arity). Modeling this as a concrete struct
// instead of an `any` keeps consumers from needing a type switch on
// interface{} - they branch on IsList.
type ParamValue struct {
	IsList bool
	scalar string
	list   []string
}

// StringParamValue builds a scalar ParamValue.
func StringParamValue(s string) ParamValue {
	return ParamValue{scalar: s}
}

// ListParamValue builds a list ParamValue.
func ListParamValue(vs []string) ParamValue {
	return ParamValue{IsList: true, list: append([]string(nil), vs...)}
}

// Scalar returns the string value. It panics if IsList is true; callers
// that don't already know the arity should check IsList first.
func (v ParamValue) Scalar() string {
	if v.IsList {
		panic("pathbus: ParamValue.Scalar() called on a list value")
	}
	return v.scalar
}

// List returns the list value. It panics if IsList is false.
func (v ParamValue) List() []string {
	if !v.IsList {
		panic("pathbus: ParamValue.List() called on a scalar value")
	}
	return v.list
}

// Any returns the value as string or []string, for callers that prefer a
// loosely typed view (e.g. when composing Args for a handler).
func (v ParamValue) Any() any {
	if v.IsList {
		return v.list
	}
	return v.scalar
}

func (v ParamValue) String() string {
	if v.IsList {
		return fmt.Sprintf("%v", v.list)
	}
	return v.scalar
}

// MatchResult is the outcome of matching a path against a compiled Pattern.
type MatchResult struct {
	Path      string // normalized candidate path
	Params    map[string]ParamValue
	Wildcards []string
	Matched   bool
}

// Args is the mapping handlers receive: reserved keys "topic" and "_",
// named params captured from the pattern, and whatever the publisher
// supplied. Reserved keys always win; see buildArgs for the precedence
// order.
type Args map[string]any
