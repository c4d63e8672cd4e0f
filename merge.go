package pathbus

// deepMerge implements the deep-merge contract used by the dispatcher to
// compose handler Args: a new mapping is returned, neither input is
// mutated, a key recurses only when both sides hold a plain map[string]any
// at that key, and otherwise the value from high wins wholesale (including
// when either side is a list, a scalar, or nil - lists are always replaced,
// never concatenated).
//
// This is hand-rolled on the standard library rather than routed through
// dario.cat/mergo (used elsewhere in this module for Config composition,
// see config.go) because mergo mutates its destination argument in place
// and treats Go zero values as "absent" when deciding whether to override -
// both of which would break the non-mutating, present-but-zero-value-still-
// overridable contract this merge needs to honor.
func deepMerge(low, high map[string]any) map[string]any {
	out := make(map[string]any, len(low)+len(high))
	for k, v := range low {
		out[k] = v
	}
	for k, hv := range high {
		lv, exists := out[k]
		if !exists {
			out[k] = hv
			continue
		}
		lowMap, lowOK := lv.(map[string]any)
		highMap, highOK := hv.(map[string]any)
		if lowOK && highOK {
			out[k] = deepMerge(lowMap, highMap)
			continue
		}
		out[k] = hv
	}
	return out
}
