package pathbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DeepMerge_ScalarOverride(t *testing.T) {
	low := map[string]any{"a": 1, "b": 2}
	high := map[string]any{"b": 3, "c": 4}

	out := deepMerge(low, high)

	assert.Equal(t, map[string]any{"a": 1, "b": 3, "c": 4}, out)
}

func Test_DeepMerge_RecursesOnNestedMaps(t *testing.T) {
	low := map[string]any{"nested": map[string]any{"x": 1, "y": 2}}
	high := map[string]any{"nested": map[string]any{"y": 3, "z": 4}}

	out := deepMerge(low, high)

	assert.Equal(t, map[string]any{"x": 1, "y": 3, "z": 4}, out["nested"])
}

func Test_DeepMerge_ListsAreReplacedNotConcatenated(t *testing.T) {
	low := map[string]any{"tags": []string{"a", "b"}}
	high := map[string]any{"tags": []string{"c"}}

	out := deepMerge(low, high)

	assert.Equal(t, []string{"c"}, out["tags"])
}

func Test_DeepMerge_MapVsNonMapOverridesWholesale(t *testing.T) {
	low := map[string]any{"k": map[string]any{"x": 1}}
	high := map[string]any{"k": "scalar now"}

	out := deepMerge(low, high)

	assert.Equal(t, "scalar now", out["k"])
}

func Test_DeepMerge_ZeroValueKeyIsStillOverridable(t *testing.T) {
	low := map[string]any{"topic": ""}
	high := map[string]any{"topic": "resolved"}

	out := deepMerge(low, high)

	assert.Equal(t, "resolved", out["topic"])
}

func Test_DeepMerge_DoesNotMutateArguments(t *testing.T) {
	low := map[string]any{"a": map[string]any{"x": 1}}
	high := map[string]any{"a": map[string]any{"y": 2}}

	lowCopy := map[string]any{"a": map[string]any{"x": 1}}
	highCopy := map[string]any{"a": map[string]any{"y": 2}}

	_ = deepMerge(low, high)

	assert.Equal(t, lowCopy, low)
	assert.Equal(t, highCopy, high)
}
