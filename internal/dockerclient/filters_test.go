package dockerclient

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildEventsFiltersRewritesIdAndName(t *testing.T) {
	result := BuildEventsFilters(map[string][]string{
		"id":   {"abc123"},
		"name": {"nginx"},
	})
	require.ElementsMatch(t, []string{"abc123", "nginx"}, result.Args.Get("container"))
	require.Empty(t, result.Dropped)
}

func TestBuildEventsFiltersDropsIncompatibleKeys(t *testing.T) {
	result := BuildEventsFilters(map[string][]string{
		"status":   {"running"},
		"ancestor": {"nginx:latest"},
		"label":    {"env=prod"},
	})
	sort.Strings(result.Dropped)
	require.Equal(t, []string{"ancestor", "status"}, result.Dropped)
	require.ElementsMatch(t, []string{"env=prod"}, result.Args.Get("label"))
}

func TestBuildListingFiltersKeepsAllKeys(t *testing.T) {
	args := BuildListingFilters(map[string][]string{
		"status": {"running", "paused"},
		"label":  {"env=prod"},
	})
	require.ElementsMatch(t, []string{"running", "paused"}, args.Get("status"))
	require.ElementsMatch(t, []string{"env=prod"}, args.Get("label"))
}

func TestParseFilterSpecsSplitsOnFirstEquals(t *testing.T) {
	kv := ParseFilterSpecs([]string{"label=env=prod", "status=running", "malformed"})
	require.ElementsMatch(t, []string{"env=prod"}, kv["label"])
	require.ElementsMatch(t, []string{"running"}, kv["status"])
	require.NotContains(t, kv, "malformed")
}

func TestParseFilterSpecsCombinesSameKey(t *testing.T) {
	kv := ParseFilterSpecs([]string{"status=running", "status=paused"})
	require.ElementsMatch(t, []string{"running", "paused"}, kv["status"])
}
