package dockerclient

import (
	"strings"

	"github.com/docker/docker/api/types/filters"
)

// ParseFilterSpecs converts "key=value" strings (as accepted by --filter and
// a host's config-file filter list) into the key->values map BuildListingFilters
// and BuildEventsFilters expect. Specs without an "=" are ignored.
func ParseFilterSpecs(specs []string) map[string][]string {
	kv := make(map[string][]string)
	for _, spec := range specs {
		key, value, ok := strings.Cut(spec, "=")
		if !ok {
			continue
		}
		kv[key] = append(kv[key], value)
	}
	return kv
}

// ListingFilterKeys are all filter keys accepted for container listing.
var ListingFilterKeys = map[string]bool{
	"id": true, "name": true, "label": true, "status": true, "ancestor": true,
	"before": true, "since": true, "volume": true, "network": true,
	"publish": true, "expose": true, "health": true, "exited": true,
	"isolation": true, "is-task": true,
}

// eventsFilterKeys are the filter keys the events API accepts unmodified.
var eventsFilterKeys = map[string]bool{"label": true, "network": true, "volume": true}

// BuildListingFilters converts key=value pairs into filters.Args for
// container listing. Same-key values OR; cross-key values AND (the
// semantics filters.Args already implements).
func BuildListingFilters(kv map[string][]string) filters.Args {
	args := filters.NewArgs()
	for key, values := range kv {
		for _, v := range values {
			args.Add(key, v)
		}
	}
	return args
}

// EventsFilterResult is the outcome of translating listing filters into an
// events-subscription filter set.
type EventsFilterResult struct {
	Args    filters.Args
	Dropped []string // filter keys stripped because events doesn't support them
}

// BuildEventsFilters translates listing filter keys into the subset the
// events API accepts, rewriting id/name to container and dropping the rest
// (status, ancestor, before, since, publish, expose, health, exited,
// isolation, is-task) with a one-time diagnostic left to the caller.
func BuildEventsFilters(kv map[string][]string) EventsFilterResult {
	args := filters.NewArgs()
	args.Add("type", "container")

	var dropped []string
	for key, values := range kv {
		targetKey := key
		switch key {
		case "id", "name":
			targetKey = "container"
		default:
			if !eventsFilterKeys[key] {
				dropped = append(dropped, key)
				continue
			}
		}
		for _, v := range values {
			args.Add(targetKey, v)
		}
	}

	return EventsFilterResult{Args: args, Dropped: dropped}
}
