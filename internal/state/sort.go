package state

import (
	"sort"
	"time"

	"dtop/internal/model"
)

// Rows returns the current filtered+sorted view model: containers grouped
// by HostId (ascending), then ordered within each host group by the active
// SortField/Direction, with insertion order as a stable tiebreak. A
// re-sort recomputes the grouping/ordering; it is
// throttled to once per 3s while dirty was raised only by stat pressure,
// and bypassed immediately by membership or user-driven changes (tracked
// via forceResort).
func (s *State) Rows() []model.ContainerKey {
	if !s.rowsDirty {
		return s.rows
	}
	if !s.forceResort && !s.lastSort.IsZero() && time.Since(s.lastSort) < resortThrottle {
		return s.rows
	}

	s.rows = s.computeRows()
	s.lastSort = time.Now()
	s.rowsDirty = false
	s.forceResort = false
	return s.rows
}

func (s *State) computeRows() []model.ContainerKey {
	type visible struct {
		key   model.ContainerKey
		entry containerEntry
	}

	byHost := make(map[model.HostId][]visible)
	for key, entry := range s.containers {
		if !s.isVisible(entry.container) {
			continue
		}
		byHost[key.HostId] = append(byHost[key.HostId], visible{key: key, entry: entry})
	}

	hosts := make([]model.HostId, 0, len(byHost))
	for h := range byHost {
		hosts = append(hosts, h)
	}
	sort.Slice(hosts, func(i, j int) bool { return hosts[i] < hosts[j] })

	var out []model.ContainerKey
	for _, h := range hosts {
		group := byHost[h]
		sort.SliceStable(group, func(i, j int) bool {
			return s.less(group[i].entry, group[j].entry)
		})
		for _, v := range group {
			out = append(out, v.key)
		}
	}

	if s.Selected >= len(out) {
		s.Selected = len(out) - 1
	}
	if s.Selected < 0 && len(out) > 0 {
		s.Selected = 0
	}

	return out
}

func (s *State) isVisible(c model.Container) bool {
	if !s.ShowAll && c.State != model.StateRunning {
		return false
	}
	return matchesSearch(c, s.Search)
}

// less orders two entries by the active sort field/direction; ties break by
// insertion sequence ascending.
func (s *State) less(a, b containerEntry) bool {
	if cmp := s.compareField(a.container, b.container); cmp != 0 {
		if s.Sort.Direction == model.Desc {
			return cmp > 0
		}
		return cmp < 0
	}
	return a.seq < b.seq
}

// compareField returns <0, 0, >0 comparing a against b on the active field.
func (s *State) compareField(a, b model.Container) int {
	switch s.Sort.Field {
	case model.SortName:
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		default:
			return 0
		}
	case model.SortCPU:
		return compareFloat(a.Stats.CPUPercent, b.Stats.CPUPercent)
	case model.SortMemory:
		return compareFloat(a.Stats.MemoryPercent, b.Stats.MemoryPercent)
	default: // SortUptime
		return compareTime(a.Created, b.Created)
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func (s *State) cycleSortField() {
	next := model.SortField((int(s.Sort.Field) + 1) % 4)
	s.setSortField(next)
}

func (s *State) setSortField(f model.SortField) {
	if f == s.Sort.Field {
		if s.Sort.Direction == model.Asc {
			s.Sort.Direction = model.Desc
		} else {
			s.Sort.Direction = model.Asc
		}
		return
	}
	s.Sort.Field = f
	s.Sort.Direction = model.DefaultDirection(f)
}
