// Package sorting imposes a display order on an already-filtered list of
// applications. Records whose status appears in an ordered priority list
// float to the top regardless of sort direction; ties fall through to a
// single typed comparison on the base sort field. The same ordering is
// computed by the web client, so re-fetches and local re-sorts agree.
package sorting

import (
	"sort"
	"strings"

	"jobtracker/internal/models"
	"jobtracker/internal/query"
)

// Order returns records sorted by the compound comparator: one equality
// partition per priority status, in list order, then the base field in
// the given direction. The sort is stable, so records equal on every
// compared key keep their input (server-returned) order.
func Order(records []models.Application, priorities []models.Status, field query.SortField, dir query.Direction) []models.Application {
	out := make([]models.Application, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return compare(out[i], out[j], priorities, field, dir) < 0
	})
	return out
}

// Toggle flips the presence of s in the priority list: absent statuses
// append to the end, present ones are removed with the relative order of
// the remainder preserved. The input slice is not modified.
func Toggle(priorities []models.Status, s models.Status) []models.Status {
	out := make([]models.Status, 0, len(priorities)+1)
	found := false
	for _, p := range priorities {
		if p == s {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		out = append(out, s)
	}
	return out
}

func compare(a, b models.Application, priorities []models.Status, field query.SortField, dir query.Direction) int {
	// Priority partitions are direction-invariant: a matching record
	// ranks first whether the base sort is asc or desc.
	for _, s := range priorities {
		am, bm := a.Status == s, b.Status == s
		switch {
		case am && !bm:
			return -1
		case bm && !am:
			return 1
		case am && bm:
			// Same partition; later priorities cannot separate them.
			return fallback(a, b, field, dir)
		}
	}
	return fallback(a, b, field, dir)
}

func fallback(a, b models.Application, field query.SortField, dir query.Direction) int {
	if field == query.SortAppliedDate {
		// Missing dates sort last in both directions, matching the
		// server's NULL handling.
		an, bn := a.AppliedDate == nil, b.AppliedDate == nil
		switch {
		case an && bn:
			return applyDirection(compareUint(a.ID, b.ID), dir)
		case an:
			return 1
		case bn:
			return -1
		}
	}

	var c int
	switch field {
	case query.SortAppliedDate:
		c = a.AppliedDate.Compare(*b.AppliedDate)
	case query.SortCreatedAt:
		c = a.CreatedAt.Compare(b.CreatedAt)
	case query.SortCompany:
		c = strings.Compare(strings.ToLower(a.Company), strings.ToLower(b.Company))
	case query.SortStatus:
		c = strings.Compare(string(a.Status), string(b.Status))
	}
	if c == 0 {
		c = compareUint(a.ID, b.ID)
	}
	return applyDirection(c, dir)
}

func applyDirection(c int, dir query.Direction) int {
	if dir == query.Desc {
		return -c
	}
	return c
}

func compareUint(a, b uint) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
