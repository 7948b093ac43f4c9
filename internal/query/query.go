package query

import (
	"strings"

	"gorm.io/gorm"

	"jobtracker/internal/models"
)

// SortField is one of the allow-listed columns a listing may be ordered by.
// Anything outside the allow-list resolves to SortAppliedDate.
type SortField string

const (
	SortAppliedDate SortField = "applied_date"
	SortCreatedAt   SortField = "created_at"
	SortCompany     SortField = "company"
	SortStatus      SortField = "status"
)

// Direction is the resolved sort direction. Only "asc" maps to Asc;
// every other token defaults to Desc.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Params is a validated set of listing parameters. Build it with Parse;
// the zero value lists everything in the default order.
type Params struct {
	Statuses  []models.Status
	Search    string
	SortBy    SortField
	Direction Direction
}

// Parse normalizes untrusted request parameters into Params. It never
// fails: unknown sort fields and direction tokens fall back to the
// defaults, blank status entries are dropped, and search text is trimmed
// (whitespace-only treated as absent). Stale client state degrades
// rather than erroring.
func Parse(statuses []string, search, sortBy, direction string) Params {
	p := Params{
		Search:    strings.TrimSpace(search),
		SortBy:    resolveSortField(sortBy),
		Direction: resolveDirection(direction),
	}
	for _, s := range statuses {
		if s = strings.TrimSpace(s); s != "" {
			p.Statuses = append(p.Statuses, models.Status(s))
		}
	}
	return p
}

func resolveSortField(s string) SortField {
	switch s {
	case "appliedDate", "applied_date":
		return SortAppliedDate
	case "createdAt", "created_at":
		return SortCreatedAt
	case "company":
		return SortCompany
	case "status":
		return SortStatus
	default:
		return SortAppliedDate
	}
}

func resolveDirection(s string) Direction {
	if strings.TrimSpace(s) == "asc" {
		return Asc
	}
	return Desc
}

// Apply constrains db to the given user's applications, filtered and
// ordered per the params. User-supplied values only ever travel as bound
// parameters; the ORDER BY fragments are fixed strings keyed by the
// resolved allow-list field and direction.
func (p Params) Apply(db *gorm.DB, userID uint) *gorm.DB {
	tx := db.Model(&models.Application{}).Where("user_id = ?", userID)

	switch len(p.Statuses) {
	case 0:
	case 1:
		tx = tx.Where("status = ?", p.Statuses[0])
	default:
		tx = tx.Where("status IN ?", p.Statuses)
	}

	if p.Search != "" {
		like := "%" + p.Search + "%"
		tx = tx.Where("(LOWER(company) LIKE LOWER(?) OR LOWER(title) LIKE LOWER(?))", like, like)
	}

	dir := string(p.Direction)
	if p.SortBy == SortAppliedDate {
		// Rows without an applied date sort last in both directions,
		// then by date, then by id as a deterministic tie-breaker.
		tx = tx.Order("(applied_date IS NULL) ASC").
			Order("applied_date " + dir).
			Order("id " + dir)
	} else {
		tx = tx.Order(string(p.SortBy) + " " + dir).Order("id " + dir)
	}
	return tx
}
