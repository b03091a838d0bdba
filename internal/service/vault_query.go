package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/forkeys/models"
)

// queryRecords returns a filtered and sorted copy of records.
func queryRecords(records []models.VaultRecord, filter models.RecordFilter) []models.VaultRecord {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]models.VaultRecord, 0, len(records))
	for _, r := range records {
		if r.Hidden && !filter.ShowHidden {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(r.Title), query) &&
			!strings.Contains(strings.ToLower(r.User), query) {
			continue
		}
		out = append(out, r)
	}

	sortRecords(out, filter.Sort)
	return out
}

func sortRecords(records []models.VaultRecord, order models.SortOrder) {
	switch order {
	case models.SortName:
		sort.SliceStable(records, func(i, j int) bool {
			ti, tj := strings.ToLower(records[i].Title), strings.ToLower(records[j].Title)
			if ti != tj {
				return ti < tj
			}
			return lessID(records[i].ID, records[j].ID)
		})
	case models.SortOldest:
		sort.SliceStable(records, func(i, j int) bool {
			return lessID(records[i].ID, records[j].ID)
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return newerID(records[i].ID, records[j].ID)
		})
	}
}

// lessID orders numeric ids ascending. Non-numeric ids come after every
// numeric one and are compared as strings.
func lessID(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// newerID orders numeric ids descending. Non-numeric ids still come last.
func newerID(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na > nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
