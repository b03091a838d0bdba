package models

// SortOrder selects how a record listing is ordered.
type SortOrder string

const (
	// SortNewest orders by numeric id, highest first.
	SortNewest SortOrder = "newest"
	// SortOldest orders by numeric id, lowest first.
	SortOldest SortOrder = "oldest"
	// SortName orders by title, case-insensitively.
	SortName SortOrder = "name"
)

// RecordFilter narrows and orders a record listing. The zero value lists all
// visible records, newest first.
type RecordFilter struct {
	// Query is matched case-insensitively against Title and User.
	Query string

	// Category limits the listing to one category. Empty means all.
	Category Category

	// ShowHidden includes records flagged as hidden.
	ShowHidden bool

	Sort SortOrder
}
