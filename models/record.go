package models

import (
	"strconv"
	"time"
)

// Category groups vault records for filtering in the record list.
type Category string

const (
	CategorySocial   Category = "social"
	CategoryEmail    Category = "email"
	CategoryFinance  Category = "finance"
	CategoryShopping Category = "shopping"
	CategoryWork     Category = "work"
	CategoryServer   Category = "server"
	CategoryOther    Category = "other"
)

// Categories lists every accepted [Category] in display order.
var Categories = []Category{
	CategorySocial,
	CategoryEmail,
	CategoryFinance,
	CategoryShopping,
	CategoryWork,
	CategoryServer,
	CategoryOther,
}

// IsValid reports whether c is one of [Categories].
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// VaultRecord is a single secret entry of the vault.
//
// The JSON layout is the one found inside the encrypted vault blob and inside
// backup files, so field names must stay stable. Secret is serialized as
// "pass" for compatibility with backups produced by earlier releases.
type VaultRecord struct {
	// ID is unique within a vault. Conventionally the creation time in unix
	// milliseconds, see [NewRecordID].
	ID string `json:"id"`

	// Title is the only required field.
	Title string `json:"title"`

	// User is the account identifier (login, e-mail, card holder...).
	User string `json:"user"`

	// Secret is the password or other secret value.
	Secret string `json:"pass"`

	Note     string   `json:"note"`
	Category Category `json:"category"`

	// Hidden records are left out of listings unless explicitly requested.
	Hidden bool `json:"hidden"`
}

// NewRecordID returns the conventional id for a record created at t.
func NewRecordID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
