// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/forkeys/models"
)

func validRecord() models.VaultRecord {
	return models.VaultRecord{
		ID:       "1700000000000",
		Title:    "GitHub",
		User:     "octocat",
		Secret:   "s3cret",
		Category: models.CategoryWork,
	}
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewVaultValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}

func TestValidate_Record(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.VaultRecord)
		fields []string
		want   error
	}{
		{name: "valid", mutate: func(*models.VaultRecord) {}},
		{name: "empty category allowed", mutate: func(r *models.VaultRecord) { r.Category = "" }},
		{name: "blank title", mutate: func(r *models.VaultRecord) { r.Title = "   " }, want: ErrTitleRequired},
		{name: "missing id", mutate: func(r *models.VaultRecord) { r.ID = "" }, want: ErrInvalidRecordID},
		{name: "unknown category", mutate: func(r *models.VaultRecord) { r.Category = "games" }, want: ErrInvalidCategory},
		{
			name:   "scoped to title ignores id",
			mutate: func(r *models.VaultRecord) { r.ID = "" },
			fields: []string{FieldTitle},
		},
		{name: "unknown field", mutate: func(*models.VaultRecord) {}, fields: []string{"pass"}, want: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			err := v.Validate(ctx, &r, tt.fields...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_Records(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	a, b := validRecord(), validRecord()
	b.ID = "1700000000001"
	b.Title = ""
	assert.NoError(t, v.Validate(ctx, []models.VaultRecord{a, b}), "legacy titles are not enforced")

	assert.ErrorIs(t, v.Validate(ctx, []models.VaultRecord{a, a}), ErrDuplicateRecords)

	noID := validRecord()
	noID.ID = ""
	assert.ErrorIs(t, v.Validate(ctx, []models.VaultRecord{noID}), ErrInvalidRecordID)

	assert.NoError(t, v.Validate(ctx, []models.VaultRecord{}))
}

func TestIsEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.org", "x+tag@sub.domain.io"}
	invalid := []string{"", "plain", "a@b", "@b.co", "a@.co", "a b@c.de", "a@b.c o"}

	for _, s := range valid {
		assert.True(t, IsEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsEmail(s), s)
	}
}

func TestValidate_RegisterRequest(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	req := models.RegisterRequest{Email: "user@example.com", Question: "Pet?", Answer: "Rex"}
	assert.NoError(t, v.Validate(ctx, req))

	bad := req
	bad.Email = "user"
	assert.ErrorIs(t, v.Validate(ctx, bad), ErrInvalidEmail)

	bad = req
	bad.Question = " "
	assert.ErrorIs(t, v.Validate(ctx, &bad), ErrEmptyQuestion)

	bad = req
	bad.Answer = ""
	assert.ErrorIs(t, v.Validate(ctx, bad), ErrEmptyAnswer)

	// the registry only insists on the e-mail
	assert.NoError(t, v.Validate(ctx, models.RegisterRequest{Email: "user@example.com"}, FieldEmail))
}

func TestValidate_RecoveryEmailRequest(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.RecoveryEmailRequest{Email: " user@example.com "}))
	assert.ErrorIs(t, v.Validate(ctx, &models.RecoveryEmailRequest{}), ErrInvalidEmail)
}

func TestValidate_BackupEnvelope(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	env := models.BackupEnvelope{Version: models.BackupVersion, Verifier: "v", Data: ""}
	assert.NoError(t, v.Validate(ctx, env))

	assert.ErrorIs(t, v.Validate(ctx, models.BackupEnvelope{Verifier: "v"}), ErrInvalidVersion)
	assert.ErrorIs(t, v.Validate(ctx, &models.BackupEnvelope{Version: "1.0"}), ErrEmptyVerifier)
}
