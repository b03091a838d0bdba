// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/forkeys/models"
)

const (
	kvTable            = "kv_store"
	registrationsTable = "registrations"

	kvUpsertSuffix = `ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	registrationUpsertSuffix = `ON CONFLICT (email) DO UPDATE SET
		question = excluded.question,
		answer = excluded.answer,
		updated_at = excluded.updated_at`
)

func (db *DB) buildGetValueQuery(key string) (string, []any, error) {
	return db.builder().
		Select("value").
		From(kvTable).
		Where("name = ?", key).
		ToSql()
}

func (db *DB) buildPutValueQuery(key, value string, updatedAt int64) (string, []any, error) {
	return db.builder().
		Insert(kvTable).
		Columns("name", "value", "updated_at").
		Values(key, value, updatedAt).
		Suffix(kvUpsertSuffix).
		ToSql()
}

func (db *DB) buildDeleteValueQuery(key string) (string, []any, error) {
	return db.builder().
		Delete(kvTable).
		Where("name = ?", key).
		ToSql()
}

func (db *DB) buildUpsertRegistrationQuery(reg models.Registration) (string, []any, error) {
	return db.builder().
		Insert(registrationsTable).
		Columns("email", "question", "answer", "created_at", "updated_at").
		Values(reg.Email, reg.Question, reg.Answer, reg.CreatedAt, reg.UpdatedAt).
		Suffix(registrationUpsertSuffix).
		ToSql()
}

func (db *DB) buildFindRegistrationQuery(email string) (string, []any, error) {
	return db.builder().
		Select("email", "question", "answer", "created_at", "updated_at").
		From(registrationsTable).
		Where("email = ?", email).
		ToSql()
}
