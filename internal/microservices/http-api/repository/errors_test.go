package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslate_PgUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "unique_review"}
	err := translate(fmt.Errorf("insert: %w", pgErr))

	var uv *UniqueViolationError
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, "unique_review", uv.Constraint)
	assert.ErrorIs(t, err, pgErr)
}

func TestTranslate_GormDuplicatedKey(t *testing.T) {
	var uv *UniqueViolationError
	assert.True(t, errors.As(translate(gorm.ErrDuplicatedKey), &uv))
	assert.Empty(t, uv.Constraint)
}

func TestTranslate_PassThrough(t *testing.T) {
	assert.Nil(t, translate(nil))

	fk := &pgconn.PgError{Code: "23503"}
	assert.Same(t, error(fk), translate(fk))
	assert.Equal(t, gorm.ErrRecordNotFound, translate(gorm.ErrRecordNotFound))
}

func TestDeleted(t *testing.T) {
	assert.ErrorIs(t, deleted(&gorm.DB{RowsAffected: 0}), gorm.ErrRecordNotFound)
	assert.NoError(t, deleted(&gorm.DB{RowsAffected: 1}))

	boom := errors.New("boom")
	assert.Equal(t, boom, deleted(&gorm.DB{Error: boom}))
}
