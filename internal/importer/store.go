package importer

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore writes rows with gorm batch inserts.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) InsertBatch(ctx context.Context, table string, rows any, batchSize int) error {
	return s.db.WithContext(ctx).
		Table(table).
		Omit(clause.Associations).
		CreateInBatches(rows, batchSize).Error
}

// ResetSequence moves the table's id sequence past the largest imported
// id, so rows created through the API do not collide with fixtures.
func (s *GormStore) ResetSequence(ctx context.Context, table string) error {
	quoted := s.db.Statement.Quote(table)
	sql := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence(?, 'id'), COALESCE((SELECT MAX(id) FROM %s), 1), (SELECT MAX(id) FROM %s) IS NOT NULL)",
		quoted, quoted,
	)
	return s.db.WithContext(ctx).Exec(sql, table).Error
}
