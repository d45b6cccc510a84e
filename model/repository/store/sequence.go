package store

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

// nextID allocates the next primary key for table inside tx. The allocator row
// is locked for the rest of the transaction. A missing row is seeded from the
// table's current MAX(pk), so ids stay sequential across the switch from
// max+1 assignment.
func nextID(tx *gorm.DB, table, pk string) (int64, error) {
	var rows []entity.Sequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(clause.Eq{Column: clause.Column{Name: "Name"}, Value: table}).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return 0, fmt.Errorf("read sequence %s: %w", table, err)
	}

	if len(rows) == 0 {
		var max sql.NullInt64
		row := tx.Table(table).Select("MAX(?)", clause.Column{Name: pk}).Row()
		if err := row.Scan(&max); err != nil {
			return 0, fmt.Errorf("seed sequence %s: %w", table, err)
		}
		seq := entity.Sequence{Name: table, Value: max.Int64 + 1}
		if err := tx.Create(&seq).Error; err != nil {
			return 0, fmt.Errorf("create sequence %s: %w", table, err)
		}
		return seq.Value, nil
	}

	seq := rows[0]
	seq.Value++
	err = tx.Model(&entity.Sequence{}).
		Where(clause.Eq{Column: clause.Column{Name: "Name"}, Value: table}).
		Update("Value", seq.Value).Error
	if err != nil {
		return 0, fmt.Errorf("advance sequence %s: %w", table, err)
	}
	return seq.Value, nil
}

// bumpSequence keeps the allocator ahead of an explicitly supplied id.
func bumpSequence(tx *gorm.DB, table string, id int64) error {
	var rows []entity.Sequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(clause.Eq{Column: clause.Column{Name: "Name"}, Value: table}).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return err
	}
	if len(rows) == 0 || rows[0].Value >= id {
		return nil
	}
	return tx.Model(&entity.Sequence{}).
		Where(clause.Eq{Column: clause.Column{Name: "Name"}, Value: table}).
		Update("Value", id).Error
}
