package view

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

func (b *Builder) labelKeyExpr() string {
	w := &sqlWriter{db: b.db}
	item := w.col("i", "ItemID")
	price := "COALESCE(" + w.col("pr", "PriceID") + ", 0)"
	if b.db.Dialector.Name() == "mysql" {
		return fmt.Sprintf("CONCAT(%s, ':', %s)", item, price)
	}
	return fmt.Sprintf("CAST(%s AS TEXT) || ':' || CAST(%s AS TEXT)", item, price)
}

// StoredViews returns the SQL of each v_ projection keyed by view name.
func (b *Builder) StoredViews() map[string]string {
	w := &sqlWriter{db: b.db}
	labels := "SELECT " + b.labelKeyExpr() + " AS " + w.quote("LabelKey") + ", " + b.LabelsSQL()[len("SELECT "):]
	return map[string]string{
		entity.InventoryFull{}.TableName(): b.InventorySQL(),
		entity.PlantingsFull{}.TableName(): b.PlantingsSQL(),
		entity.LabelData{}.TableName():     labels,
		entity.OrdersFull{}.TableName():    b.OrdersSQL(),
	}
}

// CreateViews creates or replaces every v_ projection.
func (b *Builder) CreateViews(ctx context.Context) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w := &sqlWriter{db: b.db}
		for name, query := range b.StoredViews() {
			stmts := []string{"CREATE OR REPLACE VIEW " + w.quote(name) + " AS " + query}
			if b.db.Dialector.Name() == "sqlite" {
				stmts = []string{"DROP VIEW IF EXISTS " + w.quote(name), "CREATE VIEW " + w.quote(name) + " AS " + query}
			}
			for _, stmt := range stmts {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("create view %s: %w", name, err)
				}
			}
		}
		return nil
	})
}
