package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsert updates every column of an existing row or inserts a new one.
// gorm's Save falls back to an ON CONFLICT insert, which on MySQL would
// silently rewrite a row that collides on a secondary unique key.
func upsert(tx *gorm.DB, model any, id string, value any) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return tx.Select("*").Omit(clause.Associations).Where("id = ?", id).Updates(value).Error
	}
	return tx.Omit(clause.Associations).Create(value).Error
}

// forUpdate adds SELECT ... FOR UPDATE. SQLite has no row locks; its writers
// are already serialised.
func forUpdate(q *gorm.DB) *gorm.DB {
	if q.Dialector.Name() == "sqlite" {
		return q
	}
	return q.Clauses(clause.Locking{Strength: "UPDATE"})
}
