package database

import (
	"gorm.io/gorm"
)

// WithTransaction runs fn inside a transaction on db, committing on nil and
// rolling back on error or panic. Every multi-row mutation (trade execution,
// signup) goes through here so partial state is never observable.
func WithTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) (err error) {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err = fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
