package persistence

import "gorm.io/gorm"

// orderByPosition preloads child rows in the order they appear in the document
func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
