package repository

import (
	"curtaincrm/internal/domain"

	"gorm.io/gorm"
)

// ownedBy restricts a query to rows whose owner column matches the caller.
// Administrators see everything. column is always a constant from this
// package, never request input.
func ownedBy(caller domain.Caller, column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if caller.IsAdmin() {
			return db
		}
		return db.Where(column+" = ?", caller.UserID)
	}
}
