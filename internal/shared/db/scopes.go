package db

import (
	"strings"

	"gorm.io/gorm"
)

// Paginate limits a query to one page. A non-positive pageSize leaves the
// query unbounded.
//
//	db.Scopes(db.Paginate(2, 20)).Find(&rows)
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return tx
		}
		if page < 1 {
			page = 1
		}
		return tx.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// OrderBy sorts by column when it appears in allowed, and by fallback
// otherwise. id is always appended as a tie breaker.
func OrderBy(column, direction string, allowed map[string]string, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		col, ok := allowed[column]
		if !ok {
			col = fallback
		}
		dir := "ASC"
		if strings.EqualFold(direction, "desc") {
			dir = "DESC"
		}
		order := col + " " + dir
		if col != "id" {
			order += ", id " + dir
		}
		return tx.Order(order)
	}
}
