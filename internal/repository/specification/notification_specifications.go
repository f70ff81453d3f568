package specification

import "gorm.io/gorm"

type UnreadOnly struct{}

func (s UnreadOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = false")
}

type ByTypeCode struct {
	TypeCode string
}

func (s ByTypeCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type_code = ?", s.TypeCode)
}
