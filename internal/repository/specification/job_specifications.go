package specification

import "gorm.io/gorm"

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type SearchByCompanyOrPosition struct {
	Query string
}

func (s SearchByCompanyOrPosition) Apply(db *gorm.DB) *gorm.DB {
	like := "%" + s.Query + "%"
	return db.Where("company ILIKE ? OR position ILIKE ?", like, like)
}
