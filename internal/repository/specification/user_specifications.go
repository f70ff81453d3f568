package specification

import "gorm.io/gorm"

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ActiveUsers struct{}

func (s ActiveUsers) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "active")
}

type ByPlan struct {
	Plan string
}

func (s ByPlan) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("plan = ?", s.Plan)
}

type SearchByEmailOrName struct {
	Query string
}

func (s SearchByEmailOrName) Apply(db *gorm.DB) *gorm.DB {
	like := "%" + s.Query + "%"
	return db.Where("email ILIKE ? OR full_name ILIKE ?", like, like)
}

// Token Specs

type ByToken struct {
	Token string
}

func (s ByToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token = ?", s.Token)
}

type ByTokenHash struct {
	Hash string
}

func (s ByTokenHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token_hash = ?", s.Hash)
}

type UnusedTokens struct{}

func (s UnusedTokens) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("used = false")
}
