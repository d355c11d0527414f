// Package model defines the GORM persistence models mirroring the database
// schema. Mapping to and from domain entities happens in the repositories.
package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Username   string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email      string `gorm:"type:varchar(255);uniqueIndex"`
	Password   string `gorm:"type:varchar(255)"`
	Role       string `gorm:"type:varchar(20);not null;default:USER"`
	Provider   string `gorm:"type:varchar(20)"`
	ProviderID string `gorm:"type:varchar(255)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
