package entity

import "time"

type User struct {
	UserID          int        `gorm:"column:UserID;primaryKey;autoIncrement:false" json:"UserID"`
	Role            string     `gorm:"column:Role;type:text" json:"Role"`
	PermissionLevel string     `gorm:"column:PermissionLevel;type:text" json:"PermissionLevel"`
	Email           string     `gorm:"column:Email;type:varchar(255);uniqueIndex" json:"Email"`
	Active          *bool      `gorm:"column:Active;not null;default:true" json:"Active"`
	CreatedAt       *time.Time `gorm:"column:CreatedAt;autoCreateTime" json:"CreatedAt"`
	UpdatedAt       *time.Time `gorm:"column:UpdatedAt;autoUpdateTime" json:"UpdatedAt"`
}

func (User) TableName() string { return "T_Users" }

// Password holds a bcrypt hash for a user. Never serialized.
type Password struct {
	PasswordID   int        `gorm:"column:PasswordID;primaryKey;autoIncrement:false" json:"PasswordID"`
	UserID       *int       `gorm:"column:UserID;uniqueIndex" json:"UserID"`
	PasswordHash string     `gorm:"column:PasswordHash;type:varchar(255)" json:"-"`
	UpdatedAt    *time.Time `gorm:"column:UpdatedAt;autoUpdateTime" json:"UpdatedAt"`
}

func (Password) TableName() string { return "T_Passwords" }

// IsActive treats a missing flag as active, matching the column default.
func (u *User) IsActive() bool {
	return u.Active == nil || *u.Active
}
