package model

// User is an account row, table users.
type User struct {
	UserID       int64  `gorm:"primaryKey;autoIncrement"        json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null"      json:"-"`
	Name         string `gorm:"type:varchar(100);not null"      json:"name"`
	AccessLevel  string `gorm:"type:varchar(20);not null;default:'user'" json:"access_level"` // admin | moderator | user
	TeamID       *int64 `json:"team_id,omitempty"`
	BaseModel

	Team *Team `gorm:"foreignKey:TeamID;references:TeamID" json:"team,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
