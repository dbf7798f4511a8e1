package entity

import "time"

// DbToken binds an opaque key to exactly one user.
type DbToken struct {
	Key       string    `gorm:"column:key;type:varchar(40);primaryKey" json:"key"`
	UserID    uint      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	User      DbUser    `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (DbToken) TableName() string {
	return "auth_tokens"
}
