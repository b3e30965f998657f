package model

// 管理员状态
const (
	AdminStatusActive = "Active"
)

// Admin 机构管理员表 — 对应 admins
type Admin struct {
	AdminID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:uk_admins_email" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	CoachingName string `gorm:"type:varchar(200);not null"                     json:"coachingName"`
	Contact      string `gorm:"type:varchar(30);not null"                      json:"contact"`
	Status       string `gorm:"type:varchar(20);not null;default:'Active'"     json:"status"`
	BaseModel
}

// TableName 指定表名
func (Admin) TableName() string { return "admins" }
