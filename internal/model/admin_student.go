package model

import "time"

// AdminStudent 管理员与学生的关联 — 对应 admin_students
// 学生首次在某管理员处签到成功时建立
type AdminStudent struct {
	AdminID   string    `gorm:"type:uuid;primaryKey"                 json:"adminId"`
	StudentID string    `gorm:"type:uuid;primaryKey"                 json:"studentId"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"   json:"createdAt"`
}

// TableName 指定表名
func (AdminStudent) TableName() string { return "admin_students" }
