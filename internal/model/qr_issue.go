package model

// QRIssue 每日二维码签发记录 — 对应 qr_issues
// (admin_id, date) 唯一：同一管理员同一天只签发一次
type QRIssue struct {
	QRIssueID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"           json:"id"`
	AdminID    string `gorm:"type:uuid;not null;uniqueIndex:uk_qr_issues_admin_date"   json:"adminId"`
	Date       string `gorm:"type:varchar(10);not null;uniqueIndex:uk_qr_issues_admin_date" json:"date"`       // DD/MM/YYYY
	ExpiryTime string `gorm:"type:varchar(5);not null"                                 json:"expiryTime"` // HH:MM（24 小时制）
	IsActive   bool   `gorm:"not null;default:true"                                    json:"isActive"`
	BaseModel
}

// TableName 指定表名
func (QRIssue) TableName() string { return "qr_issues" }
