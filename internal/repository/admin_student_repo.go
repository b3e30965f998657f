package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kunal7725/QR-Attendence/internal/model"
)

// AdminStudentRepository 管理员-学生关联数据访问接口
type AdminStudentRepository interface {
	// Link 建立关联，已存在时不做任何事
	Link(ctx context.Context, adminID, studentID string) error
	ListStudentIDs(ctx context.Context, adminID string) ([]string, error)
	CountStudents(ctx context.Context, adminID string) (int64, error)
	CountStudentsByStatus(ctx context.Context, adminID, status string) (int64, error)
}

type adminStudentRepo struct {
	db *gorm.DB
}

// NewAdminStudentRepo 创建 AdminStudentRepository 实例
func NewAdminStudentRepo(db *gorm.DB) AdminStudentRepository {
	return &adminStudentRepo{db: db}
}

func (r *adminStudentRepo) Link(ctx context.Context, adminID, studentID string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.AdminStudent{AdminID: adminID, StudentID: studentID}).Error
}

func (r *adminStudentRepo) ListStudentIDs(ctx context.Context, adminID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.AdminStudent{}).
		Where("admin_id = ?", adminID).
		Order("created_at ASC").
		Pluck("student_id", &ids).Error
	return ids, err
}

func (r *adminStudentRepo) CountStudents(ctx context.Context, adminID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AdminStudent{}).
		Where("admin_id = ?", adminID).
		Count(&count).Error
	return count, err
}

func (r *adminStudentRepo) CountStudentsByStatus(ctx context.Context, adminID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AdminStudent{}).
		Joins("JOIN students ON students.student_id = admin_students.student_id").
		Where("admin_students.admin_id = ? AND students.status = ?", adminID, status).
		Count(&count).Error
	return count, err
}
