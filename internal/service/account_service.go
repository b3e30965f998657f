package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kunal7725/QR-Attendence/internal/dto"
	"github.com/Kunal7725/QR-Attendence/internal/model"
	"github.com/Kunal7725/QR-Attendence/internal/repository"
	apperrors "github.com/Kunal7725/QR-Attendence/pkg/errors"
)

var (
	ErrAdminNotFound   = apperrors.New(apperrors.KindNotFound, 12001, "Admin not found")
	ErrStudentNotFound = apperrors.New(apperrors.KindNotFound, 12002, "Student not found")
	ErrPendingApproval = apperrors.New(apperrors.KindPendingApproval, 12003, "Account pending approval")
)

// AccountService 学生账号审批与管理员看板接口
type AccountService interface {
	Approve(ctx context.Context, studentID string) error
	Reject(ctx context.Context, studentID string) error
	// ListPending 全部待审批学生（不区分管理员），按注册时间升序
	ListPending(ctx context.Context) ([]dto.StudentResponse, error)
	AdminStats(ctx context.Context, adminID string) (*dto.AdminStatsResponse, error)
	StudentDetails(ctx context.Context, studentID, adminID string) (*dto.StudentDetailResponse, error)
}

type accountService struct {
	repo   *repository.Repository
	clock  *Clock
	logger *zap.Logger
}

// NewAccountService 创建 AccountService 实例
func NewAccountService(repo *repository.Repository, clock *Clock, logger *zap.Logger) AccountService {
	return &accountService{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

func (s *accountService) Approve(ctx context.Context, studentID string) error {
	return s.setStatus(ctx, studentID, model.StudentStatusActive)
}

func (s *accountService) Reject(ctx context.Context, studentID string) error {
	return s.setStatus(ctx, studentID, model.StudentStatusRejected)
}

func (s *accountService) setStatus(ctx context.Context, studentID, status string) error {
	if !isUUID(studentID) {
		return ErrStudentNotFound
	}
	if err := s.repo.Student.UpdateStatus(ctx, studentID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("更新学生状态失败",
			zap.String("student_id", studentID),
			zap.String("status", status),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("学生状态已更新", zap.String("student_id", studentID), zap.String("status", status))
	return nil
}

func (s *accountService) ListPending(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.ListByStatus(ctx, model.StudentStatusPending)
	if err != nil {
		s.logger.Error("查询待审批学生失败", zap.Error(err))
		return nil, err
	}
	list := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		list = append(list, toStudentResponse(&students[i]))
	}
	return list, nil
}

func (s *accountService) AdminStats(ctx context.Context, adminID string) (*dto.AdminStatsResponse, error) {
	pending, err := s.repo.Student.CountByStatus(ctx, model.StudentStatusPending)
	if err != nil {
		s.logger.Error("统计待审批人数失败", zap.Error(err))
		return nil, err
	}
	stats := &dto.AdminStatsResponse{PendingApprovals: pending}
	if !isUUID(adminID) {
		return stats, nil
	}

	if stats.TotalStudents, err = s.repo.AdminStudent.CountStudents(ctx, adminID); err != nil {
		s.logger.Error("统计关联学生失败", zap.String("admin_id", adminID), zap.Error(err))
		return nil, err
	}
	if stats.ActiveStudents, err = s.repo.AdminStudent.CountStudentsByStatus(ctx, adminID, model.StudentStatusActive); err != nil {
		s.logger.Error("统计已激活学生失败", zap.String("admin_id", adminID), zap.Error(err))
		return nil, err
	}
	if stats.TodayPresent, err = s.repo.Attendance.CountByAdminAndDate(ctx, adminID, s.clock.Today()); err != nil {
		s.logger.Error("统计当日出勤失败", zap.String("admin_id", adminID), zap.Error(err))
		return nil, err
	}
	// 不截断：已激活学生少于当日出勤时为负数
	stats.TodayAbsent = stats.ActiveStudents - stats.TodayPresent
	return stats, nil
}

func (s *accountService) StudentDetails(ctx context.Context, studentID, adminID string) (*dto.StudentDetailResponse, error) {
	if !isUUID(studentID) {
		return nil, ErrStudentNotFound
	}
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	var records []model.AttendanceRecord
	if isUUID(adminID) {
		records, err = s.repo.Attendance.ListByStudentAndAdmin(ctx, studentID, adminID)
		if err != nil {
			s.logger.Error("查询学生考勤失败",
				zap.String("student_id", studentID),
				zap.String("admin_id", adminID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	return &dto.StudentDetailResponse{
		Student:    toStudentResponse(student),
		Attendance: toRecordResponses(records),
		Stats:      ComputeStats(records),
	}, nil
}
