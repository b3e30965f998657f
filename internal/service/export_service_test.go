package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Kunal7725/QR-Attendence/config"
	"github.com/Kunal7725/QR-Attendence/internal/model"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *accountFixture) {
	store, repo := newMockStore()
	now := &fakeNow{t: at(10, 10, 0, 0)}
	clock := NewClock(ist, now.now)
	attendance := NewAttendanceService(&config.AttendanceConfig{QRExpiryTime: "23:59"}, repo, clock, alwaysLocker{}, zap.NewNop())
	f := &accountFixture{
		svc:        NewAccountService(repo, clock, zap.NewNop()),
		attendance: attendance,
		store:      store,
		now:        now,
	}
	return NewExportService(repo, attendance, clock, zap.NewNop()), f
}

// ── ExportRoster 测试 ──

func TestExportService_ExportRoster(t *testing.T) {
	svc, f := setupTestExportService()
	admin := f.store.addAdmin("Asha", "Bright Coaching")
	s1 := f.store.addStudent("Ravi", "R-01", model.StudentStatusActive)
	s2 := f.store.addStudent("Zoya", "R-02", model.StudentStatusActive)
	f.markPresent(t, admin.AdminID, s1.StudentID)
	f.markPresent(t, admin.AdminID, s2.StudentID)
	f.now.set(at(11, 9, 0, 0))
	f.markPresent(t, admin.AdminID, s2.StudentID)

	buf, filename, err := svc.ExportRoster(context.Background(), admin.AdminID, "")
	if err != nil {
		t.Fatalf("ExportRoster 应成功: %v", err)
	}
	if filename != "attendance_11-03-2026.xlsx" {
		t.Errorf("文件名不符合预期: %s", filename)
	}

	xf, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer xf.Close()

	rows, err := xf.GetRows("Attendance")
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("期望 标题+表头+2 行数据，实际 %d 行", len(rows))
	}
	if rows[0][0] != "Bright Coaching - 11/03/2026" {
		t.Errorf("标题不符合预期: %q", rows[0][0])
	}
	if strings.Join(rows[2], "|") != "R-01|Ravi|Absent|-" {
		t.Errorf("第 1 行数据不符合预期: %v", rows[2])
	}
	if strings.Join(rows[3], "|") != "R-02|Zoya|Present|09:00 AM" {
		t.Errorf("第 2 行数据不符合预期: %v", rows[3])
	}
}

func TestExportService_ExportRoster_Errors(t *testing.T) {
	svc, f := setupTestExportService()
	admin := f.store.addAdmin("Asha", "Bright Coaching")

	if _, _, err := svc.ExportRoster(context.Background(), uuid.NewString(), ""); !errors.Is(err, ErrAdminNotFound) {
		t.Errorf("未知管理员期望 ErrAdminNotFound，实际: %v", err)
	}
	if _, _, err := svc.ExportRoster(context.Background(), admin.AdminID, "31-12-2026"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("非法日期期望 ErrInvalidDate，实际: %v", err)
	}
}

// ── ExportCalendar 测试 ──

func TestExportService_ExportCalendar(t *testing.T) {
	svc, f := setupTestExportService()
	admin := f.store.addAdmin("Asha", "Bright Coaching")
	student := f.store.addStudent("Ravi", "R-01", model.StudentStatusActive)
	f.markPresent(t, admin.AdminID, student.StudentID)
	f.now.set(at(11, 9, 0, 0))
	f.markPresent(t, admin.AdminID, student.StudentID)

	buf, err := svc.ExportCalendar(context.Background(), student.StudentID)
	if err != nil {
		t.Fatalf("ExportCalendar 应成功: %v", err)
	}
	body := buf.String()
	if !strings.HasPrefix(body, "BEGIN:VCALENDAR") {
		t.Errorf("输出应为 iCalendar: %.40s", body)
	}
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("期望 2 个事件，实际 %d", n)
	}
	for _, want := range []string{"SUMMARY:Present - Bright Coaching", "DTSTART;VALUE=DATE:20260310", "DTSTART;VALUE=DATE:20260311"} {
		if !strings.Contains(body, want) {
			t.Errorf("日历缺少 %q", want)
		}
	}
}

func TestExportService_ExportCalendar_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, err := svc.ExportCalendar(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("无记录时应返回空日历: %v", err)
	}
	if strings.Contains(buf.String(), "BEGIN:VEVENT") {
		t.Error("无记录时不应包含事件")
	}
}
