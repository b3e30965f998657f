package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kunal7725/QR-Attendence/internal/model"
	"github.com/Kunal7725/QR-Attendence/internal/repository"
)

var mockEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*model.Admin
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*model.Admin)}
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == admin.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if admin.AdminID == "" {
		admin.AdminID = uuid.NewString()
	}
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.admins[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) ListByIDs(_ context.Context, ids []string) ([]model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Admin
	for _, id := range ids {
		if a, ok := m.admins[id]; ok {
			result = append(result, *a)
		}
	}
	return result, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	mu       sync.Mutex
	seq      int
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.students {
		if s.Email == student.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if student.StudentID == "" {
		student.StudentID = uuid.NewString()
	}
	m.seq++
	student.CreatedAt = mockEpoch.Add(time.Duration(m.seq) * time.Minute)
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.students[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.students {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) UpdateStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

func (m *mockStudentRepo) ListByStatus(_ context.Context, status string) ([]model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Student
	for _, s := range m.students {
		if s.Status == status {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockStudentRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	list, _ := m.ListByStatus(ctx, status)
	return int64(len(list)), nil
}

func (m *mockStudentRepo) ListByIDs(_ context.Context, ids []string) ([]model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Student
	for _, id := range ids {
		if s, ok := m.students[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock QRIssueRepository ──

type mockQRIssueRepo struct {
	mu     sync.Mutex
	issues map[string]*model.QRIssue // key: adminID|date
	// raceWinner 非 nil 时，下一次 Create 模拟并发落败：先写入胜出者再返回唯一冲突
	raceWinner *model.QRIssue
}

func newMockQRIssueRepo() *mockQRIssueRepo {
	return &mockQRIssueRepo{issues: make(map[string]*model.QRIssue)}
}

func (m *mockQRIssueRepo) Create(_ context.Context, issue *model.QRIssue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w := m.raceWinner; w != nil {
		m.raceWinner = nil
		m.issues[w.AdminID+"|"+w.Date] = w
		return gorm.ErrDuplicatedKey
	}
	key := issue.AdminID + "|" + issue.Date
	if _, ok := m.issues[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if issue.QRIssueID == "" {
		issue.QRIssueID = uuid.NewString()
	}
	m.issues[key] = issue
	return nil
}

func (m *mockQRIssueRepo) GetByAdminAndDate(_ context.Context, adminID, date string) (*model.QRIssue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if issue, ok := m.issues[adminID+"|"+date]; ok {
		return issue, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock AttendanceRepository ──
// 与数据库唯一索引一致：(student_id, admin_id, date) 重复写入返回 gorm.ErrDuplicatedKey

type mockAttendanceRepo struct {
	mu      sync.Mutex
	seq     int
	records []*model.AttendanceRecord
	admins  *mockAdminRepo
	// hideExisting 为 true 时 GetByStudentAdminDate 总是返回未找到，模拟检查与写入之间的竞争窗口
	hideExisting bool
}

func newMockAttendanceRepo(admins *mockAdminRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{admins: admins}
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.StudentID == record.StudentID && r.AdminID == record.AdminID && r.Date == record.Date {
			return gorm.ErrDuplicatedKey
		}
	}
	if record.AttendanceID == "" {
		record.AttendanceID = uuid.NewString()
	}
	m.seq++
	record.CreatedAt = mockEpoch.Add(time.Duration(m.seq) * time.Minute)
	cp := *record
	m.records = append(m.records, &cp)
	return nil
}

func (m *mockAttendanceRepo) GetByStudentAdminDate(_ context.Context, studentID, adminID, date string) (*model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hideExisting {
		return nil, gorm.ErrRecordNotFound
	}
	for _, r := range m.records {
		if r.StudentID == studentID && r.AdminID == adminID && r.Date == date {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) filter(keep func(r *model.AttendanceRecord) bool, newestFirst bool) []model.AttendanceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if keep(r) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if newestFirst {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (m *mockAttendanceRepo) ListByStudent(ctx context.Context, studentID string) ([]model.AttendanceRecord, error) {
	result := m.filter(func(r *model.AttendanceRecord) bool { return r.StudentID == studentID }, true)
	for i := range result {
		if a, err := m.admins.GetByID(ctx, result[i].AdminID); err == nil {
			result[i].Admin = a
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByStudentAndAdmin(_ context.Context, studentID, adminID string) ([]model.AttendanceRecord, error) {
	return m.filter(func(r *model.AttendanceRecord) bool {
		return r.StudentID == studentID && r.AdminID == adminID
	}, true), nil
}

func (m *mockAttendanceRepo) ListByAdminAndDate(_ context.Context, adminID, date string) ([]model.AttendanceRecord, error) {
	return m.filter(func(r *model.AttendanceRecord) bool {
		return r.AdminID == adminID && r.Date == date
	}, false), nil
}

func (m *mockAttendanceRepo) CountByAdminAndDate(ctx context.Context, adminID, date string) (int64, error) {
	list, _ := m.ListByAdminAndDate(ctx, adminID, date)
	return int64(len(list)), nil
}

func (m *mockAttendanceRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// ── Mock AdminStudentRepository ──

type mockAdminStudentRepo struct {
	mu       sync.Mutex
	links    []model.AdminStudent
	students *mockStudentRepo
}

func newMockAdminStudentRepo(students *mockStudentRepo) *mockAdminStudentRepo {
	return &mockAdminStudentRepo{students: students}
}

func (m *mockAdminStudentRepo) Link(_ context.Context, adminID, studentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.links {
		if l.AdminID == adminID && l.StudentID == studentID {
			return nil
		}
	}
	m.links = append(m.links, model.AdminStudent{AdminID: adminID, StudentID: studentID})
	return nil
}

func (m *mockAdminStudentRepo) ListStudentIDs(_ context.Context, adminID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, l := range m.links {
		if l.AdminID == adminID {
			ids = append(ids, l.StudentID)
		}
	}
	return ids, nil
}

func (m *mockAdminStudentRepo) CountStudents(ctx context.Context, adminID string) (int64, error) {
	ids, _ := m.ListStudentIDs(ctx, adminID)
	return int64(len(ids)), nil
}

func (m *mockAdminStudentRepo) CountStudentsByStatus(ctx context.Context, adminID, status string) (int64, error) {
	ids, _ := m.ListStudentIDs(ctx, adminID)
	students, _ := m.students.ListByIDs(ctx, ids)
	var n int64
	for _, s := range students {
		if s.Status == status {
			n++
		}
	}
	return n, nil
}

// ── Mock ScanLocker / TokenBlacklist ──

type mockLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func newMockLocker() *mockLocker {
	return &mockLocker{held: make(map[string]bool)}
}

func (m *mockLocker) TryLock(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	if m.held[key] {
		return "", false, nil
	}
	m.held[key] = true
	return key, true, nil
}

func (m *mockLocker) Unlock(_ context.Context, key, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, key)
	return nil
}

type mockBlacklist struct {
	entries map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{entries: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.entries[jti] = ttl
	return nil
}

// ── 测试装配 ──

type mockStore struct {
	admins       *mockAdminRepo
	students     *mockStudentRepo
	qrIssues     *mockQRIssueRepo
	attendance   *mockAttendanceRepo
	adminStudent *mockAdminStudentRepo
}

func newMockStore() (*mockStore, *repository.Repository) {
	admins := newMockAdminRepo()
	students := newMockStudentRepo()
	st := &mockStore{
		admins:       admins,
		students:     students,
		qrIssues:     newMockQRIssueRepo(),
		attendance:   newMockAttendanceRepo(admins),
		adminStudent: newMockAdminStudentRepo(students),
	}
	repo := &repository.Repository{
		Admin:        st.admins,
		Student:      st.students,
		QRIssue:      st.qrIssues,
		Attendance:   st.attendance,
		AdminStudent: st.adminStudent,
	}
	return st, repo
}

func (st *mockStore) addAdmin(name, coaching string) *model.Admin {
	a := &model.Admin{
		AdminID:      uuid.NewString(),
		Name:         name,
		Email:        uuid.NewString() + "@coaching.test",
		CoachingName: coaching,
		Status:       model.AdminStatusActive,
	}
	_ = st.admins.Create(context.Background(), a)
	return a
}

func (st *mockStore) addStudent(name, rollNo, status string) *model.Student {
	s := &model.Student{
		StudentID: uuid.NewString(),
		Name:      name,
		RollNo:    rollNo,
		Batch:     "2026-A",
		Email:     uuid.NewString() + "@student.test",
		Mobile:    "9876543210",
		Status:    status,
	}
	_ = st.students.Create(context.Background(), s)
	return s
}
