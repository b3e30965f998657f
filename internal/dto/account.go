package dto

// ── 账号审批模块 DTO ──

// AdminIDQuery 仅携带 adminId 的查询参数
type AdminIDQuery struct {
	AdminID string `form:"adminId" binding:"required"`
}

// PendingStudentsResponse 待审批学生列表
type PendingStudentsResponse struct {
	Students []StudentResponse `json:"students"`
}

// AdminStatsResponse 管理员看板统计
// pendingApprovals 为全局待审批人数；todayAbsent 可能为负数（不截断）
type AdminStatsResponse struct {
	TotalStudents    int64 `json:"totalStudents"`
	ActiveStudents   int64 `json:"activeStudents"`
	PendingApprovals int64 `json:"pendingApprovals"`
	TodayPresent     int64 `json:"todayPresent"`
	TodayAbsent      int64 `json:"todayAbsent"`
}

// StudentDetailResponse 管理员查看学生详情
type StudentDetailResponse struct {
	Student    StudentResponse            `json:"student"`
	Attendance []AttendanceRecordResponse `json:"attendance"`
	Stats      StatsResponse              `json:"stats"`
}
