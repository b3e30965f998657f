package dto

// ── 考勤模块 DTO ──

// GenerateQRRequest 生成当日二维码请求
type GenerateQRRequest struct {
	AdminID string `json:"adminId" binding:"required"`
}

// QRPayload 二维码内容（即编码进二维码图片、由学生端扫码解析的 JSON）
type QRPayload struct {
	AdminID    string `json:"adminId"`
	Date       string `json:"date"`       // DD/MM/YYYY
	ExpiryTime string `json:"expiryTime"` // HH:MM
}

// QRResponse 生成二维码响应
type QRResponse struct {
	Message string    `json:"message"`
	QRData  QRPayload `json:"qrData"`
}

// ScanQRRequest 学生扫码签到请求
// qrData 为二维码中的原始 JSON 字符串
type ScanQRRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	QRData    string `json:"qrData"    binding:"required"`
}

// AttendanceRecordResponse 考勤流水
type AttendanceRecordResponse struct {
	ID           string `json:"id"`
	StudentID    string `json:"studentId"`
	AdminID      string `json:"adminId"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	CreatedAt    string `json:"createdAt"`
	AdminName    string `json:"adminName,omitempty"`
	CoachingName string `json:"coachingName,omitempty"`
}

// ScanQRResponse 扫码签到成功响应
type ScanQRResponse struct {
	Message    string                   `json:"message"`
	Attendance AttendanceRecordResponse `json:"attendance"`
}

// AttendanceQuery 按日期查询考勤参数；date 缺省为当天
type AttendanceQuery struct {
	AdminID string `form:"adminId" binding:"required"`
	Date    string `form:"date"    binding:"omitempty,ddmmyyyy"`
}

// AttendanceRow 某日花名册中的一行；Absent 行 timestamp 为 "-"
type AttendanceRow struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	RollNo    string `json:"rollNo"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// AttendanceByDateResponse 按日期考勤响应
type AttendanceByDateResponse struct {
	Attendance []AttendanceRow `json:"attendance"`
}

// AttendanceHistoryResponse 学生考勤历史响应
type AttendanceHistoryResponse struct {
	Attendance []AttendanceRecordResponse `json:"attendance"`
}

// StatsResponse 出勤统计
type StatsResponse struct {
	TotalDays   int `json:"totalDays"`
	PresentDays int `json:"presentDays"`
	AbsentDays  int `json:"absentDays"`
	Percentage  int `json:"percentage"`
}

// StudentStatsResponse 学生统计（含当天状态，当天无记录时为 null）
type StudentStatsResponse struct {
	StatsResponse
	TodayStatus *string `json:"todayStatus"`
	TodayTime   *string `json:"todayTime"`
}
