package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Kunal7725/QR-Attendence/internal/model"
)

// QRIssueRepository 每日二维码签发记录数据访问接口
type QRIssueRepository interface {
	// Create 写入签发记录；(admin_id, date) 已存在时返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, issue *model.QRIssue) error
	GetByAdminAndDate(ctx context.Context, adminID, date string) (*model.QRIssue, error)
}

type qrIssueRepo struct {
	db *gorm.DB
}

// NewQRIssueRepo 创建 QRIssueRepository 实例
func NewQRIssueRepo(db *gorm.DB) QRIssueRepository {
	return &qrIssueRepo{db: db}
}

func (r *qrIssueRepo) Create(ctx context.Context, issue *model.QRIssue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

func (r *qrIssueRepo) GetByAdminAndDate(ctx context.Context, adminID, date string) (*model.QRIssue, error) {
	var issue model.QRIssue
	err := r.db.WithContext(ctx).
		Where("admin_id = ? AND date = ?", adminID, date).
		First(&issue).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}
