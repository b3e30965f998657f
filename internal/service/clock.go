package service

import (
	"time"

	"github.com/Kunal7725/QR-Attendence/internal/dto"
)

const (
	expiryLayout    = "15:04"    // 二维码过期时刻 HH:MM
	timestampLayout = "03:04 PM" // 签到时刻 hh:mm AM/PM
)

// Clock 业务时钟：统一决定"今天"与当前时刻所处的时区
type Clock struct {
	now func() time.Time
	loc *time.Location
}

// NewClock 创建业务时钟；now 为 nil 时使用 time.Now
func NewClock(loc *time.Location, now func() time.Time) *Clock {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, loc: loc}
}

// Now 当前时刻（业务时区）
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today 当天日期 DD/MM/YYYY
func (c *Clock) Today() string {
	return c.Now().Format(dto.DateLayout)
}

// Location 业务时区
func (c *Clock) Location() *time.Location {
	return c.loc
}
