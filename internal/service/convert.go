package service

import (
	"time"

	"github.com/Kunal7725/QR-Attendence/internal/dto"
	"github.com/Kunal7725/QR-Attendence/internal/model"
)

func toAdminResponse(a *model.Admin) dto.AdminResponse {
	return dto.AdminResponse{
		ID:           a.AdminID,
		Name:         a.Name,
		Email:        a.Email,
		CoachingName: a.CoachingName,
		Contact:      a.Contact,
	}
}

func toStudentResponse(s *model.Student) dto.StudentResponse {
	return dto.StudentResponse{
		ID:        s.StudentID,
		Name:      s.Name,
		RollNo:    s.RollNo,
		Batch:     s.Batch,
		Email:     s.Email,
		Mobile:    s.Mobile,
		Status:    s.Status,
		CreatedAt: formatTime(s.CreatedAt),
	}
}

func toRecordResponse(r *model.AttendanceRecord) dto.AttendanceRecordResponse {
	resp := dto.AttendanceRecordResponse{
		ID:        r.AttendanceID,
		StudentID: r.StudentID,
		AdminID:   r.AdminID,
		Date:      r.Date,
		Status:    r.Status,
		Timestamp: r.Timestamp,
		CreatedAt: formatTime(r.CreatedAt),
	}
	if r.Admin != nil {
		resp.AdminName = r.Admin.Name
		resp.CoachingName = r.Admin.CoachingName
	}
	return resp
}

func toRecordResponses(records []model.AttendanceRecord) []dto.AttendanceRecordResponse {
	list := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		list = append(list, toRecordResponse(&records[i]))
	}
	return list
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
