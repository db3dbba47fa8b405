package adapters

import (
	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/models/store"
)

func MapStoreInstituteToDomain(inst store.Institute) domain.Institute {
	out := domain.Institute{
		ID:        inst.ID,
		Name:      inst.Name,
		Status:    domain.InstituteStatus(inst.Status),
		CreatedAt: inst.CreatedAt,
	}
	if out.Status == "" {
		out.Status = domain.InstituteActive
	}
	if inst.Branding != nil {
		out.Branding = domain.BrandingConfig{
			HeaderText: inst.Branding.HeaderText,
			FooterText: inst.Branding.FooterText,
		}
	}
	return out
}

func MapDomainInstituteToStore(inst domain.Institute) store.Institute {
	out := store.Institute{
		ID:        inst.ID,
		Name:      inst.Name,
		Status:    string(inst.Status),
		CreatedAt: inst.CreatedAt,
	}
	if inst.Branding != (domain.BrandingConfig{}) {
		out.Branding = &store.Branding{
			HeaderText: inst.Branding.HeaderText,
			FooterText: inst.Branding.FooterText,
		}
	}
	return out
}

func MapStoreStudentToDomain(s store.Student) domain.Student {
	out := domain.Student{
		ID:            s.ID,
		Name:          s.Name,
		ClassOrCourse: s.ClassOrCourse,
		Deleted:       s.Deleted,
		CreatedAt:     s.CreatedAt,
	}
	if s.Fees != nil {
		out.Fees = &domain.FeeStatus{
			Amount:      s.Fees.Amount,
			NextDueDate: s.Fees.NextDueDate,
			Status:      domain.FeeState(s.Fees.Status),
			UpdatedAt:   s.Fees.UpdatedAt,
		}
	}
	if s.FacultyGuidance != nil {
		out.FacultyGuidance = &domain.Guidance{
			Text:      s.FacultyGuidance.Text,
			UpdatedAt: s.FacultyGuidance.UpdatedAt,
		}
	}
	return out
}

func MapDomainStudentToStore(s domain.Student) store.Student {
	out := store.Student{
		ID:            s.ID,
		Name:          s.Name,
		ClassOrCourse: s.ClassOrCourse,
		Deleted:       s.Deleted,
		CreatedAt:     s.CreatedAt,
	}
	if s.Fees != nil {
		out.Fees = &store.Fees{
			Amount:      s.Fees.Amount,
			NextDueDate: s.Fees.NextDueDate,
			Status:      string(s.Fees.Status),
			UpdatedAt:   s.Fees.UpdatedAt,
		}
	}
	if s.FacultyGuidance != nil {
		out.FacultyGuidance = &store.Guidance{
			Text:      s.FacultyGuidance.Text,
			UpdatedAt: s.FacultyGuidance.UpdatedAt,
		}
	}
	return out
}

func MapStoreAttendanceToDomain(a store.Attendance) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		ID:        a.ID,
		StudentID: a.StudentID,
		Date:      a.Date,
		Status:    domain.AttendanceStatus(a.Status),
		MarkedAt:  a.MarkedAt,
	}
}

func MapDomainAttendanceToStore(a domain.AttendanceRecord) store.Attendance {
	return store.Attendance{
		ID:        a.ID,
		StudentID: a.StudentID,
		Date:      a.Date,
		Status:    string(a.Status),
		MarkedAt:  a.MarkedAt,
	}
}

func MapStoreTestToDomain(t store.Test) domain.TestRecord {
	return domain.TestRecord{
		ID:            t.ID,
		StudentID:     t.StudentID,
		Subject:       t.Subject,
		MarksObtained: t.MarksObtained,
		MaxMarks:      t.MaxMarks,
		TestDate:      t.TestDate,
		CreatedAt:     t.CreatedAt,
	}
}

func MapDomainTestToStore(t domain.TestRecord) store.Test {
	return store.Test{
		ID:            t.ID,
		StudentID:     t.StudentID,
		Subject:       t.Subject,
		MarksObtained: t.MarksObtained,
		MaxMarks:      t.MaxMarks,
		TestDate:      t.TestDate,
		CreatedAt:     t.CreatedAt,
	}
}
