package in

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/suchimauz/clinic-calendar/internal/core/domain"
)

type AddAppointmentCommand struct {
	PatientFirstName string
	PatientLastName  string
	DoctorID         string
	DateTime         string
}

type ClinicCalendarUseCase interface {
	// Запись на прием
	AddAppointment(ctx context.Context, cmd AddAppointmentCommand) (domain.PatientAppointment, error)

	// Запросы по календарю
	GetAppointments(ctx context.Context) []domain.PatientAppointment
	GetAppointmentsForDate(ctx context.Context, date civil.Date) []domain.PatientAppointment
	GetTodayAppointments(ctx context.Context) []domain.PatientAppointment
	HasAppointment(ctx context.Context, date civil.Date) bool

	Today() civil.Date
	Doctors() []domain.Doctor
}
