package services

import (
	"context"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/suchimauz/clinic-calendar/internal/core/calendar"
	"github.com/suchimauz/clinic-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/in"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/out"
)

type ClinicCalendarService struct {
	mu        sync.Mutex
	calendar  *calendar.ClinicCalendar
	cachePort out.CachePort
	logger    out.LoggerPort
}

var _ in.ClinicCalendarUseCase = (*ClinicCalendarService)(nil)

func NewClinicCalendarService(
	calendar *calendar.ClinicCalendar,
	cachePort out.CachePort,
	logger out.LoggerPort,
) *ClinicCalendarService {
	return &ClinicCalendarService{
		calendar:  calendar,
		cachePort: cachePort,
		logger:    logger.WithModule("ClinicCalendarService"),
	}
}

func (s *ClinicCalendarService) AddAppointment(ctx context.Context, cmd in.AddAppointmentCommand) (domain.PatientAppointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("calendar.appointment.add.started", out.LogFields{
		"doctor":   cmd.DoctorID,
		"dateTime": cmd.DateTime,
	})

	if err := s.calendar.AddAppointment(cmd.PatientFirstName, cmd.PatientLastName, cmd.DoctorID, cmd.DateTime); err != nil {
		s.logger.Warn("calendar.appointment.add.rejected", out.LogFields{
			"doctor":   cmd.DoctorID,
			"dateTime": cmd.DateTime,
			"error":    err.Error(),
		})
		return domain.PatientAppointment{}, err
	}

	// Новая запись всегда последняя в календаре
	appointments := s.calendar.GetAppointments()
	appointment := appointments[len(appointments)-1]

	// Кэш дня записи больше не актуален
	if s.cachePort != nil {
		s.cachePort.InvalidateDayAppointments(ctx, appointment.Date())
	}

	s.logger.Info("calendar.appointment.added", out.LogFields{
		"appointmentId": appointment.ID(),
		"doctor":        appointment.Doctor(),
		"dateTime":      appointment.AppointmentDateTime().String(),
	})

	return appointment, nil
}

func (s *ClinicCalendarService) GetAppointments(ctx context.Context) []domain.PatientAppointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calendar.GetAppointments()
}

func (s *ClinicCalendarService) GetAppointmentsForDate(ctx context.Context, date civil.Date) []domain.PatientAppointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appointmentsForDate(ctx, date)
}

func (s *ClinicCalendarService) GetTodayAppointments(ctx context.Context) []domain.PatientAppointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appointmentsForDate(ctx, s.calendar.Today())
}

func (s *ClinicCalendarService) HasAppointment(ctx context.Context, date civil.Date) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cachePort != nil {
		if appointments, exists := s.cachePort.GetDayAppointments(ctx, date); exists {
			return len(appointments) > 0
		}
	}

	return s.calendar.HasAppointment(date)
}

func (s *ClinicCalendarService) Today() civil.Date {
	return s.calendar.Today()
}

func (s *ClinicCalendarService) Doctors() []domain.Doctor {
	return domain.Doctors()
}

// appointmentsForDate вызывается под s.mu
func (s *ClinicCalendarService) appointmentsForDate(ctx context.Context, date civil.Date) []domain.PatientAppointment {
	// Проверяем кэш только если он включен
	if s.cachePort != nil {
		if appointments, exists := s.cachePort.GetDayAppointments(ctx, date); exists {
			s.logger.Debug("calendar.day.cache.hit", out.LogFields{
				"date":              date.String(),
				"appointmentsCount": len(appointments),
			})
			return appointments
		}
	}

	appointments := s.calendar.GetAppointmentsForDate(date)

	if s.cachePort != nil {
		s.logger.Debug("calendar.day.cache.miss", out.LogFields{
			"date": date.String(),
		})
		s.cachePort.StoreDayAppointments(ctx, date, appointments)
	}

	return appointments
}
