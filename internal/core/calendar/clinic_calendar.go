package calendar

import (
	"cloud.google.com/go/civil"
	"github.com/suchimauz/clinic-calendar/internal/core/datetime"
	"github.com/suchimauz/clinic-calendar/internal/core/domain"
)

// ClinicCalendar хранит записи в порядке добавления. Дата, переданная в
// NewClinicCalendar, считается "сегодня" все время жизни календаря.
// Не потокобезопасен, доступ сериализует сервис.
type ClinicCalendar struct {
	today        civil.Date
	appointments []domain.PatientAppointment
}

func NewClinicCalendar(today civil.Date) *ClinicCalendar {
	return &ClinicCalendar{
		today:        today,
		appointments: make([]domain.PatientAppointment, 0),
	}
}

func (c *ClinicCalendar) Today() civil.Date {
	return c.today
}

// AddAppointment возвращает *domain.UnknownDoctorError или *datetime.ParseError как есть,
// при ошибке запись не добавляется
func (c *ClinicCalendar) AddAppointment(patientFirstName, patientLastName, doctorID, dateTime string) error {
	doctor, err := domain.ParseDoctor(doctorID)
	if err != nil {
		return err
	}

	appointmentDateTime, err := datetime.ConvertStringToDateTime(dateTime, c.today)
	if err != nil {
		return err
	}

	appointment, err := domain.NewPatientAppointment(patientFirstName, patientLastName, doctor, appointmentDateTime)
	if err != nil {
		return err
	}

	c.appointments = append(c.appointments, appointment)
	return nil
}

func (c *ClinicCalendar) GetAppointments() []domain.PatientAppointment {
	appointments := make([]domain.PatientAppointment, len(c.appointments))
	copy(appointments, c.appointments)
	return appointments
}

func (c *ClinicCalendar) HasAppointment(date civil.Date) bool {
	for _, appointment := range c.appointments {
		if appointment.Date() == date {
			return true
		}
	}
	return false
}

func (c *ClinicCalendar) GetTodayAppointments() []domain.PatientAppointment {
	return c.GetAppointmentsForDate(c.today)
}

func (c *ClinicCalendar) GetAppointmentsForDate(date civil.Date) []domain.PatientAppointment {
	appointments := make([]domain.PatientAppointment, 0)
	for _, appointment := range c.appointments {
		if appointment.Date() == date {
			appointments = append(appointments, appointment)
		}
	}
	return appointments
}
