package domain

import (
	"errors"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

var (
	ErrPatientFirstNameRequired = errors.New("patient first name is required")
	ErrPatientLastNameRequired  = errors.New("patient last name is required")
)

// PatientAppointment не меняется после создания
type PatientAppointment struct {
	id                  uuid.UUID
	patientFirstName    string
	patientLastName     string
	doctor              Doctor
	appointmentDateTime civil.DateTime
}

func NewPatientAppointment(firstName, lastName string, doctor Doctor, dateTime civil.DateTime) (PatientAppointment, error) {
	if strings.TrimSpace(firstName) == "" {
		return PatientAppointment{}, ErrPatientFirstNameRequired
	}
	if strings.TrimSpace(lastName) == "" {
		return PatientAppointment{}, ErrPatientLastNameRequired
	}
	if !doctor.IsValid() {
		return PatientAppointment{}, &UnknownDoctorError{ID: string(doctor)}
	}

	return PatientAppointment{
		id:                  uuid.New(),
		patientFirstName:    firstName,
		patientLastName:     lastName,
		doctor:              doctor,
		appointmentDateTime: dateTime,
	}, nil
}

func (a PatientAppointment) ID() uuid.UUID {
	return a.id
}

func (a PatientAppointment) PatientFirstName() string {
	return a.patientFirstName
}

func (a PatientAppointment) PatientLastName() string {
	return a.patientLastName
}

func (a PatientAppointment) Doctor() Doctor {
	return a.doctor
}

func (a PatientAppointment) AppointmentDateTime() civil.DateTime {
	return a.appointmentDateTime
}

func (a PatientAppointment) Date() civil.Date {
	return a.appointmentDateTime.Date
}
