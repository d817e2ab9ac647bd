package domain

import (
	"fmt"
	"strings"
)

type Doctor string

const (
	DoctorAvery   Doctor = "avery"
	DoctorJohnson Doctor = "johnson"
	DoctorMurphy  Doctor = "murphy"
)

var doctorNames = map[Doctor]string{
	DoctorAvery:   "Ralph Avery",
	DoctorJohnson: "Beth Johnson",
	DoctorMurphy:  "Pat Murphy",
}

func Doctors() []Doctor {
	return []Doctor{DoctorAvery, DoctorJohnson, DoctorMurphy}
}

// ParseDoctor ищет врача без учета регистра и всегда возвращает одну из констант
func ParseDoctor(id string) (Doctor, error) {
	normalized := Doctor(strings.ToLower(strings.TrimSpace(id)))
	if !normalized.IsValid() {
		return "", &UnknownDoctorError{ID: id}
	}

	return normalized, nil
}

func (d Doctor) IsValid() bool {
	_, ok := doctorNames[d]
	return ok
}

func (d Doctor) Name() string {
	return doctorNames[d]
}

func (d Doctor) String() string {
	return string(d)
}

type UnknownDoctorError struct {
	ID string
}

func (e *UnknownDoctorError) Error() string {
	return fmt.Sprintf("unknown doctor: [%s]", e.ID)
}
