package out

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/suchimauz/clinic-calendar/internal/core/domain"
)

type CachePort interface {
	// Кэш записей по дням
	GetDayAppointments(ctx context.Context, date civil.Date) ([]domain.PatientAppointment, bool)
	StoreDayAppointments(ctx context.Context, date civil.Date, appointments []domain.PatientAppointment)
	InvalidateDayAppointments(ctx context.Context, date civil.Date)
	InvalidateAllDayAppointments(ctx context.Context)
}
