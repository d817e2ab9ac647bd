package utils

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/suchimauz/clinic-calendar/internal/core/datetime"
)

var shortDateLayout = datetime.MustCompileLayout("M/d/yyyy")

// ParseDate парсит дату в формате YYYY-MM-DD, если не удается, то пробует формат M/d/yyyy
func ParseDate(str string) (civil.Date, error) {
	str = strings.TrimSpace(str)

	date, err := civil.ParseDate(str)
	if err == nil {
		return date, nil
	}

	// Если не удалось, пробуем формат регистратуры
	date, shortErr := shortDateLayout.ParseDate(str)
	if shortErr != nil {
		return civil.Date{}, fmt.Errorf("failed to parse date %q: %v", str, shortErr)
	}

	return date, nil
}

