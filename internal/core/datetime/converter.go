// Package datetime переводит введенное в регистратуре время записи в civil.DateTime.
package datetime

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"cloud.google.com/go/civil"
)

const (
	DateTimePattern = "M/d/yyyy h:mm a"
	DisplayPattern  = "M/d/yyyy hh:mm a"

	timePattern  = "h:mm a"
	todayKeyword = "today"
)

var (
	dateTimeLayout = MustCompileLayout(DateTimePattern)
	displayLayout  = MustCompileLayout(DisplayPattern)
	timeLayout     = MustCompileLayout(timePattern)
)

type ParseError struct {
	Text       string
	Pattern    string
	Diagnostic error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Unable to create date time from: [%s], please enter with format [%s], %v",
		e.Text, e.Pattern, e.Diagnostic)
}

func (e *ParseError) Unwrap() error {
	return e.Diagnostic
}

// ConvertStringToDateTime принимает либо "today <h:mm a>" (дата берется из referenceDate),
// либо полную дату со временем в формате "M/d/yyyy h:mm a"
func ConvertStringToDateTime(text string, referenceDate civil.Date) (civil.DateTime, error) {
	trimmed := strings.TrimSpace(text)

	if timeText, ok := cutTodayKeyword(trimmed); ok {
		clock, err := timeLayout.ParseTime(strings.ToUpper(timeText))
		if err != nil {
			return civil.DateTime{}, &ParseError{Text: text, Pattern: DateTimePattern, Diagnostic: err}
		}
		return civil.DateTime{Date: referenceDate, Time: clock}, nil
	}

	dt, err := dateTimeLayout.ParseDateTime(strings.ToUpper(trimmed))
	if err != nil {
		return civil.DateTime{}, &ParseError{Text: text, Pattern: DateTimePattern, Diagnostic: err}
	}

	return dt, nil
}

// FormatDisplay форматирует для регистратуры, например "9/1/2018 02:00 PM"
func FormatDisplay(dt civil.DateTime) string {
	return displayLayout.Format(dt)
}

func cutTodayKeyword(text string) (string, bool) {
	if len(text) <= len(todayKeyword) || !strings.EqualFold(text[:len(todayKeyword)], todayKeyword) {
		return "", false
	}

	rest := text[len(todayKeyword):]
	if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
		return "", false
	}

	return strings.TrimSpace(rest), true
}
