package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

type fieldKind int

const (
	fieldLiteral fieldKind = iota
	fieldMonth
	fieldDay
	fieldYear
	fieldClockHour
	fieldHour
	fieldMinute
	fieldAmPm
	fieldCount
)

const maxNumberWidth = 19

type element struct {
	kind     fieldKind
	literal  string
	minWidth int
	maxWidth int
	// exactPad запрещает значения шире minWidth, "yyyy" не съест пятую цифру
	exactPad bool
}

// Layout скомпилированный шаблон даты/времени, например "M/d/yyyy h:mm a"
type Layout struct {
	pattern  string
	elements []element
	has      [fieldCount]bool
}

type LayoutError struct {
	Text   string
	Index  int
	Reason string
	// Unparsed: все элементы совпали, но остался хвост текста
	Unparsed bool
}

func (e *LayoutError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("Text '%s' could not be parsed: %s", e.Text, e.Reason)
	case e.Unparsed:
		return fmt.Sprintf("Text '%s' could not be parsed, unparsed text found at index %d", e.Text, e.Index)
	default:
		return fmt.Sprintf("Text '%s' could not be parsed at index %d", e.Text, e.Index)
	}
}

func CompileLayout(pattern string) (*Layout, error) {
	l := &Layout{pattern: pattern}
	runes := []rune(pattern)

	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case r == '\'':
			literal, next, err := readQuoted(runes, i)
			if err != nil {
				return nil, err
			}
			l.appendLiteral(literal)
			i = next
		case isPatternLetter(r):
			count := 1
			for i+count < len(runes) && runes[i+count] == r {
				count++
			}
			el, err := letterElement(r, count)
			if err != nil {
				return nil, fmt.Errorf("layout %q: %w", pattern, err)
			}
			l.elements = append(l.elements, el)
			l.has[el.kind] = true
			i += count
		default:
			l.appendLiteral(string(r))
			i++
		}
	}

	if l.has[fieldClockHour] && !l.has[fieldAmPm] {
		return nil, fmt.Errorf("layout %q: clock hour 'h' requires an am/pm marker 'a'", pattern)
	}
	if l.has[fieldAmPm] && !l.has[fieldClockHour] {
		return nil, fmt.Errorf("layout %q: am/pm marker 'a' requires clock hour 'h'", pattern)
	}

	return l, nil
}

func MustCompileLayout(pattern string) *Layout {
	l, err := CompileLayout(pattern)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Layout) String() string {
	return l.pattern
}

func (l *Layout) hasDate() bool {
	return l.has[fieldYear] && l.has[fieldMonth] && l.has[fieldDay]
}

func (l *Layout) hasTime() bool {
	return (l.has[fieldClockHour] || l.has[fieldHour]) && l.has[fieldMinute]
}

// ParseDateTime требует и дату, и время
func (l *Layout) ParseDateTime(text string) (civil.DateTime, error) {
	if !l.hasDate() || !l.hasTime() {
		return civil.DateTime{}, fmt.Errorf("layout %q does not describe a full date-time", l.pattern)
	}

	values, err := l.parse(text)
	if err != nil {
		return civil.DateTime{}, err
	}

	date, err := resolveDate(text, values)
	if err != nil {
		return civil.DateTime{}, err
	}
	clock, err := l.resolveTime(text, values)
	if err != nil {
		return civil.DateTime{}, err
	}

	return civil.DateTime{Date: date, Time: clock}, nil
}

func (l *Layout) ParseDate(text string) (civil.Date, error) {
	if !l.hasDate() {
		return civil.Date{}, fmt.Errorf("layout %q does not describe a date", l.pattern)
	}

	values, err := l.parse(text)
	if err != nil {
		return civil.Date{}, err
	}

	return resolveDate(text, values)
}

func (l *Layout) ParseTime(text string) (civil.Time, error) {
	if !l.hasTime() {
		return civil.Time{}, fmt.Errorf("layout %q does not describe a time of day", l.pattern)
	}

	values, err := l.parse(text)
	if err != nil {
		return civil.Time{}, err
	}

	return l.resolveTime(text, values)
}

func (l *Layout) Format(dt civil.DateTime) string {
	var b strings.Builder

	for _, el := range l.elements {
		switch el.kind {
		case fieldLiteral:
			b.WriteString(el.literal)
		case fieldMonth:
			writePadded(&b, int(dt.Date.Month), el.minWidth)
		case fieldDay:
			writePadded(&b, dt.Date.Day, el.minWidth)
		case fieldYear:
			writePadded(&b, dt.Date.Year, el.minWidth)
		case fieldClockHour:
			hour := dt.Time.Hour % 12
			if hour == 0 {
				hour = 12
			}
			writePadded(&b, hour, el.minWidth)
		case fieldHour:
			writePadded(&b, dt.Time.Hour, el.minWidth)
		case fieldMinute:
			writePadded(&b, dt.Time.Minute, el.minWidth)
		case fieldAmPm:
			if dt.Time.Hour < 12 {
				b.WriteString("AM")
			} else {
				b.WriteString("PM")
			}
		}
	}

	return b.String()
}

type parsedValues [fieldCount]int

func (l *Layout) parse(text string) (parsedValues, error) {
	var values parsedValues
	pos := 0

	for _, el := range l.elements {
		switch el.kind {
		case fieldLiteral:
			if !strings.HasPrefix(text[pos:], el.literal) {
				return values, &LayoutError{Text: text, Index: pos}
			}
			pos += len(el.literal)
		case fieldAmPm:
			switch {
			case strings.HasPrefix(text[pos:], "AM"):
				values[fieldAmPm] = 0
			case strings.HasPrefix(text[pos:], "PM"):
				values[fieldAmPm] = 1
			default:
				return values, &LayoutError{Text: text, Index: pos}
			}
			pos += 2
		default:
			start := pos
			for pos < len(text) && pos-start < el.maxWidth && isDigit(text[pos]) {
				pos++
			}
			width := pos - start
			if width < el.minWidth || (el.exactPad && width > el.minWidth) {
				return values, &LayoutError{Text: text, Index: start}
			}
			value, err := strconv.Atoi(text[start:pos])
			if err != nil {
				return values, &LayoutError{Text: text, Index: start}
			}
			values[el.kind] = value
		}
	}

	if pos < len(text) {
		return values, &LayoutError{Text: text, Index: pos, Unparsed: true}
	}

	return values, nil
}

func resolveDate(text string, values parsedValues) (civil.Date, error) {
	year, month, day := values[fieldYear], values[fieldMonth], values[fieldDay]

	if month < 1 || month > 12 {
		return civil.Date{}, invalidValue(text, "MonthOfYear", "1 - 12", month)
	}
	if day < 1 || day > 31 {
		return civil.Date{}, invalidValue(text, "DayOfMonth", "1 - 28/31", day)
	}
	if year < 1 || year > 999999999 {
		return civil.Date{}, invalidValue(text, "YearOfEra", "1 - 999999999/1000000000", year)
	}

	date := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !date.IsValid() {
		if date.Month == time.February && day == 29 {
			return civil.Date{}, &LayoutError{
				Text:   text,
				Reason: fmt.Sprintf("Invalid date 'February 29' as '%d' is not a leap year", year),
			}
		}
		return civil.Date{}, &LayoutError{
			Text:   text,
			Reason: fmt.Sprintf("Invalid date '%s %d'", strings.ToUpper(date.Month.String()), day),
		}
	}

	return date, nil
}

func (l *Layout) resolveTime(text string, values parsedValues) (civil.Time, error) {
	hour := values[fieldHour]

	if l.has[fieldClockHour] {
		clockHour := values[fieldClockHour]
		if clockHour < 1 || clockHour > 12 {
			return civil.Time{}, invalidValue(text, "ClockHourOfAmPm", "1 - 12", clockHour)
		}
		hour = clockHour%12 + 12*values[fieldAmPm]
	} else if hour < 0 || hour > 23 {
		return civil.Time{}, invalidValue(text, "HourOfDay", "0 - 23", hour)
	}

	minute := values[fieldMinute]
	if minute < 0 || minute > 59 {
		return civil.Time{}, invalidValue(text, "MinuteOfHour", "0 - 59", minute)
	}

	return civil.Time{Hour: hour, Minute: minute}, nil
}

func invalidValue(text, field, valid string, value int) *LayoutError {
	return &LayoutError{
		Text:   text,
		Reason: fmt.Sprintf("Invalid value for %s (valid values %s): %d", field, valid, value),
	}
}

func letterElement(r rune, count int) (element, error) {
	numeric := func(kind fieldKind) (element, error) {
		switch count {
		case 1:
			return element{kind: kind, minWidth: 1, maxWidth: maxNumberWidth}, nil
		case 2:
			return element{kind: kind, minWidth: 2, maxWidth: 2}, nil
		default:
			return element{}, fmt.Errorf("too many pattern letters: %c", r)
		}
	}

	switch r {
	case 'M':
		return numeric(fieldMonth)
	case 'd':
		return numeric(fieldDay)
	case 'h':
		return numeric(fieldClockHour)
	case 'H':
		return numeric(fieldHour)
	case 'm':
		return numeric(fieldMinute)
	case 'y':
		if count != 4 {
			return element{}, fmt.Errorf("unsupported year width: %d", count)
		}
		return element{kind: fieldYear, minWidth: 4, maxWidth: maxNumberWidth, exactPad: true}, nil
	case 'a':
		if count != 1 {
			return element{}, fmt.Errorf("too many pattern letters: %c", r)
		}
		return element{kind: fieldAmPm}, nil
	}

	return element{}, fmt.Errorf("unsupported pattern letter: %c", r)
}

func readQuoted(runes []rune, start int) (string, int, error) {
	var b strings.Builder
	i := start + 1

	for i < len(runes) {
		if runes[i] == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				b.WriteRune('\'')
				i += 2
				continue
			}
			if i == start+1 {
				// '' вне кавычек - экранированная кавычка
				return "'", i + 1, nil
			}
			return b.String(), i + 1, nil
		}
		b.WriteRune(runes[i])
		i++
	}

	return "", 0, fmt.Errorf("pattern includes unterminated quote at %d", start)
}

func (l *Layout) appendLiteral(literal string) {
	if n := len(l.elements); n > 0 && l.elements[n-1].kind == fieldLiteral {
		l.elements[n-1].literal += literal
		return
	}
	l.elements = append(l.elements, element{kind: fieldLiteral, literal: literal})
}

func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func writePadded(b *strings.Builder, value, width int) {
	s := strconv.Itoa(value)
	for i := len(s); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}
