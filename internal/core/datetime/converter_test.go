package datetime

import (
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertStringToDateTime_Today(t *testing.T) {
	today := civil.Date{Year: 2018, Month: 9, Day: 1}
	want := civil.DateTime{Date: today, Time: civil.Time{Hour: 13}}

	for _, text := range []string{"today 1:00 pm", "ToDay 1:00 pm", "TODAY 1:00 PM", "  today   1:00 pm  ", "today\t1:00 pm"} {
		t.Run(text, func(t *testing.T) {
			got, err := ConvertStringToDateTime(text, today)
			require.NoError(t, err)
			assert.Equal(t, want, got, "today passed was: %s", today)
		})
	}
}

func TestConvertStringToDateTime_FullPattern(t *testing.T) {
	today := civil.Date{Year: 2018, Month: 9, Day: 1}

	tests := []struct {
		text string
		want civil.DateTime
	}{
		{"9/2/2018 1:00 pm", civil.DateTime{Date: civil.Date{Year: 2018, Month: 9, Day: 2}, Time: civil.Time{Hour: 13}}},
		{"08/26/2018 2:00 pm", civil.DateTime{Date: civil.Date{Year: 2018, Month: 8, Day: 26}, Time: civil.Time{Hour: 14}}},
		{"12/31/2018 11:59 PM", civil.DateTime{Date: civil.Date{Year: 2018, Month: 12, Day: 31}, Time: civil.Time{Hour: 23, Minute: 59}}},
		{"1/1/2019 12:00 am", civil.DateTime{Date: civil.Date{Year: 2019, Month: 1, Day: 1}, Time: civil.Time{}}},
		{"1/1/2019 12:30 pm", civil.DateTime{Date: civil.Date{Year: 2019, Month: 1, Day: 1}, Time: civil.Time{Hour: 12, Minute: 30}}},
		{" 2/29/2020 9:05 am ", civil.DateTime{Date: civil.Date{Year: 2020, Month: 2, Day: 29}, Time: civil.Time{Hour: 9, Minute: 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ConvertStringToDateTime(tt.text, today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertStringToDateTime_IncorrectPattern(t *testing.T) {
	_, err := ConvertStringToDateTime("9/2/2018 100 pm", civil.Date{Year: 2018, Month: 9, Day: 1})
	require.Error(t, err)

	assert.Equal(t, "Unable to create date time from: [9/2/2018 100 pm], "+
		"please enter with format [M/d/yyyy h:mm a], Text '9/2/2018 100 PM' "+
		"could not be parsed at index 12", err.Error())

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "9/2/2018 100 pm", parseErr.Text)
	assert.Equal(t, DateTimePattern, parseErr.Pattern)

	var layoutErr *LayoutError
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, 12, layoutErr.Index)
}

func TestConvertStringToDateTime_Failures(t *testing.T) {
	today := civil.Date{Year: 2018, Month: 9, Day: 1}

	tests := []struct {
		text       string
		diagnostic string
	}{
		{"todays 1:00 pm", "Text 'TODAYS 1:00 PM' could not be parsed at index 0"},
		{"today", "Text 'TODAY' could not be parsed at index 0"},
		{"today 1:0 pm", "Text '1:0 PM' could not be parsed at index 2"},
		{"today 0:30 pm", "Text '0:30 PM' could not be parsed: Invalid value for ClockHourOfAmPm (valid values 1 - 12): 0"},
		{"", "Text '' could not be parsed at index 0"},
		{"9/2/18 1:00 pm", "Text '9/2/18 1:00 PM' could not be parsed at index 4"},
		{"9/2/2018 1:00", "Text '9/2/2018 1:00' could not be parsed at index 13"},
		{"9/2/2018 1:00 pm sharp", "Text '9/2/2018 1:00 PM SHARP' could not be parsed, unparsed text found at index 16"},
		{"13/1/2018 1:00 pm", "Text '13/1/2018 1:00 PM' could not be parsed: Invalid value for MonthOfYear (valid values 1 - 12): 13"},
		{"1/32/2018 1:00 pm", "Text '1/32/2018 1:00 PM' could not be parsed: Invalid value for DayOfMonth (valid values 1 - 28/31): 32"},
		{"9/2/2018 1:60 pm", "Text '9/2/2018 1:60 PM' could not be parsed: Invalid value for MinuteOfHour (valid values 0 - 59): 60"},
		{"2/30/2018 1:00 pm", "Text '2/30/2018 1:00 PM' could not be parsed: Invalid date 'FEBRUARY 30'"},
		{"2/29/2019 1:00 pm", "Text '2/29/2019 1:00 PM' could not be parsed: Invalid date 'February 29' as '2019' is not a leap year"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := ConvertStringToDateTime(tt.text, today)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
			assert.Equal(t, tt.text, parseErr.Text)
			assert.EqualError(t, parseErr.Diagnostic, tt.diagnostic)
		})
	}
}

func TestConvertStringToDateTime_SameErrorOnRetry(t *testing.T) {
	today := civil.Date{Year: 2018, Month: 9, Day: 1}

	_, first := ConvertStringToDateTime("9/2/2018 100 pm", today)
	_, second := ConvertStringToDateTime("9/2/2018 100 pm", today)

	assert.Equal(t, first.Error(), second.Error())
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "9/1/2018 02:00 PM", FormatDisplay(civil.DateTime{
		Date: civil.Date{Year: 2018, Month: 9, Day: 1},
		Time: civil.Time{Hour: 14},
	}))
	assert.Equal(t, "8/26/2018 12:05 AM", FormatDisplay(civil.DateTime{
		Date: civil.Date{Year: 2018, Month: 8, Day: 26},
		Time: civil.Time{Minute: 5},
	}))
}
