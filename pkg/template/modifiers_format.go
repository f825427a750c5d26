package template

import (
	"fmt"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// dateTimeKind selects the parsing rule for string-valued date/time input.
type dateTimeKind int

const (
	kindDate dateTimeKind = iota
	kindTime
	kindDateTime
)

type dateTimeStyle struct {
	kind   dateTimeKind
	layout string
}

// Styles accepted by the format modifier for date and time values. Numeric
// input is interpreted as epoch milliseconds; string input is parsed as an
// ISO date, time, or timestamp depending on the style family.
var dateTimeStyles = map[string]dateTimeStyle{
	"shortDate":  {kindDate, "1/2/06"},
	"mediumDate": {kindDate, "Jan 2, 2006"},
	"longDate":   {kindDate, "January 2, 2006"},
	"fullDate":   {kindDate, "Monday, January 2, 2006"},
	"isoDate":    {kindDate, "2006-01-02"},

	"shortTime":  {kindTime, "3:04 PM"},
	"mediumTime": {kindTime, "3:04:05 PM"},
	"longTime":   {kindTime, "3:04:05 PM MST"},
	"fullTime":   {kindTime, "3:04:05 PM MST"},
	"isoTime":    {kindTime, "15:04:05"},

	"shortDateTime":  {kindDateTime, "1/2/06, 3:04 PM"},
	"mediumDateTime": {kindDateTime, "Jan 2, 2006, 3:04:05 PM"},
	"longDateTime":   {kindDateTime, "January 2, 2006, 3:04:05 PM MST"},
	"fullDateTime":   {kindDateTime, "Monday, January 2, 2006, 3:04:05 PM MST"},
	"isoDateTime":    {kindDateTime, time.RFC3339},
}

// formatModifier is the built-in "format" modifier. Its argument selects a
// named style (currency, percent, decimal, or one of the date/time styles);
// any other argument is treated as a printf pattern applied through a
// locale-aware printer. With no argument the value passes through unchanged.
func formatModifier(value any, argument string, locale language.Tag) (any, error) {
	if argument == "" {
		return value, nil
	}

	p := message.NewPrinter(locale)

	switch argument {
	case "currency":
		amount, err := toFloat(value)
		if err != nil {
			return nil, err
		}
		unit, _ := currency.FromTag(locale)
		return p.Sprint(currency.Symbol(unit.Amount(amount))), nil

	case "percent":
		f, err := toFloat(value)
		if err != nil {
			return nil, err
		}
		return p.Sprint(number.Percent(f)), nil

	case "decimal":
		f, err := toFloat(value)
		if err != nil {
			return nil, err
		}
		return p.Sprint(number.Decimal(f)), nil
	}

	if style, ok := dateTimeStyles[argument]; ok {
		t, err := toTime(value, style.kind)
		if err != nil {
			return nil, err
		}
		return t.Format(style.layout), nil
	}

	return p.Sprintf(argument, value), nil
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("cannot format %T as a number", value)
	}
}

func toTime(value any, kind dateTimeKind) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTime(v, kind)
	default:
		millis, err := toFloat(value)
		if err != nil {
			return time.Time{}, fmt.Errorf("cannot format %T as a date or time", value)
		}
		return time.UnixMilli(int64(millis)).UTC(), nil
	}
}

func parseTime(s string, kind dateTimeKind) (time.Time, error) {
	var layouts []string
	switch kind {
	case kindDate:
		layouts = []string{"2006-01-02"}
	case kindTime:
		layouts = []string{"15:04:05", "15:04"}
	default:
		layouts = []string{time.RFC3339, "2006-01-02T15:04:05"}
	}

	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
