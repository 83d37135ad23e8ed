package template

import (
	"fmt"
	"strconv"
	"time"

	"github.com/founder-pl/br-doc-generator/internal/domain"
)

// applyFilter runs one named pipe stage against val. Unsupported filter
// names and type mismatches return an error, which evalExpr treats as an
// undefined reference.
func applyFilter(f Filter, val interface{}) (interface{}, error) {
	switch f.Name {
	case "format_date":
		t, ok := asTime(val)
		if !ok {
			return nil, fmt.Errorf("format_date: %v is not a date", val)
		}
		return domain.FormatDatePL(t), nil
	case "format_currency":
		m, ok := asMoney(val)
		if !ok {
			return nil, fmt.Errorf("format_currency: %v is not an amount", val)
		}
		return domain.FormatMoney(m, true), nil
	case "round":
		n, ok := asFloat(val)
		if !ok {
			return nil, fmt.Errorf("round: %v is not numeric", val)
		}
		digits := 0
		if len(f.Args) > 0 {
			if d, err := strconv.Atoi(f.Args[0]); err == nil {
				digits = d
			}
		}
		pow := 1.0
		for i := 0; i < digits; i++ {
			pow *= 10
		}
		rounded := float64(int64(n*pow+0.5)) / pow
		return strconv.FormatFloat(rounded, 'f', digits, 64), nil
	default:
		return nil, fmt.Errorf("unknown filter %q", f.Name)
	}
}

func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse("2006-01-02", t)
		return parsed, err == nil
	default:
		return time.Time{}, false
	}
}

func asMoney(v interface{}) (domain.Money, bool) {
	switch t := v.(type) {
	case domain.Money:
		return t, true
	case float64:
		return domain.NewMoney(t), true
	case int:
		return domain.NewMoney(float64(t)), true
	case string:
		return domain.ParseMoney(t)
	default:
		return 0, false
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case domain.Money:
		return t.Zloty(), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
