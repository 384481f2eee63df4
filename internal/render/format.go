package render

import (
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// NotAvailable is shown for absent or falsy non-numeric values
const NotAvailable = "N/A"

// FormatValue turns a payload value into display text. Numbers of a
// thousand or more are abbreviated with a "k" or "m" suffix, rounded to
// one decimal with halves going up.
func FormatValue(v gjson.Result) string {
	switch v.Type {
	case gjson.Number:
		n := v.Float()
		switch {
		case n >= 1e6:
			return oneDecimal(n/1e6) + "m"
		case n >= 1e3:
			return oneDecimal(n/1e3) + "k"
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case gjson.String:
		if v.Str == "" {
			return NotAvailable
		}
		return v.Str
	case gjson.True:
		return "true"
	case gjson.JSON:
		return v.Raw
	default:
		// null, false and missing values
		return NotAvailable
	}
}

func oneDecimal(n float64) string {
	return strconv.FormatFloat(math.Round(n*10)/10, 'f', 1, 64)
}
