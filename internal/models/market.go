package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dyike/TickerTalk/consts"
)

// PricePoint is one closing price of a trading day.
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// PriceSeries is the dated closing-price history of one symbol, oldest first.
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// AttributeValue is the result of a point lookup in a symbol's attribute bag.
// Found is false when the provider does not report the key.
type AttributeValue struct {
	Symbol string `json:"symbol"`
	Key    string `json:"key"`
	Value  any    `json:"value"`
	Found  bool   `json:"found"`
}

// String renders the value the way it is handed back to the model.
func (v AttributeValue) String() string {
	if !v.Found {
		return consts.InvalidKey
	}
	switch val := v.Value.(type) {
	case nil:
		return "N/A"
	case string:
		return val
	case float64:
		return decimal.NewFromFloat(val).String()
	case float32:
		return decimal.NewFromFloat32(val).String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case decimal.Decimal:
		return val.String()
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
