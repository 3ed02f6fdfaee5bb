package utils

import (
	"encoding/json"
	"math"
	"net/http"
)

// RoundMoney rounds a currency amount to 2 decimal places. Totals are carried
// as raw float64 through the math and rounded only at the persistence and
// presentation edges.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
