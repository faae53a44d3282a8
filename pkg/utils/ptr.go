package utils

import (
	"strconv"

	"github.com/aarondl/null/v8"
)

// NullString возвращает null для пустой строки.
func NullString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

func NullIntToString(n null.Int) string {
	if !n.Valid {
		return ""
	}
	return strconv.Itoa(n.Int)
}
