package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatINR renders a fare with Indian digit grouping, e.g. ₹1,23,456.50.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	paise := int64(math.Round(amount * 100))
	rupees, frac := paise/100, paise%100
	return fmt.Sprintf("%s₹%s.%02d", sign, groupIndian(rupees), frac)
}

// groupIndian groups the last three digits, then every two.
func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	head, tail := str[:len(str)-3], str[len(str)-3:]
	parts := []string{}
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}

// FormatRating prints a star rating without trailing zeros.
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
