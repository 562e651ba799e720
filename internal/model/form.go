package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FormNumber holds a numeric form field as the user typed it. It accepts
// both JSON numbers and JSON strings so screens can forward raw input.
type FormNumber string

func (n *FormNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = FormNumber(s)
		return nil
	}
	*n = FormNumber(data)
	return nil
}

// Float parses the leading decimal number of the field, the way a lenient
// form parser does ("2.5kg" -> 2.5). ok is false when nothing parses.
func (n FormNumber) Float() (v float64, ok bool) {
	s := strings.TrimSpace(string(n))
	s = strings.Replace(s, ",", ".", 1)
	end := 0
	seenDigit, seenDot := false, false
scan:
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '-' || r == '+') && i == 0:
		default:
			break scan
		}
	}
	if !seenDigit {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
