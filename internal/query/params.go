package query

import (
	"net/url"
	"strings"
)

// ParseRawQuery splits a raw URL query string into params, keeping the order
// in which they were written. url.ParseQuery is not used because it returns
// a map and loses that order.
func ParseRawQuery(rawQuery string) ([]Param, error) {
	params := []Param{}
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, err
		}

		params = append(params, Param{Key: key, Value: value})
	}
	return params, nil
}
