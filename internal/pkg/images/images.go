package images

import (
	"errors"
	"strings"
)

// MaxPerEntity is the upper bound on attached image URLs for deals,
// responses and verification requests.
const MaxPerEntity = 5

var ErrTooMany = errors.New("too many images")

// Normalize trims entries, drops blanks and rejects lists above the cap.
// Blank entries are filtered before the cap is applied, so a form with
// five empty slots and two URLs normalizes to two.
func Normalize(urls []string) ([]string, error) {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		out = append(out, u)
	}
	if len(out) > MaxPerEntity {
		return nil, ErrTooMany
	}
	return out, nil
}
