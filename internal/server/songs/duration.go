package songs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/musicbox/internal/common"
)

var timeRe = regexp.MustCompile(`^(\d{1,2}):([0-5]\d):([0-5]\d)$`)

const maxDurationSeconds = 24 * 3600

// NormalizeDuration converts the accepted spellings of a track length to
// HH:MM:SS:
//
//	"1:02:03"  -> "01:02:03"
//	"3:25"     -> "00:03:25" (minutes up to 599)
//	"205"      -> "00:03:25" (total seconds, up to 86400)
func NormalizeDuration(v string) (string, error) {
	s := strings.TrimSpace(v)

	if m := timeRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		sec, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%02d:%02d:%02d", h, min, sec), nil
	}

	if parts := strings.Split(s, ":"); len(parts) == 2 && allDigits(parts) {
		min, _ := strconv.Atoi(parts[0])
		sec, _ := strconv.Atoi(parts[1])
		if min <= 599 && sec <= 59 {
			return fmt.Sprintf("%02d:%02d:%02d", min/60, min%60, sec), nil
		}
	}

	if isDigits(s) {
		if total, err := strconv.Atoi(s); err == nil && total <= maxDurationSeconds {
			return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60), nil
		}
	}

	return "", common.NewValidationError("Invalid duration format. Use HH:MM:SS, MM:SS, M:SS, or total seconds.")
}

func allDigits(parts []string) bool {
	for _, p := range parts {
		if !isDigits(p) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
