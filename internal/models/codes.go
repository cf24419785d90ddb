package models

const (
	PersonNoLength    = 9
	ServiceCodeLength = 7
	SessionCodeLength = 7
	MaxCommentLength  = 100
	MaxServiceName    = 20
	MaxCapacityLimit  = 30
	MaxFee            = 10000
)

// IsCode reports whether s is exactly width ASCII digits.
func IsCode(s string, width int) bool {
	if len(s) != width {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
