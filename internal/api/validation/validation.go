package validation

import "regexp"

var (
	// emailRegex validates email format
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// otpRegex matches a 6-digit numeric passcode
	otpRegex = regexp.MustCompile(`^\d{6}$`)
)

// IsValidEmail checks if the string is a valid email format
func IsValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidOTP checks if the string is exactly six ASCII digits
func IsValidOTP(code string) bool {
	return otpRegex.MatchString(code)
}
