package validator

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUsernameRequired = errors.New("username is required")
	ErrInvalidUsername  = errors.New("username may contain only letters, digits and @.+-_")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordMismatch = errors.New("Passwords do not match")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrWeakPassword     = errors.New("password is too common")
)

const (
	MinPasswordLength = 8
	MaxUsernameLength = 150
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
)

var weakPasswords = map[string]struct{}{
	"password":     {},
	"password123":  {},
	"123456789012": {},
	"1234567890":   {},
	"12345678":     {},
	"qwerty123":    {},
	"qwertyuiop":   {},
	"letmein1":     {},
	"admin123":     {},
	"iloveyou":     {},
}

// ValidateRegister checks a sign-up payload and returns the first problem found.
func ValidateRegister(username, email, password, confirmPassword string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if !IsEmail(email) {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if password != confirmPassword {
		return ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if IsWeakPassword(password) {
		return ErrWeakPassword
	}
	return nil
}

func ValidateLogin(identifier, password string) error {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return ErrInvalidInput
	}
	return nil
}

func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) > MaxUsernameLength || !usernameRe.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// IsEmail accepts a bare address, not a display-name form.
func IsEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || !emailRe.MatchString(s) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func IsWeakPassword(password string) bool {
	_, ok := weakPasswords[strings.ToLower(strings.TrimSpace(password))]
	return ok
}
