package command

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"github.com/tair/population/internal/user/domain"
	"github.com/tair/population/pkg/apperror"
)

const (
	minPasswordLength = 8
	// bcrypt only hashes the first 72 bytes and refuses longer input.
	maxPasswordBytes = 72
	maxUsernameLength = 150
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func validateUsername(errs *apperror.ValidationError, username string) {
	switch {
	case strings.TrimSpace(username) == "":
		errs.Add("username", "This field is required.")
	case len(username) > maxUsernameLength:
		errs.Add("username", "Ensure this field has no more than 150 characters.")
	case !usernamePattern.MatchString(username):
		errs.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
}

func validateEmail(errs *apperror.ValidationError, email string) {
	if strings.TrimSpace(email) == "" {
		errs.Add("email", "This field is required.")
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		errs.Add("email", "Enter a valid email address.")
	}
}

func validatePassword(errs *apperror.ValidationError, password string) {
	if password == "" {
		errs.Add("password", "This field is required.")
		return
	}
	if len([]rune(password)) < minPasswordLength {
		errs.Add("password", "This password is too short. It must contain at least 8 characters.")
		return
	}
	if len(password) > maxPasswordBytes {
		errs.Add("password", "This password is too long. It must contain at most 72 bytes.")
		return
	}
	if strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		errs.Add("password", "This password is entirely numeric.")
	}
}

func validateRequired(errs *apperror.ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "This field is required.")
	}
}

func validateRole(errs *apperror.ValidationError, role string) {
	if role != "" && !domain.ValidRole(role) {
		errs.Add("role", "\""+role+"\" is not a valid choice.")
	}
}
