package command

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tair/population/internal/analytics/domain"
	"github.com/tair/population/pkg/apperror"
)

const maxTitleLength = 200

func validateTitle(errs *apperror.ValidationError, title string) {
	switch {
	case strings.TrimSpace(title) == "":
		errs.Add("title", "This field may not be blank.")
	case utf8.RuneCountInString(title) > maxTitleLength:
		errs.Add("title", fmt.Sprintf("Ensure this field has no more than %d characters.", maxTitleLength))
	}
}

func validateType(errs *apperror.ValidationError, t domain.ReportType) {
	if !t.Valid() {
		errs.Add("type", fmt.Sprintf("\"%s\" is not a valid choice.", t))
	}
}

func validateStatus(errs *apperror.ValidationError, s domain.ReportStatus) {
	if !s.Valid() {
		errs.Add("status", fmt.Sprintf("\"%s\" is not a valid choice.", s))
	}
}
