package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"gorm.io/datatypes"

	"github.com/tair/population/internal/analytics/domain"
	"github.com/tair/population/internal/analytics/usecase/command"
	"github.com/tair/population/pkg/apperror"
)

type payload map[string]json.RawMessage

func decodePayload(r *http.Request) (payload, error) {
	var p payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p == nil {
		return nil, apperror.FieldError("non_field_errors", "Invalid data. Expected a JSON object.")
	}
	return p, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (p payload) str(errs *apperror.ValidationError, key string) *string {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	var s string
	if isNull(raw) {
		errs.Add(key, "This field may not be null.")
		return nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		errs.Add(key, "Not a valid string.")
		return nil
	}
	return &s
}

// description returns the value and whether the key was present; null clears.
func (p payload) description(errs *apperror.ValidationError) (*string, bool) {
	raw, ok := p["description"]
	if !ok {
		return nil, false
	}
	if isNull(raw) {
		return nil, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		errs.Add("description", "Not a valid string.")
		return nil, false
	}
	return &s, true
}

func (p payload) data() (datatypes.JSON, bool) {
	raw, ok := p["data"]
	if !ok {
		return nil, false
	}
	if isNull(raw) {
		return nil, true
	}
	return datatypes.JSON(bytes.TrimSpace(raw)), true
}

func decodeCreateReport(p payload) (command.CreateReportCommand, *apperror.ValidationError) {
	errs := apperror.NewValidationError()
	var cmd command.CreateReportCommand
	if title := p.str(errs, "title"); title != nil {
		cmd.Title = *title
	} else if _, ok := p["title"]; !ok {
		errs.Add("title", "This field is required.")
	}
	if t := p.str(errs, "type"); t != nil {
		cmd.Type = domain.ReportType(*t)
		if *t == "" {
			errs.Add("type", "\"\" is not a valid choice.")
		}
	}
	if s := p.str(errs, "status"); s != nil {
		cmd.Status = domain.ReportStatus(*s)
		if *s == "" {
			errs.Add("status", "\"\" is not a valid choice.")
		}
	}
	if description, ok := p.description(errs); ok {
		cmd.Description = description
	}
	if data, ok := p.data(); ok {
		cmd.Data = data
	}
	return cmd, errs
}

func decodeUpdateReport(id uint, p payload) (command.UpdateReportCommand, *apperror.ValidationError) {
	errs := apperror.NewValidationError()
	cmd := command.UpdateReportCommand{ID: id, Title: p.str(errs, "title")}
	if t := p.str(errs, "type"); t != nil {
		rt := domain.ReportType(*t)
		cmd.Type = &rt
	}
	if s := p.str(errs, "status"); s != nil {
		rs := domain.ReportStatus(*s)
		cmd.Status = &rs
	}
	cmd.Description, cmd.DescriptionSet = p.description(errs)
	cmd.Data, cmd.DataSet = p.data()
	return cmd, errs
}
