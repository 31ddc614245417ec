package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/dto/response"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/apperror"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// parseUUIDParam reads a path id, answering 400 when it is malformed
func parseUUIDParam(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUID parses a query value, empty meaning no filter
func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := utils.ParseUUID(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// requireUUID parses a body field, reporting a malformed value as a
// validation failure on field
func requireUUID(field, s string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(s)
	if err != nil {
		return uuid.Nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: field, Message: "must be a valid UUID"},
		})
	}
	return id, nil
}

// parseReceivedAt accepts a calendar date, read in loc, or an RFC 3339 instant
func parseReceivedAt(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD or RFC 3339, got %q", s)
	}
	return &t, nil
}

// bindError turns a binding failure into a 422 listing the offending fields,
// or a 400 when the body could not be decoded at all
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{
				Field:   toSnake(fe.Field()),
				Message: "failed on the '" + fe.Tag() + "' rule",
			})
		}
		return apperror.NewValidationError(fields)
	}
	return apperror.NewBadRequestError("Invalid request body: " + err.Error())
}

func toSnake(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			if prevLower {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
			prevLower = false
		} else {
			prevLower = true
		}
		b.WriteRune(r)
	}
	return b.String()
}
