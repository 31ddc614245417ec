package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/pkg/apperror"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReceivedAt(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	got, err := parseReceivedAt("", paris)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseReceivedAt("2024-03-10", paris)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, paris), *got)

	got, err = parseReceivedAt("2024-03-10T08:30:00Z", paris)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)))

	_, err = parseReceivedAt("10/03/2024", paris)
	assert.Error(t, err)
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "agency_id", toSnake("AgencyID"))
	assert.Equal(t, "client_first_name", toSnake("ClientFirstName"))
	assert.Equal(t, "notes", toSnake("Notes"))
}

func TestBindError(t *testing.T) {
	type body struct {
		AgencyID string `validate:"required,uuid"`
	}
	verr := validator.New().Struct(body{AgencyID: "nope"})
	require.Error(t, verr)

	err := bindError(verr)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	appErr := apperror.GetAppError(err)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "agency_id", appErr.Errors[0].Field)

	err = bindError(errors.New("unexpected EOF"))
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestRequireUUID(t *testing.T) {
	id, err := requireUUID("agency_id", " 6f1c2c9e-3b1a-4c55-9a7e-0d2f4b8e1a10 ")
	require.NoError(t, err)
	assert.Equal(t, "6f1c2c9e-3b1a-4c55-9a7e-0d2f4b8e1a10", id.String())

	_, err = requireUUID("agency_id", "paris")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "agency_id", appErr.Errors[0].Field)
}
