package validation

import (
	"testing"

	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type delivery struct {
	Quantity *decimal.Decimal `json:"quantity"`
	Due      *models.Date     `json:"due"`
}

type shipment struct {
	Title      string     `json:"title"`
	Count      *int       `json:"count"`
	Fragile    bool       `json:"fragile"`
	Deliveries []delivery `json:"deliveries"`
}

func TestDecodeJSONReportsFieldsByPath(t *testing.T) {
	var s shipment
	err := DecodeJSON([]byte(`{
		"title": 7,
		"count": "four",
		"fragile": "yes",
		"deliveries": [
			{"quantity": "1.5", "due": "2024-03-01"},
			{"quantity": "zz", "due": "tomorrow"}
		]
	}`), &s)
	require.Error(t, err)

	appErr, ok := err.(*apperror.Error)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidRequest, appErr.Code)
	assert.Equal(t, apperror.FieldErrors{
		"title":                  {"not a valid string"},
		"count":                  {"a valid integer is required"},
		"fragile":                {"must be a valid boolean"},
		"deliveries[1].quantity": {"a valid number is required"},
		"deliveries[1].due":      {"date has wrong format, use 2006-01-02"},
	}, appErr.Fields)
}

func TestDecodeJSONShapeErrors(t *testing.T) {
	var s shipment
	err := DecodeJSON([]byte(`{"deliveries": {"quantity": 1}}`), &s)
	require.Error(t, err)
	assert.Equal(t, apperror.FieldErrors{"deliveries": {"expected a list of items"}}, err.(*apperror.Error).Fields)

	err = DecodeJSON([]byte(`{"deliveries": [3]}`), &s)
	require.Error(t, err)
	assert.Equal(t, apperror.FieldErrors{"deliveries[0]": {"invalid data, expected an object"}}, err.(*apperror.Error).Fields)
}

func TestDecodeJSONEmptyBodyIsEmptyObject(t *testing.T) {
	for _, body := range []string{"", "  \n"} {
		var s shipment
		require.NoError(t, DecodeJSON([]byte(body), &s))
		assert.Empty(t, s.Title)
		assert.Nil(t, s.Deliveries)
	}
}

func TestDecodeJSONMalformedBody(t *testing.T) {
	for _, body := range []string{`{"title": `, `[1, 2]`, `"title"`} {
		t.Run(body, func(t *testing.T) {
			var s shipment
			err := DecodeJSON([]byte(body), &s)
			require.Error(t, err)

			appErr, ok := err.(*apperror.Error)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeInvalidRequest, appErr.Code)
			assert.Equal(t, "invalid request body", appErr.Message)
			assert.Empty(t, appErr.Fields)
		})
	}
}

func TestDecodeJSONNullLeavesFieldUnset(t *testing.T) {
	var s shipment
	require.NoError(t, DecodeJSON([]byte(`{"count": null, "deliveries": [{"due": null}]}`), &s))
	assert.Nil(t, s.Count)
	require.Len(t, s.Deliveries, 1)
	assert.Nil(t, s.Deliveries[0].Due)
}
