package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var item struct {
		ExpiresOn *Date `json:"expires_on"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"expires_on":"2026-11-03"}`), &item))
	require.NotNil(t, item.ExpiresOn)
	assert.Equal(t, "2026-11-03", item.ExpiresOn.String())

	out, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"expires_on":"2026-11-03"}`, string(out))
}

func TestDateRejectsTimestamps(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"2026-11-03T10:00:00Z"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20261103`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2026-01-02", d.String())

	require.NoError(t, d.Scan("2026-03-04 00:00:00+00:00"))
	assert.Equal(t, "2026-03-04", d.String())

	require.NoError(t, d.Scan([]byte("2026-05-06")))
	assert.Equal(t, "2026-05-06", d.String())

	assert.Error(t, d.Scan(42))
}
