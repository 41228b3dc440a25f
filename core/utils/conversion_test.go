package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 0, ToInt(nil))
	assert.Equal(t, 30, ToInt(float64(30)))
	assert.Equal(t, 12, ToInt("12"))
	assert.Equal(t, 12, ToInt(" 12.9 "))
	assert.Equal(t, 7, ToInt(json.Number("7")))
	assert.Equal(t, 3, ToInt([]byte("3")))
	assert.Equal(t, 0, ToInt("abc"))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "4", ToString(float64(4)))
	assert.Equal(t, "x", ToString([]byte("x")))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool(float64(1)))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}

func TestToTime(t *testing.T) {
	got := ToTime("2025-03-01T10:00:00Z")
	if assert.NotNil(t, got) {
		assert.True(t, got.Equal(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))
	}
	assert.NotNil(t, ToTime("2025-03-01"))
	assert.Nil(t, ToTime(""))
	assert.Nil(t, ToTime("not a date"))
}

func TestToDecimal(t *testing.T) {
	assert.Nil(t, ToDecimal(nil))
	assert.Nil(t, ToDecimal(""))
	assert.Nil(t, ToDecimal("gratis"))

	got := ToDecimal(" 1990.50 ")
	if assert.NotNil(t, got) {
		assert.Equal(t, "1990.5", got.String())
	}
	assert.Equal(t, "1290", ToDecimal(float64(1290)).String())
	assert.Equal(t, "15", ToDecimal(15).String())
	assert.Equal(t, "3.2", ToDecimal(json.Number("3.20")).String())
}
