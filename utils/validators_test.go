package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "13:45", "23:59"}
	for _, v := range valid {
		assert.True(t, IsValidTime(v), v)
	}

	invalid := []string{"24:00", "12:60", "9:30", "09:5", "0930", "noon", ""}
	for _, v := range invalid {
		assert.False(t, IsValidTime(v), v)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("somsak@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.co.th"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("Passw0rd"))
	assert.True(t, IsValidPassword("abc123!x"))
	assert.False(t, IsValidPassword("short"))
	assert.False(t, IsValidPassword("alllowercase"))
}

func TestIsValidCoordinates(t *testing.T) {
	assert.True(t, IsValidLatitude(13.75))
	assert.True(t, IsValidLatitude(-90))
	assert.False(t, IsValidLatitude(90.1))

	assert.True(t, IsValidLongitude(100.4914))
	assert.True(t, IsValidLongitude(180))
	assert.False(t, IsValidLongitude(-180.5))
}

func TestIsValidWebsite(t *testing.T) {
	assert.True(t, IsValidWebsite("https://example.com"))
	assert.True(t, IsValidWebsite("example.com/path"))
	assert.False(t, IsValidWebsite("not a url"))
}
