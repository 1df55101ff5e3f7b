package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidEmployeeID(t *testing.T) {
	valid := []string{"123456", "999999", "000001"}
	for _, id := range valid {
		assert.True(t, ValidEmployeeID(id), "%q should be valid", id)
	}

	invalid := []string{"12345", "1234567", "abcdef", "000000", "", "12 456", "12345x"}
	for _, id := range invalid {
		assert.False(t, ValidEmployeeID(id), "%q should be invalid", id)
	}
}

func TestValidEventDate(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	assert.True(t, ValidEventDate(today))
	assert.True(t, ValidEventDate(tomorrow))
	assert.False(t, ValidEventDate(yesterday))

	assert.False(t, ValidEventDate(""))
	assert.False(t, ValidEventDate("2030-13-01"))
	assert.False(t, ValidEventDate("01/02/2030"))
	assert.False(t, ValidEventDate("2030-1-2"))
}
