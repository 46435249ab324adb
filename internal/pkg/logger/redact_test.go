package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "ja***@example.com", RedactEmail("jane.doe@example.com"))
	assert.Equal(t, "***@example.com", RedactEmail("ab@example.com"))
	assert.Equal(t, "***@***", RedactEmail("not-an-email"))
}

func TestRedactName(t *testing.T) {
	assert.Equal(t, "J*** D***", RedactName("Jane Doe"))
	assert.Equal(t, "J***", RedactName("Jane"))
	assert.Equal(t, "", RedactName("   "))
}
