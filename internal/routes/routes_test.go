package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticPrefix(t *testing.T) {
	assert.Equal(t, "/uploads", staticPrefix("/uploads"))
	assert.Equal(t, "/files", staticPrefix("http://localhost:8080/files/"))
	assert.Equal(t, "/uploads", staticPrefix(""))
	assert.Equal(t, "/uploads", staticPrefix("https://cdn.example.com"))
}
