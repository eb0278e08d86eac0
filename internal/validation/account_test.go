package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"reader@example.com",
		"first.last@sub.domain.co",
		"a+tag@b.io",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"no-domain@",
		"spaces in@example.com",
		strings.Repeat("a", 250) + "@x.com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidateFullName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateFullName("Ada Lovelace"))
	assert.NoError(t, ValidateFullName("Jean-Luc O'Neill Jr."))

	assert.Error(t, ValidateFullName("x"))
	assert.Error(t, ValidateFullName(strings.Repeat("a", 81)))
	assert.Error(t, ValidateFullName("rm -rf /;"))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ngPassword", false},
		{"too short", "Ab1", true},
		{"too long", strings.Repeat("Aa1", 50), true},
		{"no uppercase", "weakpassword1", true},
		{"no lowercase", "WEAKPASSWORD1", true},
		{"no digit", "WeakPassword", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
