package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrongPasswordValidation(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "meets all requirements", password: "SecurePass123!", valid: true},
		{name: "too short", password: "Ab1!", valid: false},
		{name: "missing uppercase", password: "securepass123!", valid: false},
		{name: "missing lowercase", password: "SECUREPASS123!", valid: false},
		{name: "missing number", password: "SecurePass!", valid: false},
		{name: "missing special character", password: "SecurePass123", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := RegisterRequest{
				Email:    "user@example.com",
				Username: "janedev",
				Password: tt.password,
			}
			err := req.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRecordActivityRequestValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   RecordActivityRequest
		valid bool
	}{
		{
			name:  "minimal valid request",
			req:   RecordActivityRequest{ActivityType: "codingChallenges"},
			valid: true,
		},
		{
			name:  "missing activity type",
			req:   RecordActivityRequest{MinutesSpent: 30},
			valid: false,
		},
		{
			name:  "negative minutes",
			req:   RecordActivityRequest{ActivityType: "codingChallenges", MinutesSpent: -5},
			valid: false,
		},
		{
			name:  "negative xp",
			req:   RecordActivityRequest{ActivityType: "codingChallenges", XPEarned: -10},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestChatRequestValidation(t *testing.T) {
	assert.NoError(t, ChatRequest{Message: "help me prep", Context: "interview"}.Validate())
	assert.Error(t, ChatRequest{Message: ""}.Validate())
	assert.Error(t, ChatRequest{Message: "hi", Context: "astrology"}.Validate())
}

func TestFormatValidationErrors(t *testing.T) {
	err := RegisterRequest{Email: "not-an-email", Username: "x", Password: "weak"}.Validate()
	assert.Error(t, err)

	formatted := FormatValidationErrors(err)
	assert.NotEmpty(t, formatted)

	fields := map[string]bool{}
	for _, fe := range formatted {
		fields[fe.Field] = true
		assert.NotEmpty(t, fe.Message)
	}
	assert.True(t, fields["Email"])
	assert.True(t, fields["Username"])
	assert.True(t, fields["Password"])
}
