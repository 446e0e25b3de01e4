package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

type sampleRequest struct {
	Title    string  `json:"title" validate:"required,notblank,max=10"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Priority *string `json:"priority" validate:"omitempty,oneof=low medium"`
}

func TestValidateStruct(t *testing.T) {
	low := "low"
	urgent := "urgent"

	tests := []struct {
		name        string
		req         sampleRequest
		wantErr     bool
		wantDetails string
	}{
		{"valid", sampleRequest{Title: "printer", Priority: &low}, false, ""},
		{"missing title", sampleRequest{}, true, "title is required"},
		{"blank title", sampleRequest{Title: "   "}, true, "title must not be blank"},
		{"title too long", sampleRequest{Title: "a very long title"}, true, "title must be at most 10 characters long"},
		{"bad email", sampleRequest{Title: "x", Email: "nope"}, true, "email must be a valid email address"},
		{"bad enum", sampleRequest{Title: "x", Priority: &urgent}, true, "priority must be one of [low medium]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, errors.GetAppError(err).Details, tt.wantDetails)
		})
	}
}
