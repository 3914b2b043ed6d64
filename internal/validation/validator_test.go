package validation

import (
	"testing"

	"rawabit/internal/i18n"
	"rawabit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title string `json:"title" validate:"notblank,max=10"`
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"username" validate:"omitempty,min=3"`
	Count int    `json:"limit" validate:"omitempty,min=1"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     sampleRequest
		wantMsg string
	}{
		{name: "valid", req: sampleRequest{Title: "مرحبا"}},
		{name: "blank title", req: sampleRequest{Title: "   "}, wantMsg: "title is required"},
		{name: "title too long", req: sampleRequest{Title: "abcdefghijk"}, wantMsg: "title must be at most 10 characters"},
		{name: "bad email", req: sampleRequest{Title: "x", Email: "nope"}, wantMsg: "invalid email address"},
		{name: "short username", req: sampleRequest{Title: "x", Name: "ab"}, wantMsg: "username must be at least 3 characters"},
		{name: "non-string min", req: sampleRequest{Title: "x", Count: -1}, wantMsg: "limit is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.CodeValidation, appErr.Code)
			assert.Equal(t, tt.wantMsg, appErr.Localize(i18n.English))
		})
	}
}

func TestStructArabicFieldNames(t *testing.T) {
	err := Struct(sampleRequest{})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "الحقل العنوان مطلوب", appErr.Localize(i18n.Arabic))
}
