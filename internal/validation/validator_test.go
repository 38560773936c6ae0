// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package validation_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/validation"
)

type testRequest struct {
	Username string  `json:"username" validate:"required"`
	Password string  `json:"password" validate:"required,min=6,maxbytes=72"`
	Role     string  `json:"role" validate:"omitempty,oneof=admin collaborator"`
	Status   *string `json:"status" validate:"omitempty,oneof=draft published"`
	PostID   int64   `json:"post_id" validate:"omitempty,gt=0"`
}

func TestValidator_Valid(t *testing.T) {
	v := validation.New()

	status := "draft"
	err := v.Validate(testRequest{Username: "ana", Password: "secret1", Role: "admin", Status: &status})
	assert.NoError(t, err)

	// Optional fields may be absent.
	err = v.Validate(testRequest{Username: "ana", Password: "secret1"})
	assert.NoError(t, err)

	// Exactly 72 bytes is the bcrypt limit and still accepted.
	err = v.Validate(testRequest{Username: "ana", Password: strings.Repeat("é", 36)})
	assert.NoError(t, err)
}

func TestValidator_Errors(t *testing.T) {
	v := validation.New()
	bogus := "archived"

	tests := []struct {
		name    string
		req     testRequest
		wantMsg string
	}{
		{
			name:    "missing required field uses json name",
			req:     testRequest{Password: "secret1"},
			wantMsg: "username is required",
		},
		{
			name:    "short password",
			req:     testRequest{Username: "ana", Password: "123"},
			wantMsg: "password must be at least 6 characters",
		},
		{
			name:    "password over 72 bytes",
			req:     testRequest{Username: "ana", Password: strings.Repeat("a", 73)},
			wantMsg: "password must not exceed 72 bytes",
		},
		{
			name:    "multibyte password counted in bytes",
			req:     testRequest{Username: "ana", Password: strings.Repeat("é", 37)},
			wantMsg: "password must not exceed 72 bytes",
		},
		{
			name:    "role outside allow-list",
			req:     testRequest{Username: "ana", Password: "secret1", Role: "owner"},
			wantMsg: "role must be one of: admin collaborator",
		},
		{
			name:    "pointer enum",
			req:     testRequest{Username: "ana", Password: "secret1", Status: &bogus},
			wantMsg: "status must be one of: draft published",
		},
		{
			name:    "first message in field order when several fail",
			req:     testRequest{},
			wantMsg: "password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var derr *domainerrors.Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, domainerrors.CodeValidation, derr.Code)
			assert.Equal(t, http.StatusBadRequest, derr.HTTPStatus())
			assert.Equal(t, tt.wantMsg, derr.Message)
		})
	}
}
