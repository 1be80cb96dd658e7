package service

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-blog-api/internal/core/validation"
)

func TestSignupInput_PasswordMessages(t *testing.T) {
	tests := []struct {
		password string
		want     string
	}{
		{"Se1", "Password must be at least 8 characters long"},
		{"secret123", "Password must contain at least 1 uppercase letter"},
		{"SecretABC", "Password must contain at least 1 number"},
		{"Secret 123", "Password must not contain white spaces"},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			body := `{"name":"Jane Doe","email":"jane@example.com","password":"` + tt.password + `"}`
			in, errs := validation.DecodeJSON[SignupInput](strings.NewReader(body))
			assert.Nil(t, in)
			require.Len(t, errs, 1)
			assert.Equal(t, []string{"password"}, errs[0].Path)
			assert.Equal(t, tt.want, errs[0].Message)
		})
	}
}

func TestCredentialsInput_AppliesPasswordRules(t *testing.T) {
	_, errs := validation.DecodeJSON[CredentialsInput](strings.NewReader(`{"email":"jane@example.com","password":"weak"}`))
	require.Len(t, errs, 1)
	assert.Equal(t, "Password must be at least 8 characters long", errs[0].Message)
}

func TestBlogInput_Rules(t *testing.T) {
	_, errs := validation.DecodeJSON[BlogInput](strings.NewReader(`{"title":"Hey","content":"long enough","status":"deleted"}`))
	require.Len(t, errs, 2)
	assert.Equal(t, []string{"title"}, errs[0].Path)
	assert.Equal(t, []string{"status"}, errs[1].Path)

	_, errs = validation.DecodeJSON[BlogInput](strings.NewReader(`{"title":"Valid title","content":"body","author":"x"}`))
	require.NotEmpty(t, errs)
	assert.Equal(t, []string{"author"}, errs[0].Path)

	in, errs := validation.DecodeJSON[BlogInput](strings.NewReader(`{"title":"  Valid title  ","content":"some body"}`))
	require.Nil(t, errs)
	assert.Equal(t, "Valid title", in.Title)
	assert.Nil(t, in.Status)
}

func TestPageQuery(t *testing.T) {
	q, errs := validation.DecodeQuery[PageQuery](url.Values{"pageNumber": {"3"}, "pageSize": {"20"}, "sort": {"x"}})
	require.Nil(t, errs)
	assert.Equal(t, 3, q.Page().Number)
	assert.Equal(t, 20, q.Page().Size)

	_, errs = validation.DecodeQuery[PageQuery](url.Values{"pageNumber": {"0"}})
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid page number", errs[0].Message)

	_, errs = validation.DecodeQuery[PageQuery](url.Values{"pageSize": {"abc"}})
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"pageSize"}, errs[0].Path)
	assert.Equal(t, "Invalid page size", errs[0].Message)

	_, errs = validation.DecodeQuery[PageQuery](url.Values{"pageSize": {"101"}})
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid page size", errs[0].Message)
}
