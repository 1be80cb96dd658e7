package validation

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	Name     string  `json:"name" validate:"required,min=5,max=50"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8,upper,digit,nospace" msg_min:"Password must be at least 8 characters long"`
	Role     *string `json:"role" validate:"omitempty,oneof=reader writer"`
}

func (a *account) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
}

type listing struct {
	Page *int   `form:"page" validate:"omitempty,min=1,max=99999" msg:"Invalid page number"`
	Size *int   `form:"size" validate:"omitempty,min=1,max=100" msg:"Invalid page size"`
	Sort string `form:"sort"`
}

func paths(errs Errors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, strings.Join(e.Path, "."))
	}
	return out
}

func TestDecodeJSON_Valid(t *testing.T) {
	in, errs := DecodeJSON[account](strings.NewReader(`{"name":"  Jane Doe ","email":"Jane@Example.COM","password":"Secret123"}`))
	require.Nil(t, errs)
	require.NotNil(t, in)
	assert.Equal(t, "Jane Doe", in.Name)
	assert.Equal(t, "jane@example.com", in.Email)
	assert.Nil(t, in.Role)
}

func TestDecodeJSON_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		path    string
		message string
	}{
		{"missing name", `{"email":"a@b.co","password":"Secret123"}`, "name", "name is a required field"},
		{"short name", `{"name":"Jo","email":"a@b.co","password":"Secret123"}`, "name", "name must be at least 5 characters in length"},
		{"bad email", `{"name":"Jane Doe","email":"nope","password":"Secret123"}`, "email", "email must be a valid email address"},
		{"short password", `{"name":"Jane Doe","email":"a@b.co","password":"Se1"}`, "password", "Password must be at least 8 characters long"},
		{"no upper", `{"name":"Jane Doe","email":"a@b.co","password":"secret123"}`, "password", "password must contain at least 1 uppercase letter"},
		{"no digit", `{"name":"Jane Doe","email":"a@b.co","password":"SecretABC"}`, "password", "password must contain at least 1 number"},
		{"space", `{"name":"Jane Doe","email":"a@b.co","password":"Secret 123"}`, "password", "password must not contain white spaces"},
		{"bad enum", `{"name":"Jane Doe","email":"a@b.co","password":"Secret123","role":"admin"}`, "role", "role must be one of [reader writer]"},
		{"unknown key", `{"name":"Jane Doe","email":"a@b.co","password":"Secret123","isAdmin":true}`, "isAdmin", `Unrecognized key: "isAdmin"`},
		{"wrong type", `{"name":12345,"email":"a@b.co","password":"Secret123"}`, "name", "Expected string, received number"},
		{"not json", `{"name":`, "", "Invalid JSON"},
		{"array body", `[]`, "", "Expected object, received array"},
		{"upper-case key", `{"NAME":"Jane Doe","email":"a@b.co","password":"Secret123"}`, "NAME", `Unrecognized key: "NAME"`},
		{"title-case keys", `{"Name":"Jane Doe","Email":"a@b.co","password":"Secret123"}`, "Email", `Unrecognized key: "Email"`},
		{"trailing value", `{"name":"Jane Doe","email":"a@b.co","password":"Secret123"} {"junk":1}`, "", "Invalid JSON"},
		{"trailing garbage", `{"name":"Jane Doe","email":"a@b.co","password":"Secret123"}}`, "", "Invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, errs := DecodeJSON[account](strings.NewReader(tt.body))
			assert.Nil(t, in)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.path, strings.Join(errs[0].Path, "."))
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestDecodeJSON_OneMessagePerFieldInOrder(t *testing.T) {
	_, errs := DecodeJSON[account](strings.NewReader(`{"name":"x","email":"bad","password":"bad"}`))
	require.Len(t, errs, 3)
	assert.Equal(t, []string{"name", "email", "password"}, paths(errs))
	assert.Equal(t, "Password must be at least 8 characters long", errs[2].Message)
}

func TestDecodeJSON_EmptyBodyIsEmptyObject(t *testing.T) {
	_, errs := DecodeJSON[account](strings.NewReader(""))
	assert.Equal(t, []string{"name", "email", "password"}, paths(errs))

	_, errs = DecodeJSON[account](nil)
	assert.Len(t, errs, 3)
}

func TestDecodeQuery(t *testing.T) {
	q, errs := DecodeQuery[listing](url.Values{"page": {"2"}, "size": {" 25 "}, "other": {"x"}})
	require.Nil(t, errs)
	require.NotNil(t, q.Page)
	require.NotNil(t, q.Size)
	assert.Equal(t, 2, *q.Page)
	assert.Equal(t, 25, *q.Size)
	assert.Empty(t, q.Sort)

	q, errs = DecodeQuery[listing](url.Values{})
	require.Nil(t, errs)
	assert.Nil(t, q.Page)
	assert.Nil(t, q.Size)
}

func TestDecodeQuery_Errors(t *testing.T) {
	tests := []struct {
		name    string
		q       url.Values
		path    string
		message string
	}{
		{"not a number", url.Values{"page": {"abc"}}, "page", "Invalid page number"},
		{"zero page", url.Values{"page": {"0"}}, "page", "Invalid page number"},
		{"page too large", url.Values{"page": {"100000"}}, "page", "Invalid page number"},
		{"size too large", url.Values{"size": {"101"}}, "size", "Invalid page size"},
		{"negative size", url.Values{"size": {"-1"}}, "size", "Invalid page size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, errs := DecodeQuery[listing](tt.q)
			assert.Nil(t, q)
			require.Len(t, errs, 1)
			assert.Equal(t, []string{tt.path}, errs[0].Path)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{{Path: []string{"title"}, Message: "too short"}, {Path: []string{}, Message: "Invalid JSON"}}
	assert.Equal(t, "validation failed: title: too short; Invalid JSON", errs.Error())
	assert.Equal(t, Errors{{Path: []string{"id"}, Message: "bad"}}, Field("id", "bad"))
}
