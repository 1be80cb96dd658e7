package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-gin-blog-api/internal/core/auth"
	"go-gin-blog-api/internal/domain"
	"go-gin-blog-api/internal/repo"
)

type memRevoker struct {
	mu  sync.Mutex
	ids map[string]time.Duration
}

func (m *memRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ids == nil {
		m.ids = map[string]time.Duration{}
	}
	m.ids[id] = ttl
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.ids[id]
	return ok, nil
}

type fixture struct {
	mem   *repo.Memory
	jwt   *auth.JWTer
	auth  *AuthService
	blogs *BlogService
	users *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := repo.NewMemory()
	j := &auth.JWTer{Secret: []byte("0123456789abcdef0123"), Issuer: "blog-test", TTL: time.Hour, Revoked: &memRevoker{}}
	return &fixture{
		mem:   mem,
		jwt:   j,
		auth:  NewAuthService(mem.Users(), j, bcrypt.MinCost, nil),
		blogs: NewBlogService(mem.Blogs(), nil),
		users: NewUserService(mem.Users()),
	}
}

func (f *fixture) signup(t *testing.T, name, email string) (*domain.User, *auth.Claims) {
	t.Helper()
	u, token, err := f.auth.Signup(context.Background(), SignupInput{Name: name, Email: email, Password: "Secret123"})
	require.NoError(t, err)
	c, err := f.jwt.Parse(token)
	require.NoError(t, err)
	return u, c
}

func TestCheckUnique(t *testing.T) {
	ctx := context.Background()
	holder := func(id string) Lookup {
		return func(context.Context, string) (string, bool, error) { return id, id != "", nil }
	}

	assert.NoError(t, CheckUnique(ctx, holder(""), "title", "Fresh title", ""))
	assert.NoError(t, CheckUnique(ctx, holder("abc"), "title", "Mine", "abc"), "self-update is exempt")

	err := CheckUnique(ctx, holder("abc"), "title", "Taken", "")
	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "title", ce.Field)
	assert.Equal(t, `"Taken" already exists`, err.Error())

	require.ErrorAs(t, CheckUnique(ctx, holder("abc"), "title", "Taken", "other"), &ce)

	boom := errors.New("db down")
	failing := func(context.Context, string) (string, bool, error) { return "", false, boom }
	assert.ErrorIs(t, CheckUnique(ctx, failing, "email", "a@b.co", ""), boom)
}

func TestLookups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, c := f.signup(t, "Jane Doe", "jane@example.com")

	id, found, err := EmailLookup(f.mem.Users())(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, u.ID, id)

	_, found, err = EmailLookup(f.mem.Users())(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, found)

	b, err := f.blogs.Create(ctx, c, BlogInput{Title: "Hello there", Content: "first words"})
	require.NoError(t, err)
	id, found, err = TitleLookup(f.mem.Blogs())(ctx, "Hello there")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, b.ID, id)
}

func TestAuthService_SignupAndSignin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, c := f.signup(t, "Jane Doe", "jane@example.com")
	assert.NotEqual(t, "Secret123", u.PasswordHash)
	assert.Equal(t, u.ID, c.UID)
	assert.False(t, c.IsAdmin)

	token, err := f.auth.Signin(ctx, CredentialsInput{Email: "jane@example.com", Password: "Secret123"})
	require.NoError(t, err)
	c, err = f.jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, c.UID)
	assert.Equal(t, "jane@example.com", c.Email)

	_, err = f.auth.Signin(ctx, CredentialsInput{Email: "jane@example.com", Password: "Wrong1234"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Signin(ctx, CredentialsInput{Email: "nobody@example.com", Password: "Secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_DuplicateSignup(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Jane Doe", "jane@example.com")

	_, _, err := f.auth.Signup(context.Background(), SignupInput{Name: "Other Jane", Email: "jane@example.com", Password: "Secret123"})
	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "email", ce.Field)
}

func TestAuthService_TokenCarriesAdminFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, _ := f.signup(t, "Admin User", "admin@example.com")
	require.NoError(t, f.users.SetAdmin(ctx, " ADMIN@example.com ", true))

	token, err := f.auth.Signin(ctx, CredentialsInput{Email: "admin@example.com", Password: "Secret123"})
	require.NoError(t, err)
	c, err := f.jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, c.UID)
	assert.True(t, c.IsAdmin)
	assert.True(t, auth.IsAdmin(c))
}

func TestAuthService_Signout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, c := f.signup(t, "Jane Doe", "jane@example.com")

	require.NoError(t, f.auth.Signout(ctx, c))

	token, err := f.jwt.Issue(c.Identity())
	require.NoError(t, err)
	_, err = f.jwt.Authenticate(ctx, token)
	require.NoError(t, err, "other tokens stay valid")

	f.jwt.Revoked = nil
	assert.Error(t, f.auth.Signout(ctx, c))
}

func TestBlogService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, c := f.signup(t, "Jane Doe", "jane@example.com")

	b, err := f.blogs.Create(ctx, c, BlogInput{Title: "Hello there", Content: "first words"})
	require.NoError(t, err)
	assert.Len(t, b.ID, 24)
	assert.Equal(t, domain.StatusPublished, b.Status)
	assert.Equal(t, u.ID, b.AuthorID)
	require.NotNil(t, b.Author)
	assert.Equal(t, "Jane Doe", b.Author.Name)

	draft := "draft"
	b, err = f.blogs.Create(ctx, c, BlogInput{Title: "A draft post", Content: "not yet", Status: &draft})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, b.Status)

	_, err = f.blogs.Create(ctx, c, BlogInput{Title: "A draft post", Content: "again"})
	var ce *domain.ConflictError
	assert.ErrorAs(t, err, &ce)
}

func TestBlogService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, owner := f.signup(t, "Owner Person", "owner@example.com")
	_, other := f.signup(t, "Other Person", "other@example.com")

	archived := "archived"
	b, err := f.blogs.Create(ctx, owner, BlogInput{Title: "Owned post", Content: "body text", Status: &archived})
	require.NoError(t, err)

	_, err = f.blogs.Update(ctx, other, b.ID, BlogInput{Title: "Hijacked", Content: "nope"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.blogs.Update(ctx, owner, "000000000000000000000000", BlogInput{Title: "Whatever", Content: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := f.blogs.Update(ctx, owner, b.ID, BlogInput{Title: "Owned post", Content: "new body"})
	require.NoError(t, err)
	assert.Equal(t, "new body", updated.Content)
	assert.Equal(t, domain.StatusArchived, updated.Status, "status kept when omitted")
	assert.Equal(t, owner.UID, updated.AuthorID)

	got, err := f.mem.Blogs().FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "new body", got.Content)
}

func TestBlogService_ListPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, c := f.signup(t, "Jane Doe", "jane@example.com")
	for i := 0; i < 25; i++ {
		_, err := f.blogs.Create(ctx, c, BlogInput{Title: fmt.Sprintf("Post number %d", i), Content: "content"})
		require.NoError(t, err)
	}

	n, size := 2, 10
	blogs, info, err := f.blogs.List(ctx, (&PageQuery{PageNumber: &n, PageSize: &size}).Page())
	require.NoError(t, err)
	assert.Len(t, blogs, 10)
	assert.Equal(t, domain.PageInfo{TotalItems: 25, TotalPages: 3, PageSize: 10, PageNumber: 2}, info)

	blogs, info, err = f.blogs.List(ctx, (&PageQuery{}).Page())
	require.NoError(t, err)
	assert.Len(t, blogs, 10)
	assert.Equal(t, 1, info.PageNumber)
}

func TestBlogService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, c := f.signup(t, "Jane Doe", "jane@example.com")
	b, err := f.blogs.Create(ctx, c, BlogInput{Title: "Short lived", Content: "bye soon"})
	require.NoError(t, err)

	require.NoError(t, f.blogs.Delete(ctx, b.ID))
	assert.ErrorIs(t, f.blogs.Delete(ctx, b.ID), domain.ErrNotFound)
}

func TestUserService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signup(t, "Jane Doe", "jane@example.com")
	f.signup(t, "John Doe", "john@example.com")

	users, info, err := f.users.List(ctx, domain.NewPage(nil, nil))
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.EqualValues(t, 2, info.TotalItems)
	assert.EqualValues(t, 1, info.TotalPages)

	assert.ErrorIs(t, f.users.SetAdmin(ctx, "ghost@example.com", true), domain.ErrNotFound)
}

func TestInputs_Normalize(t *testing.T) {
	s := SignupInput{Name: "  Jane Doe ", Email: " Jane@Example.COM "}
	s.Normalize()
	assert.Equal(t, "Jane Doe", s.Name)
	assert.Equal(t, "jane@example.com", s.Email)

	b := BlogInput{Title: "  Spaced title ", Content: "\tbody\n"}
	b.Normalize()
	assert.Equal(t, "Spaced title", b.Title)
	assert.Equal(t, "body", b.Content)
}
