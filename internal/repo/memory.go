package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-gin-blog-api/internal/domain"
)

// Memory keeps users and blogs in process. Email and title are unique, as the
// SQL indexes make them.
type Memory struct {
	mu    sync.RWMutex
	users map[string]domain.User
	blogs map[string]domain.Blog
	seq   int64
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users: make(map[string]domain.User),
		blogs: make(map[string]domain.Blog),
		now:   time.Now,
	}
}

func (m *Memory) Users() *MemoryUserRepo { return &MemoryUserRepo{m: m} }
func (m *Memory) Blogs() *MemoryBlogRepo { return &MemoryBlogRepo{m: m} }

// stamp returns a strictly increasing time so created_at ordering is stable.
func (m *Memory) stamp() time.Time {
	m.seq++
	return m.now().Add(time.Duration(m.seq) * time.Nanosecond)
}

type MemoryUserRepo struct{ m *Memory }

func (r *MemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, x := range r.m.users {
		if x.Email == u.Email {
			return &domain.ConflictError{Field: "email", Value: u.Email}
		}
	}
	ts := r.m.stamp()
	u.CreatedAt, u.UpdatedAt = ts, ts
	r.m.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemoryUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, u := range r.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.m.mu.RLock()
	all := make([]domain.User, 0, len(r.m.users))
	for _, u := range r.m.users {
		all = append(all, u)
	}
	r.m.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, offset, limit), int64(len(all)), nil
}

func (r *MemoryUserRepo) SetAdmin(ctx context.Context, email string, admin bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, u := range r.m.users {
		if u.Email == email {
			u.IsAdmin = admin
			u.UpdatedAt = r.m.stamp()
			r.m.users[id] = u
			return nil
		}
	}
	return domain.ErrNotFound
}

type MemoryBlogRepo struct{ m *Memory }

func (r *MemoryBlogRepo) Create(ctx context.Context, b *domain.Blog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.titleTaken(b.Title, "") {
		return &domain.ConflictError{Field: "title", Value: b.Title}
	}
	if b.Status == "" {
		b.Status = domain.StatusPublished
	}
	b.TitleKey = domain.TitleKey(b.Title)
	ts := r.m.stamp()
	b.CreatedAt, b.UpdatedAt = ts, ts
	stored := *b
	stored.Author = nil
	r.m.blogs[b.ID] = stored
	b.Author = r.author(b.AuthorID)
	return nil
}

func (r *MemoryBlogRepo) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	b, ok := r.m.blogs[id]
	if !ok {
		return nil, nil
	}
	b.Author = r.author(b.AuthorID)
	return &b, nil
}

func (r *MemoryBlogRepo) FindByTitle(ctx context.Context, title string) (*domain.Blog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, b := range r.m.blogs {
		if b.Title == title {
			b.Author = r.author(b.AuthorID)
			return &b, nil
		}
	}
	return nil, nil
}

func (r *MemoryBlogRepo) List(ctx context.Context, offset, limit int) ([]domain.Blog, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	all := make([]domain.Blog, 0, len(r.m.blogs))
	for _, b := range r.m.blogs {
		b.Author = r.author(b.AuthorID)
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, offset, limit), int64(len(all)), nil
}

func (r *MemoryBlogRepo) Update(ctx context.Context, b *domain.Blog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cur, ok := r.m.blogs[b.ID]
	if !ok {
		return nil
	}
	if r.titleTaken(b.Title, b.ID) {
		return &domain.ConflictError{Field: "title", Value: b.Title}
	}
	cur.Title, cur.TitleKey, cur.Content, cur.Status = b.Title, domain.TitleKey(b.Title), b.Content, b.Status
	cur.UpdatedAt = r.m.stamp()
	r.m.blogs[b.ID] = cur
	b.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r *MemoryBlogRepo) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.blogs[id]; !ok {
		return false, nil
	}
	delete(r.m.blogs, id)
	return true, nil
}

// caller holds the lock
func (r *MemoryBlogRepo) titleTaken(title, exceptID string) bool {
	for id, b := range r.m.blogs {
		if b.Title == title && id != exceptID {
			return true
		}
	}
	return false
}

func (r *MemoryBlogRepo) author(id string) *domain.User {
	u, ok := r.m.users[id]
	if !ok {
		return nil
	}
	return &u
}

func window[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
