// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// fakes_test.go provides in-memory implementations of the store, session
// and storage interfaces plus request helpers shared by the handler tests. No database or Valkey is needed.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/session"
	"inkwell/internal/validation"
)

var errStoreDown = errors.New("connection refused")

// --- categories ---

type memCategories struct {
	mu     sync.Mutex
	items  map[int64]models.Category
	nextID int64
	err    error // returned by every call when set
	lists  int   // number of List calls
}

func newMemCategories(items ...models.Category) *memCategories {
	m := &memCategories{items: map[int64]models.Category{}}
	for _, c := range items {
		m.nextID++
		c.ID = m.nextID
		m.items[c.ID] = c
	}
	return m
}

func (m *memCategories) List(ctx context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Category{}
	for id := int64(1); id <= m.nextID; id++ {
		if c, ok := m.items[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCategories) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memCategories) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, existing := range m.items {
		if existing.Slug == c.Slug {
			return nil, domainerrors.Conflictf("Slug %q already in use", c.Slug)
		}
	}
	created := *c
	if created.Color == "" {
		created.Color = models.DefaultCategoryColor
	}
	m.nextID++
	created.ID = m.nextID
	m.items[created.ID] = created
	return &created, nil
}

func (m *memCategories) Update(ctx context.Context, id int64, p models.CategoryPatch) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.IsEmpty() {
		return nil, domainerrors.Validation("Nothing to update")
	}
	c, ok := m.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	m.items[id] = c
	return &c, nil
}

func (m *memCategories) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.items, id)
	return nil
}

// --- authors ---

type memAuthors struct {
	mu     sync.Mutex
	items  map[int64]models.Author
	nextID int64
	inUse  map[int64]bool // authors referenced by a post
}

func newMemAuthors() *memAuthors {
	return &memAuthors{items: map[int64]models.Author{}, inUse: map[int64]bool{}}
}

func (m *memAuthors) List(ctx context.Context) ([]models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Author{}
	for id := int64(1); id <= m.nextID; id++ {
		if a, ok := m.items[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAuthors) FindByID(ctx context.Context, id int64) (*models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memAuthors) Create(ctx context.Context, a *models.Author) (*models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *a
	m.nextID++
	created.ID = m.nextID
	m.items[created.ID] = created
	return &created, nil
}

func (m *memAuthors) Update(ctx context.Context, id int64, p models.AuthorPatch) (*models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.IsEmpty() {
		return nil, domainerrors.Validation("Nothing to update")
	}
	a, ok := m.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
	if p.Bio != nil {
		a.Bio = *p.Bio
	}
	if p.Avatar != nil {
		a.Avatar = *p.Avatar
	}
	m.items[id] = a
	return &a, nil
}

func (m *memAuthors) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inUse[id] {
		return domainerrors.Conflict("Author still has posts")
	}
	delete(m.items, id)
	return nil
}

// --- posts ---

// memPosts records the arguments it receives and serves posts from a map.
type memPosts struct {
	mu         sync.Mutex
	items      map[int64]*models.Post
	nextID     int64
	lastFilter models.PostFilter
	lastSearch string
	lastPatch  models.PostPatch
	created    *models.Post
}

func newMemPosts(posts ...models.Post) *memPosts {
	m := &memPosts{items: map[int64]*models.Post{}}
	for _, p := range posts {
		m.nextID++
		p.ID = m.nextID
		if p.Tags == nil {
			p.Tags = []string{}
		}
		m.items[p.ID] = &p
	}
	return m
}

func (m *memPosts) List(ctx context.Context, f models.PostFilter) (*models.PostPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = f
	data := []models.Post{}
	for id := int64(1); id <= m.nextID; id++ {
		p, ok := m.items[id]
		if !ok {
			continue
		}
		switch {
		case f.Status != "" && p.Status != f.Status:
			continue
		case f.Status == "" && !f.All && !p.IsPublished():
			continue
		case f.CategorySlug != "" && p.Category.Slug != f.CategorySlug:
			continue
		}
		data = append(data, *p)
	}
	total := len(data)
	start := min(f.Offset(), total)
	end := min(start+models.PostsPerPage, total)
	return &models.PostPage{
		Data:        data[start:end],
		CurrentPage: f.CurrentPage(),
		TotalPages:  models.TotalPages(total),
		Total:       total,
	}, nil
}

func (m *memPosts) Search(ctx context.Context, q string) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSearch = q
	out := []models.Post{}
	for _, p := range m.items {
		if p.IsPublished() && strings.Contains(strings.ToLower(p.Title), strings.ToLower(q)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPosts) Featured(ctx context.Context) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.Featured && p.IsPublished() {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPosts) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPosts) ViewBySlug(ctx context.Context, slug string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.Slug == slug {
			p.Views++
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPosts) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.Slug == p.Slug {
			return nil, domainerrors.Conflict("Slug already in use")
		}
	}
	created := *p
	m.created = &created
	m.nextID++
	created.ID = m.nextID
	if created.Tags == nil {
		created.Tags = []string{}
	}
	m.items[created.ID] = &created
	cp := created
	return &cp, nil
}

func (m *memPosts) Update(ctx context.Context, id int64, p models.PostPatch) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPatch = p
	if p.IsEmpty() {
		return nil, domainerrors.Validation("Nothing to update")
	}
	post, ok := m.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Featured != nil {
		post.Featured = *p.Featured
	}
	if p.Status != nil {
		post.Status = *p.Status
	}
	if p.Tags != nil {
		post.Tags = *p.Tags
	}
	cp := *post
	return &cp, nil
}

func (m *memPosts) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// --- users ---

// memUsers keeps plaintext passwords; CheckPassword compares them directly.
type memUsers struct {
	mu        sync.Mutex
	items     map[int64]*models.User
	passwords map[int64]string
	nextID    int64
	lastPatch models.UserPatch
}

func newMemUsers() *memUsers {
	return &memUsers{items: map[int64]*models.User{}, passwords: map[int64]string{}}
}

// add stores a user directly and returns its ID.
func (m *memUsers) add(username, password, name string, role models.Role) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.items[m.nextID] = &models.User{
		ID:       m.nextID,
		Username: username,
		Name:     name,
		Role:     role,
	}
	m.passwords[m.nextID] = password
	return m.nextID
}

func (m *memUsers) List(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.User{}
	for id := int64(1); id <= m.nextID; id++ {
		if u, ok := m.items[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUsers) FindByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Create(ctx context.Context, u *models.User, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.Username == u.Username {
			return nil, domainerrors.Conflict("Username already in use")
		}
	}
	created := *u
	if created.Role == "" {
		created.Role = models.RoleCollaborator
	}
	m.nextID++
	created.ID = m.nextID
	m.items[created.ID] = &created
	m.passwords[created.ID] = password
	cp := created
	return &cp, nil
}

func (m *memUsers) Update(ctx context.Context, id int64, p models.UserPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPatch = p
	if p.IsEmpty() {
		return nil, domainerrors.Validation("Nothing to update")
	}
	u, ok := m.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if p.Username != nil {
		for otherID, other := range m.items {
			if otherID != id && other.Username == *p.Username {
				return nil, domainerrors.Conflict("Username already in use")
			}
		}
		u.Username = *p.Username
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Password != nil {
		m.passwords[id] = *p.Password
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) SetPassword(ctx context.Context, id int64, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domainerrors.ErrNotFound
	}
	m.passwords[id] = password
	return nil
}

func (m *memUsers) DeleteGuarded(ctx context.Context, actorID, targetID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if actorID == targetID {
		return domainerrors.Forbidden("You cannot delete your own account")
	}
	target, ok := m.items[targetID]
	if !ok {
		return nil
	}
	if target.IsAdmin() {
		admins := 0
		for _, u := range m.items {
			if u.IsAdmin() {
				admins++
			}
		}
		if admins <= 1 {
			return domainerrors.Forbidden("Cannot delete the only admin")
		}
	}
	delete(m.items, targetID)
	delete(m.passwords, targetID)
	return nil
}

func (m *memUsers) CheckPassword(user *models.User, password string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.passwords[user.ID] == password
}

// --- ads ---

type memAds struct {
	mu         sync.Mutex
	items      map[int64]models.Ad
	nextID     int64
	lastFilter models.AdFilter
}

func newMemAds() *memAds {
	return &memAds{items: map[int64]models.Ad{}}
}

func (m *memAds) List(ctx context.Context, f models.AdFilter) ([]models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = f
	out := []models.Ad{}
	for id := m.nextID; id >= 1; id-- {
		a, ok := m.items[id]
		if !ok || (f.Position != "" && a.Position != f.Position) || (f.ActiveOnly && !a.Active) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memAds) FindByID(ctx context.Context, id int64) (*models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memAds) Create(ctx context.Context, a *models.Ad) (*models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *a
	if created.LinkText == "" {
		created.LinkText = models.DefaultAdLinkText
	}
	if created.Position == "" {
		created.Position = models.DefaultAdPosition
	}
	m.nextID++
	created.ID = m.nextID
	m.items[created.ID] = created
	return &created, nil
}

func (m *memAds) Update(ctx context.Context, id int64, p models.AdPatch) (*models.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.IsEmpty() {
		return nil, domainerrors.Validation("Nothing to update")
	}
	a, ok := m.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Active != nil {
		a.Active = *p.Active
	}
	if p.Position != nil {
		a.Position = *p.Position
	}
	m.items[id] = a
	return &a, nil
}

func (m *memAds) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// --- comments ---

type memComments struct {
	mu       sync.Mutex
	items    []models.Comment
	postIDs  map[int64]bool // posts that exist
	lastList int64
}

func newMemComments(postIDs ...int64) *memComments {
	m := &memComments{postIDs: map[int64]bool{}}
	for _, id := range postIDs {
		m.postIDs[id] = true
	}
	return m
}

func (m *memComments) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastList = postID
	out := []models.Comment{}
	for _, c := range m.items {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memComments) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.postIDs[c.PostID] {
		return nil, domainerrors.NotFound("Post not found")
	}
	created := *c
	created.ID = int64(len(m.items) + 1)
	created.Avatar = models.CommentAvatar(c.AuthorName)
	m.items = append(m.items, created)
	return &created, nil
}

// --- sessions ---

type fakeSessions struct {
	mu        sync.Mutex
	created   []*session.Data
	updated   []*session.Data
	destroyed int
	createErr error
}

func (f *fakeSessions) Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, data)
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "test-session", HttpOnly: true})
	return "test-session", nil
}

func (f *fakeSessions) Update(ctx context.Context, r *http.Request, data *session.Data) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, data)
	return nil
}

func (f *fakeSessions) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
	return nil
}

// --- storage ---

type memBackend struct {
	mu    sync.Mutex
	saved map[string][]byte
	types map[string]string
	err   error
}

func newMemBackend() *memBackend {
	return &memBackend{saved: map[string][]byte{}, types: map[string]string{}}
}

func (b *memBackend) Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved[name] = data
	b.types[name] = contentType
	return "/uploads/" + name, nil
}

// --- request helpers ---

// newRequest builds a request with an optional JSON body and session.
func newRequest(method, target, body string, sess *session.Data) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), sess))
	}
	return req
}

// testSession creates a session.Data for the given user.
func testSession(userID int64) *session.Data {
	return &session.Data{UserID: userID, Name: "Test User"}
}

func testValidator() *validation.Validator {
	return validation.New()
}

// decodeBody unmarshals the recorder body into T.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return v
}

// errorMessage returns the "error" field of a JSON error body.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[errorBody](t, rec).Error
}

// assertStatus fails the test when the recorder status differs.
func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, want, bytes.TrimSpace(rec.Body.Bytes()))
	}
}
