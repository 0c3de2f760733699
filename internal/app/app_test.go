package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Andebugulin/bloglist/internal/model"
	"github.com/Andebugulin/bloglist/internal/store"
)

type mockAuth struct {
	loginFn func(ctx context.Context, username, password string) (*model.Session, error)
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (*model.Session, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return nil, errors.New("invalid username or password")
}

type mockBlogs struct {
	listFn   func(ctx context.Context) ([]model.Blog, error)
	createFn func(ctx context.Context, draft model.Draft) (*model.Blog, error)
	updateFn func(ctx context.Context, id model.BlogID, likes int) (*model.Blog, error)
	deleteFn func(ctx context.Context, id model.BlogID) error
}

func (m *mockBlogs) List(ctx context.Context) ([]model.Blog, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockBlogs) Create(ctx context.Context, draft model.Draft) (*model.Blog, error) {
	if m.createFn != nil {
		return m.createFn(ctx, draft)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBlogs) UpdateLikes(ctx context.Context, id model.BlogID, likes int) (*model.Blog, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, likes)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBlogs) Delete(ctx context.Context, id model.BlogID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return errors.New("not implemented")
}

type fixture struct {
	app      *App
	auth     *mockAuth
	blogs    *mockBlogs
	sessions *store.Memory
	// tokens records the token passed to each BlogService construction.
	tokens []string
}

func newFixture() *fixture {
	f := &fixture{
		auth:     &mockAuth{},
		blogs:    &mockBlogs{},
		sessions: store.NewMemory(),
	}
	f.auth.loginFn = func(ctx context.Context, username, password string) (*model.Session, error) {
		if username == "mluukkai" && password == "salainen" {
			return &model.Session{Name: "Matti Luukkainen", Username: username, Token: "tok-1"}, nil
		}
		return nil, errors.New("invalid username or password")
	}
	f.app = New(f.auth, func(token string) BlogService {
		f.tokens = append(f.tokens, token)
		return f.blogs
	}, f.sessions, zerolog.Nop())
	return f
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	if err := f.app.Login(context.Background(), "mluukkai", "salainen"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success stores session, fetches blogs and notifies", func(t *testing.T) {
		f := newFixture()
		f.blogs.listFn = func(ctx context.Context) ([]model.Blog, error) {
			return []model.Blog{{ID: "1", Title: "First", Author: "A", Likes: 2}}, nil
		}

		f.login(t)

		if !f.app.LoggedIn() {
			t.Error("Expected authenticated state")
		}
		if got := f.app.Notification(); got != "Login successful!" {
			t.Errorf("Expected login notification, got %q", got)
		}
		if len(f.tokens) != 1 || f.tokens[0] != "tok-1" {
			t.Errorf("Expected blog client built with session token, got %v", f.tokens)
		}

		stored, err := f.sessions.Load()
		if err != nil || stored == nil || stored.Token != "tok-1" {
			t.Errorf("Expected persisted session, got %+v (%v)", stored, err)
		}

		if got := f.app.Snapshot().Blogs; len(got) != 1 || got[0].Title != "First" {
			t.Errorf("Expected blog list to populate, got %+v", got)
		}
	})

	t.Run("Failure stays unauthenticated and notifies", func(t *testing.T) {
		f := newFixture()

		if err := f.app.Login(ctx, "mluukkai", "wrong"); err == nil {
			t.Error("Expected error for bad credentials")
		}
		if f.app.LoggedIn() {
			t.Error("Expected unauthenticated state")
		}
		if got := f.app.Notification(); got != "Invalid username or password" {
			t.Errorf("Expected failure notification, got %q", got)
		}
		if stored, _ := f.sessions.Load(); stored != nil {
			t.Errorf("Expected nothing persisted, got %+v", stored)
		}
	})
}

func TestLogout(t *testing.T) {
	f := newFixture()
	f.blogs.listFn = func(ctx context.Context) ([]model.Blog, error) {
		return []model.Blog{{ID: "1", Title: "First"}}, nil
	}
	f.login(t)

	f.app.Logout()

	if f.app.LoggedIn() {
		t.Error("Expected unauthenticated state after logout")
	}
	if got := f.app.Notification(); got != "Logged out successfully" {
		t.Errorf("Expected logout notification, got %q", got)
	}
	if got := f.app.Snapshot().Blogs; len(got) != 0 {
		t.Errorf("Expected cleared collection, got %+v", got)
	}

	// Login then logout must leave no stored record behind.
	if stored, _ := f.sessions.Load(); stored != nil {
		t.Errorf("Expected empty session store, got %+v", stored)
	}
}

func TestRestoreSession(t *testing.T) {
	t.Run("Stored record restores optimistically and refreshes", func(t *testing.T) {
		f := newFixture()
		f.sessions.Save(&model.Session{Name: "Matti Luukkainen", Token: "tok-old"})
		f.blogs.listFn = func(ctx context.Context) ([]model.Blog, error) {
			return []model.Blog{{ID: "1", Title: "Restored"}}, nil
		}

		f.app.RestoreSession(context.Background())

		if !f.app.LoggedIn() {
			t.Error("Expected authenticated state from stored session")
		}
		if len(f.tokens) != 1 || f.tokens[0] != "tok-old" {
			t.Errorf("Expected blog client built with stored token, got %v", f.tokens)
		}
		if got := f.app.Snapshot().Blogs; len(got) != 1 {
			t.Errorf("Expected refreshed list, got %+v", got)
		}
		if got := f.app.Notification(); got != "" {
			t.Errorf("Expected no notification on restore, got %q", got)
		}
	})

	t.Run("Empty store stays unauthenticated", func(t *testing.T) {
		f := newFixture()
		f.app.RestoreSession(context.Background())

		if f.app.LoggedIn() {
			t.Error("Expected unauthenticated state")
		}
		if len(f.tokens) != 0 {
			t.Error("Expected no blog client to be built")
		}
	})

	t.Run("Corrupt record is discarded and cleared", func(t *testing.T) {
		f := newFixture()
		corrupt := &corruptStore{}
		f.app.sessions = corrupt

		f.app.RestoreSession(context.Background())

		if f.app.LoggedIn() {
			t.Error("Expected unauthenticated state after corrupt record")
		}
		if !corrupt.cleared {
			t.Error("Expected the corrupt record to be cleared")
		}
	})
}

type corruptStore struct {
	cleared bool
}

func (c *corruptStore) Load() (*model.Session, error) { return nil, store.ErrCorruptRecord }
func (c *corruptStore) Save(*model.Session) error     { return nil }
func (c *corruptStore) Clear() error                  { c.cleared = true; return nil }

func TestRefreshBlogs(t *testing.T) {
	t.Run("Failure leaves the prior collection untouched", func(t *testing.T) {
		f := newFixture()
		f.blogs.listFn = func(ctx context.Context) ([]model.Blog, error) {
			return []model.Blog{{ID: "1", Title: "Kept"}}, nil
		}
		f.login(t)

		f.blogs.listFn = func(ctx context.Context) ([]model.Blog, error) {
			return nil, errors.New("boom")
		}
		f.app.RefreshBlogs(context.Background())

		if got := f.app.Snapshot().Blogs; len(got) != 1 || got[0].Title != "Kept" {
			t.Errorf("Expected prior collection, got %+v", got)
		}
		if got := f.app.Notification(); got != "Error fetching blogs" {
			t.Errorf("Expected fetch error notification, got %q", got)
		}
	})

	t.Run("No-op when unauthenticated", func(t *testing.T) {
		f := newFixture()
		f.app.RefreshBlogs(context.Background())

		if got := f.app.Notification(); got != "" {
			t.Errorf("Expected no notification, got %q", got)
		}
	})
}

func TestCreateBlog(t *testing.T) {
	ctx := context.Background()

	t.Run("Success appends, resets draft and hides form", func(t *testing.T) {
		f := newFixture()
		f.blogs.listFn = func(ctx context.Context) ([]model.Blog, error) {
			return []model.Blog{{ID: "1", Title: "Existing"}}, nil
		}
		f.blogs.createFn = func(ctx context.Context, draft model.Draft) (*model.Blog, error) {
			return &model.Blog{ID: "2", Title: draft.Title, Author: draft.Author, URL: draft.URL, Likes: draft.Likes}, nil
		}
		f.login(t)

		f.app.ToggleForm()
		f.app.SetDraft(model.Draft{Title: "Test", Author: "A", URL: "http://x", Likes: 0})
		if err := f.app.CreateBlog(ctx); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		s := f.app.Snapshot()
		if len(s.Blogs) != 2 {
			t.Errorf("Expected collection of size 2, got %d", len(s.Blogs))
		}
		if s.Blogs[1].ID != "2" {
			t.Errorf("Expected server-assigned id to be appended, got %+v", s.Blogs[1])
		}
		if s.Draft != (model.Draft{}) {
			t.Errorf("Expected draft reset, got %+v", s.Draft)
		}
		if s.ShowForm {
			t.Error("Expected form hidden after create")
		}
		if s.Notification != "Added blog: Test" {
			t.Errorf("Expected create notification, got %q", s.Notification)
		}
	})

	t.Run("Failure leaves draft and form visibility unchanged", func(t *testing.T) {
		f := newFixture()
		f.blogs.createFn = func(ctx context.Context, draft model.Draft) (*model.Blog, error) {
			return nil, errors.New("boom")
		}
		f.login(t)

		f.app.ToggleForm()
		draft := model.Draft{Title: "Test", Author: "A", URL: "http://x"}
		f.app.SetDraft(draft)
		if err := f.app.CreateBlog(ctx); err == nil {
			t.Error("Expected error")
		}

		s := f.app.Snapshot()
		if s.Draft != draft {
			t.Errorf("Expected draft unchanged, got %+v", s.Draft)
		}
		if !s.ShowForm {
			t.Error("Expected form still visible")
		}
		if s.Notification != "Error adding blog" {
			t.Errorf("Expected failure notification, got %q", s.Notification)
		}
	})
}

func TestLikeBlog(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends local count plus one and applies the server echo", func(t *testing.T) {
		f := newFixture()
		f.blogs.listFn = func(ctx context.Context) ([]model.Blog, error) {
			return []model.Blog{{ID: "1", Title: "First", Author: "A", Likes: 5}}, nil
		}
		var sentLikes int
		f.blogs.updateFn = func(ctx context.Context, id model.BlogID, likes int) (*model.Blog, error) {
			sentLikes = likes
			return &model.Blog{ID: id, Title: "First", Author: "A", Likes: likes}, nil
		}
		f.login(t)

		if err := f.app.LikeBlog(ctx, "1"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if sentLikes != 6 {
			t.Errorf("Expected update with likes 6, got %d", sentLikes)
		}
		s := f.app.Snapshot()
		if s.Blogs[0].Likes != 6 {
			t.Errorf("Expected server-returned likes applied, got %d", s.Blogs[0].Likes)
		}
		if s.Notification != "Liked!" {
			t.Errorf("Expected like notification, got %q", s.Notification)
		}
	})

	t.Run("Failure leaves the collection unchanged", func(t *testing.T) {
		f := newFixture()
		f.blogs.listFn = func(ctx context.Context) ([]model.Blog, error) {
			return []model.Blog{{ID: "1", Likes: 5}}, nil
		}
		f.blogs.updateFn = func(ctx context.Context, id model.BlogID, likes int) (*model.Blog, error) {
			return nil, errors.New("boom")
		}
		f.login(t)

		if err := f.app.LikeBlog(ctx, "1"); err == nil {
			t.Error("Expected error")
		}

		s := f.app.Snapshot()
		if s.Blogs[0].Likes != 5 {
			t.Errorf("Expected likes unchanged, got %d", s.Blogs[0].Likes)
		}
		if s.Notification != "Like feature not yet implemented in backend" {
			t.Errorf("Expected like failure notification, got %q", s.Notification)
		}
	})

	t.Run("Unknown id is an error without remote call", func(t *testing.T) {
		f := newFixture()
		f.blogs.updateFn = func(ctx context.Context, id model.BlogID, likes int) (*model.Blog, error) {
			t.Error("Expected no remote call")
			return nil, nil
		}
		f.login(t)

		if err := f.app.LikeBlog(ctx, "missing"); err == nil {
			t.Error("Expected error for unknown id")
		}
	})
}

func TestDeleteBlog(t *testing.T) {
	ctx := context.Background()
	accept := func(string) bool { return true }
	decline := func(string) bool { return false }

	t.Run("Confirmed delete removes the blog", func(t *testing.T) {
		f := newFixture()
		f.blogs.listFn = func(ctx context.Context) ([]model.Blog, error) {
			return []model.Blog{{ID: "1", Title: "Doomed"}, {ID: "2", Title: "Kept"}}, nil
		}
		f.blogs.deleteFn = func(ctx context.Context, id model.BlogID) error { return nil }
		f.login(t)

		var prompt string
		confirm := func(p string) bool {
			prompt = p
			return true
		}
		if err := f.app.DeleteBlog(ctx, "1", confirm); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if prompt != "Delete blog: Doomed?" {
			t.Errorf("Expected confirmation prompt with title, got %q", prompt)
		}
		s := f.app.Snapshot()
		if len(s.Blogs) != 1 || s.Blogs[0].ID != "2" {
			t.Errorf("Expected only the other blog to remain, got %+v", s.Blogs)
		}
		if s.Notification != "Deleted blog: Doomed" {
			t.Errorf("Expected delete notification, got %q", s.Notification)
		}
	})

	t.Run("Declined confirmation is a silent no-op", func(t *testing.T) {
		f := newFixture()
		f.blogs.listFn = func(ctx context.Context) ([]model.Blog, error) {
			return []model.Blog{{ID: "1", Title: "Safe"}}, nil
		}
		f.blogs.deleteFn = func(ctx context.Context, id model.BlogID) error {
			t.Error("Expected no remote call after decline")
			return nil
		}
		f.login(t)
		// Let the login notification lapse so we can check none is emitted.
		f.app.now = func() time.Time { return time.Now().Add(time.Minute) }

		if err := f.app.DeleteBlog(ctx, "1", decline); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		s := f.app.Snapshot()
		if len(s.Blogs) != 1 {
			t.Errorf("Expected collection unchanged, got %+v", s.Blogs)
		}
		if s.Notification != "" {
			t.Errorf("Expected no notification, got %q", s.Notification)
		}
	})

	t.Run("Failure leaves the collection unchanged", func(t *testing.T) {
		f := newFixture()
		f.blogs.listFn = func(ctx context.Context) ([]model.Blog, error) {
			return []model.Blog{{ID: "1", Title: "Sticky"}}, nil
		}
		f.blogs.deleteFn = func(ctx context.Context, id model.BlogID) error {
			return errors.New("boom")
		}
		f.login(t)

		if err := f.app.DeleteBlog(ctx, "1", accept); err == nil {
			t.Error("Expected error")
		}

		s := f.app.Snapshot()
		if len(s.Blogs) != 1 {
			t.Errorf("Expected collection unchanged, got %+v", s.Blogs)
		}
		if s.Notification != "Delete feature not yet implemented in backend" {
			t.Errorf("Expected delete failure notification, got %q", s.Notification)
		}
	})
}

func TestNotificationExpiry(t *testing.T) {
	f := newFixture()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	f.app.now = func() time.Time { return now }

	f.login(t)
	if got := f.app.Notification(); got != "Login successful!" {
		t.Fatalf("Expected notification, got %q", got)
	}

	now = base.Add(2 * time.Second)
	if got := f.app.Notification(); got != "Login successful!" {
		t.Errorf("Expected notification still active at 2s, got %q", got)
	}

	now = base.Add(3 * time.Second)
	if got := f.app.Notification(); got != "" {
		t.Errorf("Expected notification cleared after 3s, got %q", got)
	}

	t.Run("A new notification resets the window", func(t *testing.T) {
		now = base.Add(4 * time.Second)
		f.app.Logout()

		now = base.Add(6 * time.Second)
		if got := f.app.Notification(); got != "Logged out successfully" {
			t.Errorf("Expected new notification active, got %q", got)
		}

		now = base.Add(7 * time.Second)
		if got := f.app.Notification(); got != "" {
			t.Errorf("Expected new notification expired, got %q", got)
		}
	})
}

func TestLocalFilterState(t *testing.T) {
	f := newFixture()

	f.app.SetSort(model.SortByLikes)
	f.app.SetAuthorFilter("luukkai")

	s := f.app.Snapshot()
	if s.Filter.SortBy != model.SortByLikes {
		t.Errorf("Expected sort key likes, got %q", s.Filter.SortBy)
	}
	if s.Filter.Author != "luukkai" {
		t.Errorf("Expected author filter, got %q", s.Filter.Author)
	}
	if got := f.app.Notification(); got != "" {
		t.Errorf("Expected no notification for local state updates, got %q", got)
	}
}

func TestToggleForm(t *testing.T) {
	f := newFixture()

	if !f.app.ToggleForm() {
		t.Error("Expected form to show")
	}
	f.app.SetDraft(model.Draft{Title: "Half-typed"})

	if f.app.ToggleForm() {
		t.Error("Expected form to hide")
	}
	if got := f.app.Snapshot().Draft; got != (model.Draft{}) {
		t.Errorf("Expected draft reset on cancel, got %+v", got)
	}
}
