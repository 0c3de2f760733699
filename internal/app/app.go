// Package app holds the client-side application state machine: the session
// lifecycle, the blog collection, transient UI state and the orchestration
// of remote calls. Remote failures never propagate past this package; each
// collapses to a transient notification.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Andebugulin/bloglist/internal/model"
	"github.com/Andebugulin/bloglist/internal/store"
)

// notificationTTL is the fixed auto-clear window. A new notification
// resets the window.
const notificationTTL = 3 * time.Second

// AuthService exchanges credentials for a session.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.Session, error)
}

// BlogService is a per-session, token-carrying client for the blog
// collection.
type BlogService interface {
	List(ctx context.Context) ([]model.Blog, error)
	Create(ctx context.Context, draft model.Draft) (*model.Blog, error)
	UpdateLikes(ctx context.Context, id model.BlogID, likes int) (*model.Blog, error)
	Delete(ctx context.Context, id model.BlogID) error
}

// Confirmer asks the user a blocking yes/no question.
type Confirmer func(prompt string) bool

// ErrNotLoggedIn is returned by operations that need an authenticated
// session when there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// App is the application state machine. State mutations happen under the
// mutex; remote calls do not. Overlapping in-flight requests are allowed
// and each applies its own result when it returns, so last-response-wins
// ordering applies rather than request order. The like operation is a
// read-modify-write against the possibly-stale local copy; concurrent
// likes from other sessions can be lost. Both are documented limitations
// carried over from the source behavior.
type App struct {
	mu  sync.Mutex
	log zerolog.Logger

	auth     AuthService
	sessions store.SessionStore
	// newBlogService builds the per-session blog client from a token.
	newBlogService func(token string) BlogService
	now            func() time.Time

	session  *model.Session
	svc      BlogService
	blogs    []model.Blog
	draft    model.Draft
	filter   model.Filter
	showForm bool
	note     model.Notification
}

func New(auth AuthService, newBlogService func(token string) BlogService, sessions store.SessionStore, log zerolog.Logger) *App {
	return &App{
		log:            log,
		auth:           auth,
		sessions:       sessions,
		newBlogService: newBlogService,
		now:            time.Now,
		filter:         model.Filter{SortBy: model.SortByTitle},
	}
}

// Snapshot is a copy of everything the view needs. Taking one never
// mutates state.
type Snapshot struct {
	Session      *model.Session
	Blogs        []model.Blog
	Draft        model.Draft
	Filter       model.Filter
	ShowForm     bool
	Notification string
}

func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	blogs := make([]model.Blog, len(a.blogs))
	copy(blogs, a.blogs)

	var session *model.Session
	if a.session != nil {
		copied := *a.session
		session = &copied
	}

	var note string
	if a.note.Active(a.now()) {
		note = a.note.Text
	}

	return Snapshot{
		Session:      session,
		Blogs:        blogs,
		Draft:        a.draft,
		Filter:       a.filter,
		ShowForm:     a.showForm,
		Notification: note,
	}
}

func (a *App) LoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Valid()
}

// RestoreSession reads the session store once at startup. A stored record
// is trusted optimistically: the token is configured without revalidation
// and the blog list is fetched. A corrupt record is discarded and the
// store cleared rather than failing startup.
func (a *App) RestoreSession(ctx context.Context) {
	session, err := a.sessions.Load()
	if err != nil {
		a.log.Warn().Err(err).Msg("Discarding stored session")
		if err := a.sessions.Clear(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to clear session store")
		}
		return
	}
	if session == nil {
		return
	}

	a.mu.Lock()
	a.session = session
	a.svc = a.newBlogService(session.Token)
	a.mu.Unlock()

	a.log.Info().Str("user", session.DisplayName()).Msg("Session restored")
	a.RefreshBlogs(ctx)
}

// Login authenticates and, on success, persists the session, configures
// the blog client and fetches the list. On failure the caller's credential
// inputs stay untouched so the user can correct and retry.
func (a *App) Login(ctx context.Context, username, password string) error {
	session, err := a.auth.Login(ctx, username, password)
	if err != nil {
		a.log.Debug().Err(err).Msg("Login failed")
		a.notify("Invalid username or password")
		return err
	}

	if err := a.sessions.Save(session); err != nil {
		// Persistence is best-effort; the in-memory session is authoritative.
		a.log.Warn().Err(err).Msg("Failed to persist session")
	}

	a.mu.Lock()
	a.session = session
	a.svc = a.newBlogService(session.Token)
	a.mu.Unlock()

	a.notify("Login successful!")
	a.RefreshBlogs(ctx)
	return nil
}

// Logout is purely local: it clears the store, the in-memory session, the
// blog client and the collection. No remote call is made.
func (a *App) Logout() {
	if err := a.sessions.Clear(); err != nil {
		a.log.Warn().Err(err).Msg("Failed to clear session store")
	}

	a.mu.Lock()
	a.session = nil
	a.svc = nil
	a.blogs = nil
	a.showForm = false
	a.draft.Reset()
	a.mu.Unlock()

	a.notify("Logged out successfully")
}

// RefreshBlogs replaces the collection wholesale. On failure the prior
// collection is left untouched.
func (a *App) RefreshBlogs(ctx context.Context) {
	svc := a.service()
	if svc == nil {
		return
	}

	blogs, err := svc.List(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("Fetching blogs failed")
		a.notify("Error fetching blogs")
		return
	}

	a.mu.Lock()
	a.blogs = blogs
	a.mu.Unlock()
}

// CreateBlog submits the current draft. On success the server-returned
// blog is appended, the draft is reset and the form hidden. On failure
// draft and form visibility are unchanged.
func (a *App) CreateBlog(ctx context.Context) error {
	svc := a.service()
	if svc == nil {
		return ErrNotLoggedIn
	}

	a.mu.Lock()
	draft := a.draft
	a.mu.Unlock()

	blog, err := svc.Create(ctx, draft)
	if err != nil {
		a.log.Warn().Err(err).Msg("Creating blog failed")
		a.notify("Error adding blog")
		return err
	}

	a.mu.Lock()
	a.blogs = append(a.blogs, *blog)
	a.draft.Reset()
	a.showForm = false
	a.mu.Unlock()

	a.notify(fmt.Sprintf("Added blog: %s", blog.Title))
	return nil
}

// LikeBlog reads the current like count from local state and sends
// likes+1. The server's echoed resource replaces the local entry.
func (a *App) LikeBlog(ctx context.Context, id model.BlogID) error {
	svc := a.service()
	if svc == nil {
		return ErrNotLoggedIn
	}

	blog, ok := a.find(id)
	if !ok {
		return fmt.Errorf("no blog with id %s", id)
	}

	updated, err := svc.UpdateLikes(ctx, id, blog.Likes+1)
	if err != nil {
		a.log.Warn().Err(err).Str("id", string(id)).Msg("Liking blog failed")
		a.notify("Like feature not yet implemented in backend")
		return err
	}

	a.mu.Lock()
	for i := range a.blogs {
		if a.blogs[i].ID == id {
			a.blogs[i] = *updated
			break
		}
	}
	a.mu.Unlock()

	a.notify("Liked!")
	return nil
}

// DeleteBlog asks for confirmation first. Declining performs no action
// and emits no notification.
func (a *App) DeleteBlog(ctx context.Context, id model.BlogID, confirm Confirmer) error {
	svc := a.service()
	if svc == nil {
		return ErrNotLoggedIn
	}

	blog, ok := a.find(id)
	if !ok {
		return fmt.Errorf("no blog with id %s", id)
	}

	if !confirm(fmt.Sprintf("Delete blog: %s?", blog.Title)) {
		return nil
	}

	if err := svc.Delete(ctx, id); err != nil {
		a.log.Warn().Err(err).Str("id", string(id)).Msg("Deleting blog failed")
		a.notify("Delete feature not yet implemented in backend")
		return err
	}

	a.mu.Lock()
	kept := a.blogs[:0]
	for _, b := range a.blogs {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	a.blogs = kept
	a.mu.Unlock()

	a.notify(fmt.Sprintf("Deleted blog: %s", blog.Title))
	return nil
}

// SetSort, SetAuthorFilter, ToggleForm and SetDraft are synchronous local
// state updates with no side effects.

func (a *App) SetSort(key model.SortKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter.SortBy = key
}

func (a *App) SetAuthorFilter(substring string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter.Author = substring
}

func (a *App) ToggleForm() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.showForm = !a.showForm
	if !a.showForm {
		a.draft.Reset()
	}
	return a.showForm
}

func (a *App) SetDraft(draft model.Draft) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.draft = draft
}

// Notification returns the current notification text, or "" once the
// window has elapsed.
func (a *App) Notification() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.note.Active(a.now()) {
		return a.note.Text
	}
	return ""
}

func (a *App) notify(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.note = model.Notification{Text: text, Expiry: a.now().Add(notificationTTL)}
}

func (a *App) service() BlogService {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.svc
}

func (a *App) find(id model.BlogID) (model.Blog, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, b := range a.blogs {
		if b.ID == id {
			return b, true
		}
	}
	return model.Blog{}, false
}
