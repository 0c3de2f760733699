package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/collate"

	"github.com/Andebugulin/bloglist/internal/app"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	blogStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1)
)

// Renderer turns an application snapshot into terminal output. It carries
// only immutable configuration; rendering never mutates anything.
type Renderer struct {
	title    string
	collator *collate.Collator
}

func NewRenderer(title, locale string) *Renderer {
	return &Renderer{
		title:    title,
		collator: NewCollator(locale),
	}
}

func (r *Renderer) Render(s app.Snapshot) string {
	if s.Session == nil {
		return r.renderLogin(s)
	}
	return r.renderBlogs(s)
}

func (r *Renderer) renderLogin(s app.Snapshot) string {
	var out strings.Builder

	out.WriteString(titleStyle.Render("Login to Blog App"))
	out.WriteString("\n")
	if s.Notification != "" {
		out.WriteString(noteStyle.Render(s.Notification))
		out.WriteString("\n")
	}
	out.WriteString(faintStyle.Render("Use: login <username> <password>"))
	out.WriteString("\n")

	return out.String()
}

func (r *Renderer) renderBlogs(s app.Snapshot) string {
	var out strings.Builder

	out.WriteString(headerStyle.Render(fmt.Sprintf("%s logged-in", s.Session.DisplayName())))
	out.WriteString("\n")
	out.WriteString(titleStyle.Render(r.title))
	out.WriteString("\n")

	if s.Notification != "" {
		out.WriteString(noteStyle.Render(s.Notification))
		out.WriteString("\n")
	}

	out.WriteString(faintStyle.Render(fmt.Sprintf("sort: %s", s.Filter.SortBy)))
	if s.Filter.Author != "" {
		out.WriteString(faintStyle.Render(fmt.Sprintf("  filter: %q", s.Filter.Author)))
	}
	out.WriteString("\n")

	if s.ShowForm {
		out.WriteString(r.renderForm(s))
	}

	derived := DeriveList(s.Blogs, s.Filter, r.collator)

	out.WriteString(titleStyle.Render(fmt.Sprintf("Blogs (%d)", len(derived))))
	out.WriteString("\n")

	if len(derived) == 0 {
		out.WriteString("No blogs found. Add some blogs!\n")
		return out.String()
	}

	for _, b := range derived {
		entry := fmt.Sprintf("%s\nAuthor: %s\nURL: %s\nLikes: %d\nid: %s",
			b.Title, b.Author, b.URL, b.Likes, b.ID)
		out.WriteString(blogStyle.Render(entry))
		out.WriteString("\n")
	}

	return out.String()
}

func (r *Renderer) renderForm(s app.Snapshot) string {
	var out strings.Builder

	out.WriteString(headerStyle.Render("Add New Blog"))
	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("  Title:  %s\n", s.Draft.Title))
	out.WriteString(fmt.Sprintf("  Author: %s\n", s.Draft.Author))
	out.WriteString(fmt.Sprintf("  URL:    %s\n", s.Draft.URL))
	out.WriteString(fmt.Sprintf("  Likes:  %d\n", s.Draft.Likes))
	out.WriteString(faintStyle.Render("Set fields with title/author/url/likes, then 'add'"))
	out.WriteString("\n")

	return out.String()
}
