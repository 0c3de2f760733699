package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/Andebugulin/bloglist/internal/api"
	"github.com/Andebugulin/bloglist/internal/app"
	"github.com/Andebugulin/bloglist/internal/config"
	"github.com/Andebugulin/bloglist/internal/logger"
	"github.com/Andebugulin/bloglist/internal/model"
	"github.com/Andebugulin/bloglist/internal/store"
	"github.com/Andebugulin/bloglist/internal/view"
)

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Error loading .env file")
	}

	configPath := os.Getenv("BLOGLIST_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := config.LoadConfig(configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := config.AppConfig

	log := logger.New(cfg.Logging.Level)
	config.SetLogger(log)
	store.SetLogger(log)

	sessions := store.NewSQLite(cfg.Session.DBPath)
	if err := sessions.Init(); err != nil {
		log.Fatal().Msgf(config.ErrInitStoreFmt, err)
	}
	defer sessions.Close()

	client := api.New(cfg.Server.BaseURL, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)
	blogService := func(token string) app.BlogService {
		return client.WithToken(token)
	}

	application := app.New(client, blogService, sessions, log)
	renderer := view.NewRenderer(cfg.UI.Title, cfg.UI.Locale)

	ctx := context.Background()
	application.RestoreSession(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	confirm := func(prompt string) bool {
		fmt.Print(promptStyle.Render(prompt + " [y/N] "))
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	}

	fmt.Println("Type 'help' for commands, 'quit' to exit.")
	fmt.Print(renderer.Render(application.Snapshot()))

	for {
		fmt.Print(promptStyle.Render("> "))
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		dispatch(ctx, application, confirm, line)
		fmt.Print(renderer.Render(application.Snapshot()))
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("Error reading input")
	}
}

// dispatch maps one input line onto an application operation. Remote
// failures surface as notifications in the rendered view, so errors are
// not reported separately here.
func dispatch(ctx context.Context, application *app.App, confirm app.Confirmer, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

	switch cmd {
	case "help":
		printHelp()
	case "login":
		if len(args) != 2 {
			fmt.Println("Usage: login <username> <password>")
			return
		}
		application.Login(ctx, args[0], args[1])
	case "logout":
		application.Logout()
	case "refresh", "list":
		application.RefreshBlogs(ctx)
	case "new":
		application.ToggleForm()
	case "title", "author", "url", "likes":
		setDraftField(application, cmd, rest)
	case "add":
		draft := application.Snapshot().Draft
		if !draft.Complete() {
			fmt.Println("Title, author and url are required; likes must be >= 0")
			return
		}
		application.CreateBlog(ctx)
	case "like":
		if len(args) != 1 {
			fmt.Println("Usage: like <id>")
			return
		}
		application.LikeBlog(ctx, model.BlogID(args[0]))
	case "delete":
		if len(args) != 1 {
			fmt.Println("Usage: delete <id>")
			return
		}
		application.DeleteBlog(ctx, model.BlogID(args[0]), confirm)
	case "sort":
		key, ok := model.ParseSortKey(rest)
		if !ok {
			fmt.Println("Usage: sort <title|author|likes>")
			return
		}
		application.SetSort(key)
	case "filter":
		application.SetAuthorFilter(rest)
	default:
		fmt.Printf("Unknown command %q, try 'help'\n", cmd)
	}
}

func setDraftField(application *app.App, field, value string) {
	draft := application.Snapshot().Draft
	switch field {
	case "title":
		draft.Title = value
	case "author":
		draft.Author = value
	case "url":
		draft.URL = value
	case "likes":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			fmt.Println("Likes must be a non-negative integer")
			return
		}
		draft.Likes = n
	}
	application.SetDraft(draft)
}

func printHelp() {
	fmt.Println(`Commands:
  login <username> <password>   log in
  logout                        log out and clear the stored session
  list | refresh                re-fetch the blog list
  new                           toggle the new-blog form
  title/author/url/likes <v>    set a field of the draft
  add                           submit the draft
  like <id>                     like a blog
  delete <id>                   delete a blog (asks for confirmation)
  sort <title|author|likes>     change sort key
  filter <substring>            filter by author (empty to clear)
  quit`)
}
