package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/atinyakov/notekeeper/internal/client"
	"github.com/atinyakov/notekeeper/internal/common"
	"github.com/atinyakov/notekeeper/internal/models"
)

var (
	version   string
	buildDate string
)

const help = `Available commands:
  register | login | logout | whoami
  notes | todos | searches                 list (refreshes from server)
  add <notes|todos|searches>
  extract                                  save a page summary as a search
  edit <notes|todos|searches> <id>
  delete <notes|todos|searches> <id>
  help | exit`

// shell holds the client, its session and one state container per domain.
type shell struct {
	api      *client.Client
	session  *client.Session
	prompt   *client.Prompter
	notes    *client.State[*models.Note]
	todos    *client.State[*models.Todo]
	searches *client.State[*models.WebSearch]
}

func newShell(api *client.Client, session *client.Session, prompt *client.Prompter) *shell {
	return &shell{
		api:      api,
		session:  session,
		prompt:   prompt,
		notes:    client.NewState[*models.Note](client.Notes(api)),
		todos:    client.NewState[*models.Todo](client.Todos(api)),
		searches: client.NewState[*models.WebSearch](client.WebSearches(api)),
	}
}

// repl runs the interactive shell loop. The scanner is shared with the
// prompter so field answers are read from the same buffered input.
func (s *shell) repl(ctx context.Context, scanner *bufio.Scanner) {
	for {
		fmt.Print("notekeeper> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Println("Bye")
			return
		}
		if err := s.run(ctx, args); err != nil {
			report(err)
		}
	}
}

func (s *shell) run(ctx context.Context, args []string) error {
	switch args[0] {
	case "help":
		fmt.Println(help)
	case "register":
		if _, err := s.api.Register(ctx, s.prompt.Register()); err != nil {
			return err
		}
		return s.saveSession()
	case "login":
		if _, err := s.api.Login(ctx, s.prompt.Login()); err != nil {
			return err
		}
		return s.saveSession()
	case "logout":
		s.api.SetToken("")
		s.notes.Reset()
		s.todos.Reset()
		s.searches.Reset()
		if err := s.session.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out")
	case "whoami":
		u, err := s.api.GetUser(ctx)
		if err != nil {
			return err
		}
		printJSON(u)
	case "notes":
		return fetchAndPrint(ctx, s.notes)
	case "todos":
		return fetchAndPrint(ctx, s.todos)
	case "searches":
		return fetchAndPrint(ctx, s.searches)
	case "add":
		if len(args) < 2 {
			fmt.Println("Usage: add <notes|todos|searches>")
			return nil
		}
		return s.add(ctx, args[1])
	case "extract":
		ws, err := s.api.ExtractWebSearch(ctx, s.prompt.WebSearchExtract())
		if err != nil {
			return err
		}
		printJSON(ws)
		return s.searches.Fetch(ctx)
	case "edit":
		if len(args) < 3 {
			fmt.Println("Usage: edit <notes|todos|searches> <id>")
			return nil
		}
		return s.edit(ctx, args[1], args[2])
	case "delete":
		if len(args) < 3 {
			fmt.Println("Usage: delete <notes|todos|searches> <id>")
			return nil
		}
		return s.remove(ctx, args[1], args[2])
	default:
		fmt.Println("Unknown command. Type 'help' for a list of commands.")
	}
	return nil
}

func (s *shell) add(ctx context.Context, domain string) error {
	var (
		v   any
		err error
	)
	switch domain {
	case "notes":
		v, err = s.notes.Add(ctx, s.prompt.Note())
	case "todos":
		v, err = s.todos.Add(ctx, s.prompt.Todo())
	case "searches":
		v, err = s.searches.Add(ctx, s.prompt.WebSearch())
	default:
		return fmt.Errorf("unknown collection %q", domain)
	}
	if err != nil {
		return err
	}
	printJSON(v)
	return nil
}

func (s *shell) edit(ctx context.Context, domain, id string) error {
	var (
		v   any
		err error
	)
	switch domain {
	case "notes":
		v, err = s.notes.Edit(ctx, id, s.prompt.NotePatch())
	case "todos":
		v, err = s.todos.Edit(ctx, id, s.prompt.TodoPatch())
	case "searches":
		v, err = s.searches.Edit(ctx, id, s.prompt.WebSearchPatch())
	default:
		return fmt.Errorf("unknown collection %q", domain)
	}
	if err != nil {
		return err
	}
	printJSON(v)
	return nil
}

func (s *shell) remove(ctx context.Context, domain, id string) error {
	var err error
	switch domain {
	case "notes":
		err = s.notes.Remove(ctx, id)
	case "todos":
		err = s.todos.Remove(ctx, id)
	case "searches":
		err = s.searches.Remove(ctx, id)
	default:
		return fmt.Errorf("unknown collection %q", domain)
	}
	if err != nil {
		return err
	}
	fmt.Println("Deleted")
	return nil
}

func (s *shell) saveSession() error {
	if err := s.session.Save(s.api.Token()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Println("Logged in")
	return nil
}

func fetchAndPrint[T models.Owned](ctx context.Context, st *client.State[T]) error {
	if err := st.Fetch(ctx); err != nil {
		return err
	}
	printJSON(st.Items())
	return nil
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func report(err error) {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		fmt.Println("Not logged in. Use 'login' or 'register'.")
	case errors.As(err, &apiErr) && len(apiErr.Fields) > 0:
		for _, f := range apiErr.Fields {
			fmt.Printf("  %s %s\n", f.Field, f.Message)
		}
	default:
		fmt.Println("Error:", err)
	}
}

func main() {
	var (
		baseURL     string
		sessionFile string
		caFile      string
		showVer     bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&sessionFile, "session", client.DefaultSessionFile, "path to the session file")
	flag.StringVar(&caFile, "ca", "", "path to a CA certificate to trust for https URLs")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("notekeeper client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	session := &client.Session{Path: sessionFile}
	token, err := session.Load()
	if err != nil {
		log.Fatal(err)
	}

	httpClient, err := client.NewHTTPClient(caFile)
	if err != nil {
		log.Fatal(err)
	}
	api := client.New(baseURL, httpClient)
	api.SetToken(token)

	scanner := bufio.NewScanner(os.Stdin)
	sh := newShell(api, session, client.NewScannerPrompter(scanner, os.Stdout))
	sh.repl(context.Background(), scanner)
}
