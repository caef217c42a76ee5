// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Interactive tutoring REPL for plain terminals.
//
// Handles "studylab ask": a readline-style loop against the same
// backend as the TUI, for terminals where the full interface is
// unwanted (SSH sessions, screen readers, scripts driving a pty).
//
// Interactive commands:
//   /new [name]         Start a new thread
//   /threads            List threads
//   /switch N           Switch to thread N
//   /summary            Show the server summary of this thread
//   /progress           Show XP, level, and streak
//   /help               Show commands
//   /quit               Exit
//   Ctrl+D              Exit

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/cache"
	"github.com/jeranaias/studylab-tui/internal/config"
	"github.com/jeranaias/studylab-tui/internal/session"
	"github.com/jeranaias/studylab-tui/internal/thread"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
	"github.com/jeranaias/studylab-tui/internal/util"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)

	tutorNameStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// askInput wraps liner with persistent history under ~/.studylab.
type askInput struct {
	line        *liner.State
	historyFile string
}

func newAskInput() *askInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".studylab", "ask_history")
	}

	in := &askInput{line: line, historyFile: historyFile}
	if in.historyFile != "" {
		if f, err := os.Open(in.historyFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}
	return in
}

func (in *askInput) Read(prompt string) (string, error) {
	input, err := in.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		in.line.AppendHistory(input)
	}
	return input, nil
}

func (in *askInput) Close() {
	if in.historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(in.historyFile), 0o755); err == nil {
			if f, err := os.OpenFile(in.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
				in.line.WriteHistory(f)
				f.Close()
			}
		}
	}
	in.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// askSession is the REPL state.
type askSession struct {
	client   *api.Client
	store    *cache.Store
	boot     *session.Bootstrapper
	threads  *thread.Manager
	list     []api.Thread
	renderer *glamour.TermRenderer
	quiet    bool
}

// HandleAsk runs the "studylab ask" REPL.
func HandleAsk(args Args) error {
	if !IsTTY() {
		return errors.New("studylab ask requires an interactive terminal")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", warningStyle.Render("[config]"), err)
		cfg = config.Default()
	}
	if args.URL != "" {
		cfg.Server.URL = args.URL
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:     cfg.Server.URL,
		Timeout:     cfg.Timeout(),
		ChatTimeout: cfg.ChatTimeout(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	err = client.CheckRunning(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("cannot reach the study server at %s: %w", cfg.Server.URL, err)
	}

	store, err := cache.Open()
	if err != nil {
		return fmt.Errorf("failed to open local state: %w", err)
	}

	s := &askSession{
		client:  client,
		store:   store,
		boot:    session.NewBootstrapper(client, store),
		threads: thread.NewManager(),
		quiet:   args.Quiet,
	}

	if cfg.UI.MarkdownReplies {
		s.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(TerminalWidth(80)),
		)
	}

	in := newAskInput()
	defer in.Close()

	sess, err := s.signIn(in)
	if err != nil {
		return err
	}

	if err := s.pickThread(context.Background(), sess.UserID); err != nil {
		return err
	}

	if !s.quiet {
		s.printWelcome(sess)
	}

	return s.loop(in, sess.UserID)
}

// signIn restores the cached session or prompts for credentials.
func (s *askSession) signIn(in *askInput) (session.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	sess := s.boot.Restore(ctx)
	cancel()
	if sess.Authenticated() {
		return sess, nil
	}

	fmt.Println(infoStyle.Render("Sign in to StudyLab (type 'r' at the username prompt to register)."))

	for attempt := 0; attempt < 3; attempt++ {
		username, err := in.Read("username> ")
		if err != nil {
			return session.Session{}, errors.New("sign-in aborted")
		}
		username = strings.TrimSpace(username)

		register := false
		if username == "r" || username == "register" {
			register = true
			username, err = in.Read("new username> ")
			if err != nil {
				return session.Session{}, errors.New("sign-in aborted")
			}
			username = strings.TrimSpace(username)
		}
		if username == "" {
			continue
		}

		password, err := in.line.PasswordPrompt("password> ")
		if err != nil {
			return session.Session{}, errors.New("sign-in aborted")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if register {
			sess, err = s.boot.Register(ctx, username, password)
		} else {
			sess, err = s.boot.Login(ctx, username, password)
		}
		cancel()
		if err != nil {
			fmt.Println(errorStyle.Render(describeError(err)))
			continue
		}
		return sess, nil
	}
	return session.Session{}, errors.New("too many failed sign-in attempts")
}

// pickThread selects the cached thread when it still exists, otherwise
// the first thread, creating one on a fresh account.
func (s *askSession) pickThread(ctx context.Context, userID int) error {
	list, err := s.client.ListThreads(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list threads: %w", err)
	}

	if len(list) == 0 {
		created, err := s.client.CreateThread(ctx, userID, "General")
		if err != nil {
			return fmt.Errorf("failed to create a thread: %w", err)
		}
		list = []api.Thread{*created}
	}
	s.list = list

	chosen := chooseThread(list, s.store.ActiveThread())
	return s.switchTo(ctx, userID, chosen)
}

// chooseThread prefers the remembered thread if the server still has
// it, falling back to the first thread.
func chooseThread(list []api.Thread, cachedID int) api.Thread {
	for _, t := range list {
		if t.ID == cachedID {
			return t
		}
	}
	return list[0]
}

// switchTo makes a thread current, replays its recent history, and
// seeds the message counter from the server's count.
func (s *askSession) switchTo(ctx context.Context, userID int, t api.Thread) error {
	if !s.threads.Select(t.ID) {
		return nil
	}
	s.store.SetActiveThread(t.ID)

	items, err := s.client.History(ctx, userID, t.ID)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	s.threads.SetHistoryLength(len(items))

	fmt.Println(welcomeStyle.Render("== " + t.Name + " =="))
	start := 0
	if len(items) > 3 {
		start = len(items) - 3
		fmt.Println(infoStyle.Render(fmt.Sprintf("(%d earlier exchanges)", start)))
	}
	for _, item := range items[start:] {
		fmt.Println(promptStyle.Render("you> ") + item.Message)
		s.printReply(item.Response)
	}
	if s.threads.OverLimit() {
		fmt.Println(warningStyle.Render("This conversation is getting long. Start a new thread with /new."))
	}
	return nil
}

// =============================================================================
// REPL LOOP
// =============================================================================

func (s *askSession) loop(in *askInput, userID int) error {
	for {
		input, err := in.Read(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+C or Ctrl+D
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			done, err := s.runCommand(input, userID)
			if err != nil {
				fmt.Println(errorStyle.Render(describeError(err)))
			}
			if done {
				return nil
			}
			continue
		}

		s.send(userID, input)
	}
}

// send posts one exchange and prints the tutor's reply.
func (s *askSession) send(userID int, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reply, err := s.client.Chat(ctx, userID, s.threads.Current(), text)
	if err != nil {
		fmt.Println(errorStyle.Render(describeError(err)))
		return
	}

	s.threads.RecordMessage(thread.RoleUser)
	s.threads.RecordMessage(thread.RoleTutor)

	s.printReply(reply.Response)

	if s.threads.OverLimit() {
		fmt.Println(warningStyle.Render("This conversation is getting long. Start a new thread with /new or condense it with /summary."))
	}
}

func (s *askSession) printReply(text string) {
	fmt.Print(tutorNameStyle.Render("tutor> "))
	if s.renderer != nil {
		if out, err := s.renderer.Render(text); err == nil {
			fmt.Println(strings.TrimRight(out, "\n"))
			return
		}
	}
	fmt.Println(text)
}

// =============================================================================
// COMMANDS
// =============================================================================

func (s *askSession) runCommand(input string, userID int) (done bool, err error) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	rest := fields[1:]

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch cmd {
	case "/quit", "/q", "/exit":
		return true, nil

	case "/help", "/h":
		s.printHelp()
		return false, nil

	case "/new":
		name := strings.TrimSpace(strings.Join(rest, " "))
		if name == "" {
			name = fmt.Sprintf("Thread %s", time.Now().Format("Jan 2 15:04"))
		}
		created, err := s.client.CreateThread(ctx, userID, name)
		if err != nil {
			return false, err
		}
		s.list = append(s.list, *created)
		return false, s.switchTo(ctx, userID, *created)

	case "/threads":
		for i, t := range s.list {
			marker := "  "
			if t.ID == s.threads.Current() {
				marker = promptStyle.Render("> ")
			}
			label := util.PadRight(strconv.Itoa(i+1)+".", 4)
			fmt.Printf("%s%s%s\n", marker, label, util.TruncateString(t.Name, 48))
		}
		return false, nil

	case "/switch":
		if len(rest) != 1 {
			return false, errors.New("usage: /switch N")
		}
		n, convErr := strconv.Atoi(rest[0])
		if convErr != nil || n < 1 || n > len(s.list) {
			return false, fmt.Errorf("no such thread: %s", rest[0])
		}
		return false, s.switchTo(ctx, userID, s.list[n-1])

	case "/summary":
		sum, err := s.client.GetSummary(ctx, userID, s.threads.Current())
		if err != nil {
			if api.IsNotFound(err) {
				fmt.Println(infoStyle.Render("No summary yet for this thread."))
				return false, nil
			}
			return false, err
		}
		s.printReply(sum.Summary)
		return false, nil

	case "/progress":
		dash, err := s.client.Dashboard(ctx, userID)
		if err != nil {
			return false, err
		}
		fmt.Println(infoStyle.Render(fmt.Sprintf(
			"Level %d | %d XP | %d day streak", dash.Level, dash.XP, dash.StreakCount)))
		return false, nil

	default:
		return false, fmt.Errorf("unknown command: %s (try /help)", cmd)
	}
}

func (s *askSession) printWelcome(sess session.Session) {
	fmt.Println(welcomeStyle.Render("StudyLab " + Version))
	fmt.Println(infoStyle.Render(fmt.Sprintf(
		"Signed in as %s. Type /help for commands, Ctrl+D to exit.", sess.Username)))
	fmt.Println()
}

func (s *askSession) printHelp() {
	fmt.Println(infoStyle.Render(`Commands:
  /new [name]    Start a new thread
  /threads       List threads
  /switch N      Switch to thread N
  /summary       Show the server summary of this thread
  /progress      Show XP, level, and streak
  /quit          Exit`))
}

// describeError maps client errors to readable REPL output.
func describeError(err error) string {
	if api.IsUnreachable(err) {
		return "Cannot reach the study server. Is it running?"
	}
	var cerr *api.ClientError
	if errors.As(err, &cerr) {
		return cerr.Message
	}
	return err.Error()
}
