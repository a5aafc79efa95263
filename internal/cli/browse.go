package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/dharmasatrya/aerohub/internal/catalog"
	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/submission"
	"github.com/dharmasatrya/aerohub/internal/timezone"
)

func newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Open an interactive shell over the catalog.

Every command changes the view and shows the refreshed page. Type help
for the list of commands.`,
		RunE: runBrowse,
	}
}

// prompter asks for one line of input with a default value.
type prompter interface {
	Prompt(label, current string) (string, error)
}

// shell executes browse commands against a session. It holds no view state of its own.
type shell struct {
	sess   *Session
	out    io.Writer
	prompt prompter
	shown  map[string]bool
}

func newShell(sess *Session, out io.Writer, p prompter) *shell {
	return &shell{sess: sess, out: out, prompt: p, shown: map[string]bool{}}
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	sess, err := sessionFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	completer := &browseCompleter{commands: newCommandCompleter()}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "aerohub> ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdout:          cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	sh := newShell(sess, cmd.OutOrStdout(), &readlinePrompter{rl: rl, completer: completer})

	_, _ = fmt.Fprintln(sh.out, "aerohub catalog browser. Type help for commands, quit to exit.")
	sh.refresh(ctx)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if sh.exec(ctx, line) {
			return nil
		}
	}
}

// exec runs one command line and reports whether the shell should exit.
func (s *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	command := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	q := s.sess.Query

	var err error
	switch command {
	case "quit", "exit":
		return true
	case "help":
		printBrowseHelp(s.out)
		return false
	case "next", "n":
		err = q.SetPageIndex(ctx, q.Params().PageIndex+1)
	case "prev", "p":
		err = q.SetPageIndex(ctx, q.Params().PageIndex-1)
	case "page":
		var n int
		if n, err = strconv.Atoi(rest); err == nil {
			err = q.SetPageIndex(ctx, n-1)
		}
	case "size":
		var n int
		if n, err = strconv.Atoi(rest); err == nil {
			err = q.SetPageSize(ctx, n)
		}
	case "sort":
		err = q.SetSort(ctx, models.SortField(strings.ToLower(rest)))
	case "search":
		err = q.SetSearch(ctx, rest)
	case "state":
		err = q.SetStateFilter(ctx, rest)
	case "refresh":
		err = q.Refresh(ctx)
	case "add":
		s.add(ctx)
		return false
	case "notes":
		s.listNotes()
		return false
	case "dismiss":
		if !s.sess.Feed.Dismiss(rest) {
			_, _ = fmt.Fprintf(s.out, "No notification %q\n", rest)
		}
		return false
	default:
		_, _ = fmt.Fprintf(s.out, "Unknown command: %s (type help for commands)\n", command)
		return false
	}

	if err != nil && !isFetchError(err) {
		_, _ = fmt.Fprintf(s.out, "Error: %v\n", err)
		return false
	}
	s.show()
	return false
}

func (s *shell) refresh(ctx context.Context) {
	_ = s.sess.Query.Refresh(ctx)
	s.show()
}

// show renders the current page and any notifications not printed yet.
func (s *shell) show() {
	renderPage(s.out, s.sess.Query.Page(), s.sess.Query.Params())
	s.flushNotes()
}

func (s *shell) flushNotes() {
	for _, n := range s.sess.Feed.Items() {
		if s.shown[n.ID] {
			continue
		}
		s.shown[n.ID] = true
		renderNotification(s.out, n)
	}
}

func (s *shell) listNotes() {
	items := s.sess.Feed.Items()
	if len(items) == 0 {
		_, _ = fmt.Fprintln(s.out, "No notifications.")
		return
	}
	for _, n := range items {
		s.shown[n.ID] = true
		_, _ = fmt.Fprintf(s.out, "%s  ", n.ID)
		renderNotification(s.out, n)
	}
}

// add walks the form field by field and submits it. A failed create keeps the draft,
// so running add again starts from the previous answers.
func (s *shell) add(ctx context.Context) {
	sc := s.sess.Submit
	if err := sc.OpenForm(); err != nil {
		_, _ = fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	for {
		if !s.fillForm() {
			_ = sc.CloseForm()
			_, _ = fmt.Fprintln(s.out, "Cancelled.")
			return
		}

		changes := sc.Changes().Subscribe()
		done := make(chan struct{})
		go s.reportProgress(changes, done)

		err := sc.Submit(ctx)
		sc.Changes().Unsubscribe(changes)
		<-done

		var vf *submission.ValidationFailure
		if errors.As(err, &vf) {
			_, _ = fmt.Fprintf(s.out, "Please fix the %s tab:\n", sc.Snapshot().Tab)
			renderFieldErrors(s.out, vf.Errors)
			continue
		}
		if err == nil {
			s.show()
		} else {
			s.flushNotes()
		}
		return
	}
}

// reportProgress prints each workflow state once until changes is closed.
func (s *shell) reportProgress(changes chan struct{}, done chan struct{}) {
	defer close(done)
	last := s.sess.Submit.Snapshot().State
	for range changes {
		state := s.sess.Submit.Snapshot().State
		if state == last {
			continue
		}
		last = state
		switch state {
		case submission.StateSubmitting:
			_, _ = fmt.Fprintln(s.out, "Saving airport...")
		case submission.StateReconciling:
			_, _ = fmt.Fprintln(s.out, "Refreshing list...")
		case submission.StateSucceeded:
			_, _ = fmt.Fprintln(s.out, "Airport added.")
		}
	}
}

const (
	cancelInput = "!cancel"
	clearInput  = "-"
)

// fillForm prompts for every editable field on the tab order. An empty answer keeps the
// current value and "-" clears it. It returns false when the user cancels with "!cancel"
// or input ends.
func (s *shell) fillForm() bool {
	sc := s.sess.Submit
	snap := sc.Snapshot()
	currentTab := submission.Tab("")

	for _, f := range submission.Fields {
		if f == submission.FieldICAO {
			continue
		}
		if tab := submission.TabOf(f); tab != currentTab {
			currentTab = tab
			_ = sc.SetTab(tab)
			_, _ = fmt.Fprintf(s.out, "-- %s --\n", tab)
		}
		if msg, ok := snap.Errors[f]; ok {
			_, _ = fmt.Fprintf(s.out, "  %s\n", msg)
		}

		current := sc.Snapshot().Draft.Get(f)
		v, err := s.prompt.Prompt(string(f), current)
		if err != nil || strings.TrimSpace(v) == cancelInput {
			return false
		}
		switch strings.TrimSpace(v) {
		case "":
			continue
		case clearInput:
			v = ""
		}
		if err := sc.EditField(f, v); err != nil {
			_, _ = fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
	return true
}

func printBrowseHelp(w io.Writer) {
	help := `
Commands:
  next | n          Next page
  prev | p          Previous page
  page <n>          Go to page n (starting at 1)
  size <n>          Rows per page: 10, 20 or 50
  sort <field>      Cycle sorting on a field: ascending, descending, off
  search [text]     Filter by text; no text clears the search
  state [name]      Only airports in one state; no name clears it
  refresh           Reload the current page
  add               Add an airport (Enter keeps a value, - clears it, !cancel stops)
  notes             Show notifications
  dismiss <id>      Dismiss a notification
  help              Show this help message
  quit | exit       Leave the browser
`
	_, _ = fmt.Fprintln(w, help)
}

// isFetchError reports list failures; those already reach the user as notifications.
func isFetchError(err error) bool {
	var fe *catalog.FetchError
	return errors.As(err, &fe)
}

// readlinePrompter reads form answers through the shell's readline instance.
type readlinePrompter struct {
	rl        *readline.Instance
	completer *browseCompleter
}

func (p *readlinePrompter) Prompt(label, current string) (string, error) {
	p.completer.timezones = label == string(submission.FieldTimezone)
	defer func() {
		p.completer.timezones = false
		p.rl.SetPrompt("aerohub> ")
	}()

	if current != "" {
		p.rl.SetPrompt(fmt.Sprintf("%s [%s]: ", label, current))
	} else {
		p.rl.SetPrompt(label + ": ")
	}
	return p.rl.Readline()
}

func newCommandCompleter() *readline.PrefixCompleter {
	sortItems := make([]readline.PrefixCompleterInterface, len(models.SortFields))
	for i, f := range models.SortFields {
		sortItems[i] = readline.PcItem(string(f))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("page"),
		readline.PcItem("size", readline.PcItem("10"), readline.PcItem("20"), readline.PcItem("50")),
		readline.PcItem("sort", sortItems...),
		readline.PcItem("search"),
		readline.PcItem("state"),
		readline.PcItem("refresh"),
		readline.PcItem("add"),
		readline.PcItem("notes"),
		readline.PcItem("dismiss"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// browseCompleter completes commands at the shell prompt and timezone names
// while the form asks for a timezone.
type browseCompleter struct {
	commands  *readline.PrefixCompleter
	timezones bool
}

func (c *browseCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if !c.timezones {
		return c.commands.Do(line, pos)
	}
	prefix := string(line[:pos])
	var out [][]rune
	for _, name := range timezone.Complete(prefix) {
		out = append(out, []rune(name[len(prefix):]))
	}
	return out, len([]rune(prefix))
}
