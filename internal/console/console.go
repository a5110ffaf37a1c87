// Package console connects an investigation to a terminal: it reads player lines and renders events as localized
// text.
package console

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/investigation"
	"github.com/myrjola/detectivequest/internal/mansion"
	"golang.org/x/term"
	"io"
	"log/slog"
	"strings"
)

const (
	LangEnglish    = "en"
	LangPortuguese = "pt_BR"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	ErrUnknownLanguage  = errors.NewSentinel("unknown language")
	ErrUnknownColorMode = errors.NewSentinel("unknown color mode")
)

//go:embed locale/pt_BR.po
var portuguese []byte

// Options configure a Console.
type Options struct {
	// Lang is LangPortuguese or LangEnglish.
	Lang string
	// Color enables styled output.
	Color bool
}

// Console reads player input from r and writes the narration to w.
type Console struct {
	in      *bufio.Reader
	// lines delivers the result of the single outstanding read. A read abandoned by a cancelled context is picked
	// up by the next ReadLine.
	lines   chan readResult
	reading bool
	out     io.Writer
	po      *gotext.Po
	styles  styles
	logger  *slog.Logger
}

// New creates a console. Messages are translated into opts.Lang.
func New(r io.Reader, w io.Writer, opts Options, logger *slog.Logger) (*Console, error) {
	po := gotext.NewPo()
	switch opts.Lang {
	case LangPortuguese:
		po.Parse(portuguese)
	case LangEnglish:
	default:
		return nil, errors.Wrap(ErrUnknownLanguage, "create console", slog.String("lang", opts.Lang))
	}
	return &Console{
		in:      bufio.NewReader(r),
		lines:   make(chan readResult, 1),
		reading: false,
		out:     w,
		po:      po,
		styles:  newStyles(opts.Color),
		logger:  logger.With("source", "Console"),
	}, nil
}

type readResult struct {
	line string
	err  error
}

// ColorEnabled resolves a color mode. In auto mode color is used when fd is a terminal.
func ColorEnabled(mode string, fd int) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		return term.IsTerminal(fd), nil
	}
	return false, errors.Wrap(ErrUnknownColorMode, "resolve color", slog.String("mode", mode))
}

// ReadLine returns the next line without its line terminator. The last line of the input may lack a terminator.
// Cancelling ctx unblocks a pending read; the line is kept for the next call.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, "read line")
	}
	if !c.reading {
		c.reading = true
		go func() {
			line, err := c.in.ReadString('\n')
			c.lines <- readResult{line: line, err: err}
		}()
	}
	var r readResult
	select {
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), "read line")
	case r = <-c.lines:
		c.reading = false
	}
	if r.err != nil && (!errors.Is(r.err, io.EOF) || r.line == "") {
		return "", errors.Wrap(r.err, "read line")
	}
	line := strings.TrimSuffix(r.line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// T translates msgid and formats it with vars.
func (c *Console) T(msgid string, vars ...any) string {
	return c.po.Get(msgid, vars...)
}

// Narrate renders e.
func (c *Console) Narrate(ctx context.Context, e investigation.Event) {
	s := c.styles
	switch e.Kind {
	case investigation.Welcome:
		c.println(s.heading(c.T("Welcome to %s!", e.Title)))
		if e.Intro != "" {
			c.println(e.Intro)
		}
	case investigation.ExplorationStarted:
		c.println("")
		c.println(s.banner(c.T("--- Mansion exploration started ---")))
		c.println(c.T("Commands: 'e' = left, 'd' = right, 's' = leave the exploration"))
	case investigation.EnteredRoom:
		c.println("")
		c.println(c.T("You are in the room: %s", s.room(e.Room)))
	case investigation.ClueFound:
		c.println(c.T("You found a clue: \"%s\"", s.clue(e.Clue)))
	case investigation.ClueCollected:
		c.println(s.good(c.T("Clue collected: \"%s\"", e.Clue)))
	case investigation.ClueAlreadyHeld:
		c.println(s.subtle(c.T("(This clue was already part of your collected evidence.)")))
	case investigation.NoClue:
		c.println(s.subtle(c.T("There are no apparent clues in this room.")))
	case investigation.CommandPrompt:
		c.println("")
		c.print(s.prompt(c.T("Choose the next step (e/d/s): ")))
	case investigation.NoRoom:
		if e.Direction == mansion.Left {
			c.println(s.warn(c.T("There is no room to the left. Stay where you are.")))
		} else {
			c.println(s.warn(c.T("There is no room to the right. Stay where you are.")))
		}
	case investigation.InvalidCommand:
		c.println(s.warn(c.T("Invalid command. Use 'e', 'd' or 's'.")))
	case investigation.ExplorationStopped:
		c.println(c.T("You chose to end the exploration."))
	case investigation.ExplorationEnded:
		c.println("")
		c.println(s.banner(c.T("--- Exploration finished ---")))
		c.println(s.subtle(c.T("Rooms visited: %d", e.Visited)))
	case investigation.InsufficientEvidence:
		c.println("")
		c.println(s.warn(c.T("You did not collect enough clues to make an accusation.")))
	case investigation.ClueListing:
		c.println("")
		c.println(c.T("Collected clues (alphabetical order):"))
		for _, clue := range e.Clues {
			c.println(" - " + s.clue(clue))
		}
	case investigation.AccusationPrompt:
		c.println("")
		c.print(s.prompt(c.T("Enter the name of the suspect you want to accuse: ")))
	case investigation.ReadFailure:
		c.println(s.warn(c.T("Read error. Leaving.")))
	case investigation.MatchCount:
		c.println("")
		c.println(c.T("Clues linking \"%s\": %d", e.Verdict.Accused, e.Verdict.Matches))
	case investigation.VerdictRendered:
		c.println("")
		c.println(c.verdict(e.Verdict))
	case investigation.Farewell:
		c.println("")
		c.println(c.T("Thanks for playing. Until the next investigation!"))
	default:
		c.logger.LogAttrs(ctx, slog.LevelWarn, "unknown event", slog.String("kind", e.Kind.String()))
	}
}

func (c *Console) verdict(v investigation.Verdict) string {
	if v.Status == investigation.VerdictSustained {
		return c.styles.sustained(c.T("VERDICT: Accusation sustained! There is enough evidence to blame %s.", v.Accused))
	}
	return c.styles.weak(c.T(
		"VERDICT: WEAK accusation. Only %d clue(s) support the accusation, at least %d are required.",
		v.Matches, v.Threshold))
}

// Println writes a line to the console output.
func (c *Console) Println(line string) {
	c.println(line)
}

// Heading writes a styled heading line.
func (c *Console) Heading(line string) {
	c.println(c.styles.heading(line))
}

// Room styles a room name.
func (c *Console) Room(name string) string {
	return c.styles.room(name)
}

// Clue styles a clue text.
func (c *Console) Clue(clue string) string {
	return c.styles.clue(clue)
}

func (c *Console) println(line string) {
	c.print(line + "\n")
}

func (c *Console) print(text string) {
	if _, err := fmt.Fprint(c.out, text); err != nil {
		c.logger.LogAttrs(context.Background(), slog.LevelError, "write console", errors.SlogError(err))
	}
}

type styles struct {
	heading   func(string) string
	banner    func(string) string
	room      func(string) string
	clue      func(string) string
	good      func(string) string
	warn      func(string) string
	subtle    func(string) string
	prompt    func(string) string
	sustained func(string) string
	weak      func(string) string
}

func newStyles(enabled bool) styles {
	if !enabled {
		plain := func(s string) string { return s }
		return styles{
			heading:   plain,
			banner:    plain,
			room:      plain,
			clue:      plain,
			good:      plain,
			warn:      plain,
			subtle:    plain,
			prompt:    plain,
			sustained: plain,
			weak:      plain,
		}
	}
	inline := func(st color.Style) func(string) string {
		return func(s string) string { return st.Sprint(s) }
	}
	block := func(st lipgloss.Style) func(string) string {
		return func(s string) string { return st.Render(s) }
	}
	verdictBox := lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder())
	return styles{
		heading:   block(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))),
		banner:    block(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))),
		room:      inline(color.Style{color.FgCyan, color.OpBold}),
		clue:      inline(color.Style{color.FgGreen}),
		good:      inline(color.Style{color.FgGreen, color.OpBold}),
		warn:      inline(color.Style{color.FgYellow}),
		subtle:    inline(color.Style{color.FgGray}),
		prompt:    inline(color.Style{color.FgMagenta, color.OpBold}),
		sustained: block(verdictBox.BorderForeground(lipgloss.Color("42"))),
		weak:      block(verdictBox.BorderForeground(lipgloss.Color("203"))),
	}
}
