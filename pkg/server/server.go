package server

//go:generate xgotext -no-locations -default bgrules -in ../.. -out locales

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"codeberg.org/tslocum/bgrules"
	"codeberg.org/tslocum/gotext"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/text/language"
)

//go:embed locales
var assetFS embed.FS

const englishIdentifier = "en"

var (
	// ErrUnknownMatch is returned for commands addressed to a match which
	// does not exist.
	ErrUnknownMatch = errors.New("unknown match")

	// ErrClosed is returned once the server has been closed.
	ErrClosed = errors.New("server closed")
)

func init() {
	gotext.SetDomain("bgrules-en")
}

type commandKind int

const (
	commandGame commandKind = iota
	commandState
	commandRematch
	commandRemove
	commandAdvance
)

type serverCommand struct {
	match   int
	kind    commandKind
	command bgrules.Command
	timer   bool // Issued by a match clock.
	game    int  // Game of the match a timer was started in.
	reply   chan *Response
}

// Response is the outcome of a command.
type Response struct {
	Events []bgrules.Event
	State  *bgrules.GameState

	// Err is set when the command was rejected. Notice is then the reason
	// translated to the match's language.
	Err    error
	Notice string
}

type server struct {
	matches     map[int]*serverMatch
	matchesLock sync.RWMutex
	nextMatchID int

	commands  chan serverCommand
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	clock  quartz.Clock
	logger *log.Logger
	opts   Options

	languageTags  []language.Tag
	languageNames []string
}

// NewServer returns a running server. Commands for every match are
// handled one at a time in submission order. A nil clock uses the system
// clock and a nil logger logs to standard error.
func NewServer(opts Options, clock quartz.Clock, logger *log.Logger) *server {
	const bufferSize = 10
	opts = opts.withDefaults()
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		level := log.InfoLevel
		if opts.Verbose {
			level = log.DebugLevel
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: level})
	}
	s := &server{
		matches:  make(map[int]*serverMatch),
		commands: make(chan serverCommand, bufferSize),
		done:     make(chan struct{}),
		clock:    clock,
		logger:   logger.WithPrefix("server"),
		opts:     opts,
	}
	s.loadLocales()

	s.wg.Add(1)
	go s.handleCommands()
	return s
}

func (s *server) loadLocales() {
	entries, err := assetFS.ReadDir("locales")
	if err != nil {
		log.Fatalf("failed to list files in locales directory: %s", err)
	}

	var availableTags = []language.Tag{
		language.MustParse("en_US"),
	}
	var availableNames = []string{
		englishIdentifier,
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		availableTags = append(availableTags, language.MustParse(entry.Name()))
		availableNames = append(availableNames, entry.Name())

		b, err := assetFS.ReadFile(fmt.Sprintf("locales/%s/%s.po", entry.Name(), entry.Name()))
		if err != nil {
			log.Fatalf("failed to read locale %s: %s", entry.Name(), err)
		}

		po := gotext.NewPo()
		po.Parse(b)
		gotext.GetStorage().AddTranslator(fmt.Sprintf("bgrules-%s", entry.Name()), po)
	}
	s.languageTags = availableTags
	s.languageNames = availableNames
}

// matchLanguage returns the name of the available locale closest to the
// BCP 47 tag identifier.
func (s *server) matchLanguage(identifier string) string {
	if identifier == "" {
		return englishIdentifier
	}

	tag, err := language.Parse(identifier)
	if err != nil {
		return englishIdentifier
	}
	var preferred = []language.Tag{tag}

	useLanguage, index, confidence := language.NewMatcher(s.languageTags).Match(preferred...)
	useLanguageCode := useLanguage.String()
	if index < 0 || confidence == language.No || useLanguageCode == "" || strings.HasPrefix(useLanguageCode, "en") {
		return englishIdentifier
	}
	return s.languageNames[index]
}

// localize translates the reason of a rejected command.
func (s *server) localize(domain string, err error) string {
	var actionErr *bgrules.ActionError
	if !errors.As(err, &actionErr) {
		return ""
	}
	return gotext.GetD(domain, actionErr.Reason)
}

// NewMatch creates a match awaiting its first roll and returns its ID.
// Automated seats take their first actions once the first command is
// submitted.
func (s *server) NewMatch(opts MatchOptions) int {
	lang := opts.Language
	if lang == "" {
		lang = s.opts.Language
	}

	s.matchesLock.Lock()
	defer s.matchesLock.Unlock()

	s.nextMatchID++
	id := s.nextMatchID
	logger := s.logger.With("match", id)
	s.matches[id] = newServerMatch(id, s.clock.Now(), "bgrules-"+s.matchLanguage(lang), opts, logger)
	logger.Debug("Created match", "language", s.matches[id].language)
	return id
}

// RemoveMatch stops the clocks of match id and forgets it.
func (s *server) RemoveMatch(ctx context.Context, id int) error {
	_, err := s.do(ctx, serverCommand{match: id, kind: commandRemove})
	return err
}

func (s *server) match(id int) *serverMatch {
	s.matchesLock.RLock()
	defer s.matchesLock.RUnlock()
	return s.matches[id]
}

// Submit performs cmd in match id and waits for the outcome. Commands
// issued by automated seats in response are included in the returned
// events.
func (s *server) Submit(ctx context.Context, id int, cmd bgrules.Command) (*Response, error) {
	return s.do(ctx, serverCommand{match: id, kind: commandGame, command: cmd})
}

// State returns a snapshot of match id.
func (s *server) State(ctx context.Context, id int) (*bgrules.GameState, error) {
	resp, err := s.do(ctx, serverCommand{match: id, kind: commandState})
	if err != nil {
		return nil, err
	}
	return resp.State, nil
}

// Advance lets the automated seats of match id act, such as when both
// seats are automated.
func (s *server) Advance(ctx context.Context, id int) (*Response, error) {
	return s.do(ctx, serverCommand{match: id, kind: commandAdvance})
}

// Rematch starts a new game in match id, keeping its seats.
func (s *server) Rematch(ctx context.Context, id int) (*Response, error) {
	return s.do(ctx, serverCommand{match: id, kind: commandRematch})
}

func (s *server) do(ctx context.Context, cmd serverCommand) (*Response, error) {
	cmd.reply = make(chan *Response, 1)
	if err := s.enqueue(ctx, cmd); err != nil {
		return nil, err
	}
	select {
	case resp := <-cmd.reply:
		if resp == nil {
			return nil, ErrUnknownMatch
		}
		return resp, nil
	case <-s.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *server) enqueue(ctx context.Context, cmd serverCommand) error {
	select {
	case s.commands <- cmd:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the command loop and every match clock.
func (s *server) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()

		s.matchesLock.Lock()
		defer s.matchesLock.Unlock()
		for _, m := range s.matches {
			m.stopTimers()
		}
	})
}
