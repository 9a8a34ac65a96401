package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/klokku/mealplanner/pkg/meal"
	"github.com/klokku/mealplanner/pkg/shopping_list"
	"github.com/klokku/mealplanner/pkg/weekly_plan"
	log "github.com/sirupsen/logrus"
)

// ErrInputExhausted is returned by a command handler when input ends before it finished.
var ErrInputExhausted = errors.New("input exhausted")

type MealCatalog interface {
	weekly_plan.CatalogReader
	AddMeal(ctx context.Context, category string, name string, ingredients []string) (meal.Meal, error)
}

// Session is one interactive conversation over a line oriented input and output.
type Session struct {
	in           *bufio.Reader
	out          io.Writer
	catalog      MealCatalog
	plan         weekly_plan.Service
	shoppingList shopping_list.Service
	log          *log.Entry
}

func NewSession(in io.Reader, out io.Writer, catalog MealCatalog, plan weekly_plan.Service, shoppingList shopping_list.Service) *Session {
	return &Session{
		in:           bufio.NewReader(in),
		out:          out,
		catalog:      catalog,
		plan:         plan,
		shoppingList: shoppingList,
		log:          log.WithField("session", uuid.NewString()),
	}
}

// Run reads commands until exit or end of input. Errors of a single command
// are reported to the user and the session goes on; only a failing input or
// output stream ends it with an error.
func (s *Session) Run(ctx context.Context) error {
	s.log.Debug("session started")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.println(msgMenu)
		line, err := s.readLine()
		if err != nil {
			if errors.Is(err, ErrInputExhausted) {
				s.log.Debug("input exhausted, ending session")
				return nil
			}
			return err
		}
		command, ok := ParseCommand(line)
		if !ok {
			s.log.Debugf("unknown command %q", line)
			continue
		}
		if command == Exit {
			s.println(msgBye)
			s.log.Debug("session ended")
			return nil
		}

		err = s.dispatch(ctx, command)
		switch {
		case err == nil:
		case errors.Is(err, ErrInputExhausted):
			s.log.WithField("command", command).Debug("input exhausted, ending session")
			return nil
		case isStreamError(err):
			return err
		default:
			s.log.WithField("command", command).Errorf("command failed: %v", err)
			s.printf(msgError+"\n", err)
		}
	}
}

func (s *Session) dispatch(ctx context.Context, command Command) error {
	s.log.WithField("command", command).Debug("running command")
	switch command {
	case Add:
		return s.add(ctx)
	case Show:
		return s.show()
	case Plan:
		return s.planWeek(ctx)
	case Save:
		return s.save(ctx)
	}
	return nil
}

type streamError struct {
	err error
}

func (e *streamError) Error() string {
	return fmt.Sprintf("reading input: %v", e.err)
}

func (e *streamError) Unwrap() error {
	return e.err
}

func isStreamError(err error) bool {
	var se *streamError
	return errors.As(err, &se)
}

// readLine returns the next line without its line ending. Lines have no length limit;
// a last line without a trailing newline is still returned.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", &streamError{err: err}
	}
	if err != nil && line == "" {
		return "", ErrInputExhausted
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
