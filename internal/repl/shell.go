// Package repl is the interactive terminal front end of the calculator.
// Plain lines are evaluated; lines starting with ':' are commands that
// drive the same session a keypad would.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"onsite-calculator/internal/calc"
	"onsite-calculator/internal/interpret"
)

const notUnderstood = "Not Understood"

var errQuit = errors.New("quit")

// Config holds shell configuration.
type Config struct {
	HistoryFile string
	Translator  interpret.Translator
	Timeout     time.Duration
}

// Shell is the interactive calculator.
type Shell struct {
	engine     *calc.Engine
	session    *calc.Session
	translator interpret.Translator
	timeout    time.Duration
	logger     *zap.Logger
	out        io.Writer
	cfg        Config
}

// New creates a shell evaluating with engine and printing to out.
func New(engine *calc.Engine, cfg Config, out io.Writer, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		engine:     engine,
		session:    calc.NewSession(),
		translator: cfg.Translator,
		timeout:    cfg.Timeout,
		logger:     logger,
		out:        out,
		cfg:        cfg,
	}
}

// Run reads lines until EOF, :quit or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mcalc>\033[0m ",
		HistoryFile:     s.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(s.out, `Type an expression such as 10 3/8 + 5 or 5' 2 - 1. :help lists commands.`)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// Execute handles one input line.
func (s *Shell) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, ":") {
		return s.command(ctx, line)
	}

	s.session.Load(line)
	s.calculate()
	return nil
}

func (s *Shell) command(ctx context.Context, line string) error {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":quit", ":q", ":exit":
		return errQuit

	case ":help", ":h":
		s.printHelp()

	case ":press", ":p":
		for _, key := range strings.Fields(arg) {
			s.session.Press(key)
		}
		s.printBuffer()

	case ":back", ":b":
		s.session.Backspace()
		s.printBuffer()

	case ":eq", ":=":
		s.calculate()

	case ":clear", ":c":
		s.session.Clear()
		fmt.Fprintln(s.out, s.session.Display)

	case ":last":
		s.printLast()

	case ":base":
		return s.setBase(arg)

	case ":ai":
		return s.interpret(ctx, arg)

	default:
		return fmt.Errorf("unknown command %s", name)
	}
	return nil
}

func (s *Shell) calculate() {
	if _, err := s.session.Calculate(s.engine); err != nil {
		s.logger.Debug("calculation failed", zap.String("input", s.session.Buffer), zap.Error(err))
	}
	s.printResult()
}

func (s *Shell) interpret(ctx context.Context, text string) error {
	if s.translator == nil {
		return errors.New("interpreter is not configured")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd, err := s.translator.Translate(ctx, text)
	if err != nil {
		return err
	}
	if cmd.Empty() {
		fmt.Fprintln(s.out, notUnderstood)
		return nil
	}

	s.session.Load(cmd.Text())
	fmt.Fprintf(s.out, "  %s\n", cmd.Text())

	res, err := interpret.Evaluate(s.engine, cmd)
	if err != nil {
		s.session.Display = calc.KindOf(err).Label()
		s.printResult()
		return nil
	}
	s.session.Commit(res)
	s.printResult()
	return nil
}

func (s *Shell) setBase(arg string) error {
	if arg == "" {
		fmt.Fprintf(s.out, "1/%d\n", s.engine.DenominatorBase())
		return nil
	}

	n, err := strconv.Atoi(strings.TrimPrefix(arg, "1/"))
	if err != nil || n < 2 || n > 64 || n&(n-1) != 0 {
		return fmt.Errorf("base must be one of 2 4 8 16 32 64, got %q", arg)
	}
	s.engine = calc.New(calc.WithDenominatorBase(n))
	fmt.Fprintf(s.out, "1/%d\n", n)
	return nil
}

func (s *Shell) printResult() {
	fmt.Fprintf(s.out, "= %s\n", s.session.Display)
}

func (s *Shell) printBuffer() {
	if s.session.Buffer == "" {
		fmt.Fprintln(s.out, calc.EmptyDisplay)
		return
	}
	fmt.Fprintln(s.out, s.session.Buffer)
}

func (s *Shell) printLast() {
	r := s.session.Last
	if r == nil {
		fmt.Fprintln(s.out, "no history")
		return
	}
	if r.Mode == calc.ModeMeasurement {
		fmt.Fprintf(s.out, "%s %s %s = %s  (%s)\n", r.A, r.Op, r.B, r.Result, r.Approx)
		return
	}
	fmt.Fprintf(s.out, "%s = %s\n", r.Expression, r.Result)
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  <expression>     - Evaluate, e.g. 10 3/8 + 5 or (2 + 3) * 4")
	fmt.Fprintln(s.out, "  :press <keys>    - Press keypad keys, e.g. :press 1 0 3/8 + 5")
	fmt.Fprintln(s.out, "  :back            - Delete the last character")
	fmt.Fprintln(s.out, "  :eq              - Evaluate the keypad buffer")
	fmt.Fprintln(s.out, "  :clear           - Clear the buffer and history")
	fmt.Fprintln(s.out, "  :last            - Show the last calculation")
	fmt.Fprintln(s.out, "  :base [n]        - Show or set the fraction precision (2..64)")
	fmt.Fprintln(s.out, "  :ai <phrase>     - Interpret a spoken phrase")
	fmt.Fprintln(s.out, "  :quit            - Exit")
}
