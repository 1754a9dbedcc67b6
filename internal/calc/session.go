package calc

import (
	"strings"
	"unicode/utf8"
)

// Session is the state behind one calculator screen: the expression being
// typed, whether the last action was a calculation, what is displayed and
// the last history record. The caller owns it and drives every transition;
// it is not safe for concurrent use.
type Session struct {
	Buffer         string
	JustCalculated bool
	Display        string
	Last           *Record
}

// NewSession returns a cleared session.
func NewSession() *Session {
	return &Session{Display: EmptyDisplay}
}

// Press appends a keypad key. Operators are padded with spaces, fraction
// keys such as "3/8" become their own token, and the first key after a
// calculation starts a fresh expression.
func (s *Session) Press(key string) {
	if s.JustCalculated {
		s.Clear()
	}

	key = strings.TrimSpace(key)
	switch {
	case key == "+":
		key = " + "
	case key == "-":
		key = " - "
	case key == "×" || key == "*":
		key = " * "
	case key == "÷" || key == "/":
		key = " / "
	case strings.Contains(key, "/"):
		key = " " + key
	}

	s.Buffer += key
	s.JustCalculated = false
}

// Load replaces the buffer, e.g. with a voice transcript or a translated
// command.
func (s *Session) Load(text string) {
	s.Buffer = text
	s.JustCalculated = false
}

// Backspace removes the last character of the buffer.
func (s *Session) Backspace() {
	if s.Buffer != "" {
		_, size := utf8.DecodeLastRuneInString(s.Buffer)
		s.Buffer = s.Buffer[:len(s.Buffer)-size]
	}
	s.JustCalculated = false
}

// Clear empties the buffer and the history.
func (s *Session) Clear() {
	s.Buffer = ""
	s.JustCalculated = false
	s.Display = EmptyDisplay
	s.Last = nil
}

// Calculate evaluates the buffer with e. On failure the display shows the
// error label and the history is left as it was.
func (s *Session) Calculate(e *Engine) (Result, error) {
	res, err := e.Evaluate(s.Buffer)
	if err != nil {
		s.Display = labelFor(err)
		return Result{}, err
	}

	s.Commit(res)
	return res, nil
}

// Commit shows a result computed outside Calculate, such as a translated
// command. Blank results only reset the display.
func (s *Session) Commit(res Result) {
	s.Display = res.Display
	if res.Empty {
		return
	}

	s.Last = res.Record
	s.JustCalculated = true
}

func labelFor(err error) string {
	return KindOf(err).Label()
}
