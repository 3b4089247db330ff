package logger

// Diagnostics are collected per parse instead of being streamed. Every public
// operation creates a deferred log, hands it to the parser, and converts the
// collected messages into its own error value. Messages carry labeled source
// ranges so the ESTree dump can expose them in a miette-like shape.

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg
}

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Advice
)

func (kind MsgKind) String() string {
	switch kind {
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	default:
		return "Advice"
	}
}

// MsgLabel points at the part of the source a message is about. A message may
// carry several labels; the primary one marks the offending range itself.
type MsgLabel struct {
	Range   Range
	Text    string
	Primary bool
}

type Msg struct {
	Kind   MsgKind
	Text   string
	Help   string
	Code   string
	URL    string
	Labels []MsgLabel
}

type Loc struct {
	// This is the 0-based index of this location from the start of the file, in bytes
	Start int32
}

type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 {
	return r.Loc.Start + r.Len
}

type Source struct {
	// An identifier for error messages. The library always parses in-memory
	// text, so this is a display name, not a path that is ever opened.
	PrettyPath string

	Contents string
}

func (s *Source) TextForRange(r Range) string {
	return s.Contents[r.Loc.Start : r.Loc.Start+r.Len]
}

// LineAndColumn converts a byte offset into a 1-based line and 0-based column
// for terminal output.
func (s *Source) LineAndColumn(loc Loc) (line int, column int) {
	line = 1
	lineStart := 0
	for i := 0; i < int(loc.Start) && i < len(s.Contents); i++ {
		if s.Contents[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, int(loc.Start) - lineStart
}

// This type is just so we can use Go's native sort function
type msgsArray []Msg

func (a msgsArray) Len() int          { return len(a) }
func (a msgsArray) Swap(i int, j int) { a[i], a[j] = a[j], a[i] }

func (a msgsArray) Less(i int, j int) bool {
	ai, aj := a[i], a[j]
	li, lj := int32(-1), int32(-1)
	if len(ai.Labels) > 0 {
		li = ai.Labels[0].Range.Loc.Start
	}
	if len(aj.Labels) > 0 {
		lj = aj.Labels[0].Range.Loc.Start
	}
	if li != lj {
		return li < lj
	}
	if ai.Kind != aj.Kind {
		return ai.Kind < aj.Kind
	}
	return ai.Text < aj.Text
}

// NewDeferLog returns a log that buffers messages until Done is called. Each
// parse owns its log exclusively, but the log itself is safe to share.
func NewDeferLog() Log {
	var msgs msgsArray
	var mutex sync.Mutex
	var hasErrors bool

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			sort.Stable(msgs)
			return msgs
		},
	}
}

func (log Log) AddError(source *Source, loc Loc, text string) {
	log.AddMsg(Msg{
		Kind: Error,
		Text: text,
		Labels: []MsgLabel{{
			Range:   Range{Loc: loc},
			Primary: true,
		}},
	})
}

func (log Log) AddRangeError(source *Source, r Range, text string) {
	log.AddMsg(Msg{
		Kind: Error,
		Text: text,
		Labels: []MsgLabel{{
			Range:   r,
			Primary: true,
		}},
	})
}

func (log Log) AddRangeErrorWithHelp(source *Source, r Range, text string, help string) {
	log.AddMsg(Msg{
		Kind: Error,
		Text: text,
		Help: help,
		Labels: []MsgLabel{{
			Range:   r,
			Primary: true,
		}},
	})
}

func (log Log) AddWarning(source *Source, loc Loc, text string) {
	log.AddMsg(Msg{
		Kind: Warning,
		Text: text,
		Labels: []MsgLabel{{
			Range:   Range{Loc: loc},
			Primary: true,
		}},
	})
}

// String renders a message the way the CLI shows it. The library itself only
// ever embeds this text into returned errors.
func (msg Msg) String(source *Source) string {
	sb := strings.Builder{}
	sb.WriteString(strings.ToLower(msg.Kind.String()))
	sb.WriteString(": ")
	sb.WriteString(msg.Text)
	if source != nil && len(msg.Labels) > 0 {
		line, column := source.LineAndColumn(msg.Labels[0].Range.Loc)
		sb.WriteString(fmt.Sprintf(" (%s:%d:%d)", source.PrettyPath, line, column))
	}
	if msg.Help != "" {
		sb.WriteString("\n  help: ")
		sb.WriteString(msg.Help)
	}
	return sb.String()
}

// MsgsToText joins rendered messages for embedding in an error value.
func MsgsToText(msgs []Msg, source *Source) string {
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		parts = append(parts, msg.String(source))
	}
	return strings.Join(parts, "\n")
}
