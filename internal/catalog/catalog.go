// Package catalog implements reading and writing of PO localization
// catalogs for the translation pipeline. Parsing keeps every raw input
// line so that writing a catalog back reproduces untouched lines
// byte-for-byte; only translation slots are ever rewritten.
package catalog

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseError reports malformed catalog structure. It is fatal: the parser
// does not attempt recovery.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
}

// slot is one translation slot of an entry: the raw index of its
// msgstr/msgstr[N] line plus any continuation lines that belong to it.
type slot struct {
	pluralIndex int // -1 for a plain msgstr
	line        int
	cont        []int
}

// Entry is a single catalog entry. Entries are immutable after parsing;
// translations are attached by the writer at merge time.
type Entry struct {
	// Ordinal is the entry's position in the file, header included.
	Ordinal int
	// Comments are the verbatim leading comment lines.
	Comments []string
	// MsgID is the singular source text. Empty for the header entry.
	MsgID string
	// MsgIDPlural is the plural source text, empty when absent.
	MsgIDPlural string

	slots []slot
}

// HasPlural reports whether the entry carries a msgid_plural.
func (e *Entry) HasPlural() bool { return e.MsgIDPlural != "" }

// IsHeader reports whether the entry is the metadata header (msgid "").
func (e *Entry) IsHeader() bool { return e.MsgID == "" }

// File is a parsed catalog. The raw line slice is retained so the writer
// can reproduce the input exactly.
type File struct {
	Path    string
	Entries []*Entry

	lines []string
}

// parser field state, used to attach continuation lines.
const (
	fieldNone = iota
	fieldMsgID
	fieldMsgIDPlural
	fieldSlot
)

// Parse reads catalog text into a File. A single linear pass, no
// backtracking; structural errors abort with a *ParseError naming the
// offending line.
func Parse(text string) (*File, error) {
	f := &File{lines: strings.Split(text, "\n")}

	var (
		cur      *Entry
		pending  []string
		field    = fieldNone
		curSlot  *slot
		nextOrd  int
	)

	flush := func() {
		if cur == nil {
			return
		}
		cur.Ordinal = nextOrd
		nextOrd++
		f.Entries = append(f.Entries, cur)
		cur = nil
		curSlot = nil
		field = fieldNone
	}

	for i, raw := range f.lines {
		lineNum := i + 1
		line := strings.TrimSpace(raw)

		switch {
		case line == "":
			flush()
			pending = nil

		case strings.HasPrefix(line, "#"):
			flush()
			pending = append(pending, raw)

		case strings.HasPrefix(line, "msgid_plural"):
			if cur == nil {
				return nil, &ParseError{Line: lineNum, Msg: "msgid_plural without preceding msgid"}
			}
			if cur.MsgIDPlural != "" {
				return nil, &ParseError{Line: lineNum, Msg: "duplicate msgid_plural"}
			}
			cur.MsgIDPlural = unquote(strings.TrimPrefix(line, "msgid_plural"))
			field = fieldMsgIDPlural

		case strings.HasPrefix(line, "msgid"):
			flush()
			cur = &Entry{
				Comments: pending,
				MsgID:    unquote(strings.TrimPrefix(line, "msgid")),
			}
			pending = nil
			field = fieldMsgID

		case strings.HasPrefix(line, "msgstr["):
			if cur == nil {
				return nil, &ParseError{Line: lineNum, Msg: "msgstr without preceding msgid"}
			}
			closing := strings.Index(line, "]")
			if closing < 0 {
				return nil, &ParseError{Line: lineNum, Msg: "unterminated msgstr index"}
			}
			idx, err := strconv.Atoi(line[len("msgstr["):closing])
			if err != nil || idx < 0 {
				return nil, &ParseError{Line: lineNum, Msg: "invalid msgstr index"}
			}
			cur.slots = append(cur.slots, slot{pluralIndex: idx, line: i})
			curSlot = &cur.slots[len(cur.slots)-1]
			field = fieldSlot

		case strings.HasPrefix(line, "msgstr"):
			if cur == nil {
				return nil, &ParseError{Line: lineNum, Msg: "msgstr without preceding msgid"}
			}
			cur.slots = append(cur.slots, slot{pluralIndex: -1, line: i})
			curSlot = &cur.slots[len(cur.slots)-1]
			field = fieldSlot

		case strings.HasPrefix(line, "\""):
			// Quoted continuation of the preceding keyword.
			switch field {
			case fieldMsgID:
				cur.MsgID += unquote(line)
			case fieldMsgIDPlural:
				cur.MsgIDPlural += unquote(line)
			case fieldSlot:
				// Slot contents are placeholders to be filled later;
				// the line index is enough.
				curSlot.cont = append(curSlot.cont, i)
			default:
				return nil, &ParseError{Line: lineNum, Msg: "continuation line outside an entry"}
			}

		default:
			return nil, &ParseError{Line: lineNum, Msg: fmt.Sprintf("unrecognized line %q", line)}
		}
	}
	flush()

	return f, nil
}

// ParseFile reads and parses a catalog from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	f, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// unquote removes PO-style quoting from a keyword's value.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
			case 't':
				b.WriteByte('\t')
				i++
			case '\\':
				b.WriteByte('\\')
				i++
			case '"':
				b.WriteByte('"')
				i++
			default:
				b.WriteByte(s[i])
			}
		} else {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// quote produces a PO-style quoted string.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return `"` + s + `"`
}
