package catalog

import (
	"fmt"
	"os"
	"strings"
)

// Translation holds the values the writer places into an entry's slots.
// Plural is meaningful only for entries with a msgid_plural.
type Translation struct {
	Singular string
	Plural   string
}

// Lookup resolves an entry to its completed translation. Returning false
// leaves the entry's slots untouched.
type Lookup func(*Entry) (Translation, bool)

// Render merges translations into the catalog text. Every line that is not
// a filled translation slot is reproduced verbatim; slot lines of resolved
// entries are replaced with the quoted translation (dropping the slot's old
// continuation lines). For plural entries, msgstr[0] receives the singular
// translation and all higher indices the plural translation.
func (f *File) Render(lookup Lookup) string {
	replace := make(map[int]string)
	drop := make(map[int]bool)

	for _, e := range f.Entries {
		tr, ok := lookup(e)
		if !ok {
			continue
		}
		for _, s := range e.slots {
			var field, value string
			switch {
			case s.pluralIndex < 0:
				field = "msgstr"
				value = tr.Singular
			case s.pluralIndex == 0:
				field = fmt.Sprintf("msgstr[%d]", s.pluralIndex)
				value = tr.Singular
			default:
				field = fmt.Sprintf("msgstr[%d]", s.pluralIndex)
				value = tr.Plural
			}
			replace[s.line] = renderField(field, value)
			for _, c := range s.cont {
				drop[c] = true
			}
		}
	}

	out := make([]string, 0, len(f.lines))
	for i, raw := range f.lines {
		if drop[i] {
			continue
		}
		if r, ok := replace[i]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, raw)
	}
	return strings.Join(out, "\n")
}

// WriteFile renders the merged catalog to path. The source catalog is
// never modified in place.
func (f *File) WriteFile(path string, lookup Lookup) error {
	if err := os.WriteFile(path, []byte(f.Render(lookup)), 0644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// renderField emits a PO field with proper multiline quoting. Multiline
// values use an empty string on the first line followed by quoted
// continuation lines, matching gettext conventions.
func renderField(field, value string) string {
	if !strings.Contains(value, "\n") {
		return field + " " + quote(value)
	}

	lines := []string{field + ` ""`}
	parts := strings.Split(value, "\n")
	for i, part := range parts {
		if i < len(parts)-1 {
			lines = append(lines, quote(part+"\n"))
		} else if part != "" {
			lines = append(lines, quote(part))
		}
	}
	return strings.Join(lines, "\n")
}
