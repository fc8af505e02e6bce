package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateTestCatalog writes a PO catalog into a temp directory and
// returns its path.
func CreateTestCatalog(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "messages.po")
	CreateTestFile(t, path, []byte(content))
	return path
}

// SampleCatalog is a small but representative PO catalog with a header,
// a plain entry, a plural entry and a placeholder-only entry.
const SampleCatalog = `# Test catalog
msgid ""
msgstr ""
"Project-Id-Version: test 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"

#: cart.php:10
msgid "Add to Cart"
msgstr ""

#: cart.php:25
msgid "One item"
msgid_plural "%d items"
msgstr[0] ""
msgstr[1] ""

#: format.php:3
msgid "%s"
msgstr ""
`
