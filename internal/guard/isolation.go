package guard

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

const isolationPrefix = "e2e-test"

// IsolatedName returns a name for a resource created against live
// backends. The prefix makes strays identifiable, the timestamp makes
// concurrent runs collide-free.
func IsolatedName(base string) string {
	cleaned := strings.ToLower(strings.TrimSpace(base))
	cleaned = strings.ReplaceAll(cleaned, " ", "-")
	if cleaned == "" {
		cleaned = "run"
	}

	return fmt.Sprintf("%s-%s-%d", isolationPrefix, cleaned, time.Now().UnixNano())
}

// IsolatedTestName derives an isolated resource name from the running
// test, so two tests (or the same test on two machines) never contend for
// a live resource.
func IsolatedTestName(t *testing.T) string {
	t.Helper()
	return IsolatedName(strings.ReplaceAll(t.Name(), "/", "-"))
}

// IsIsolatedName reports whether name was produced by IsolatedName. The
// janitor uses it to refuse deleting anything it did not create.
func IsIsolatedName(name string) bool {
	return strings.HasPrefix(name, isolationPrefix+"-")
}
