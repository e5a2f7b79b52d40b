package bookmarklet

import (
	"fmt"
	"strings"

	"github.com/alnah/go-bookmarklet/internal/jsvm"
)

// Check reports whether bookmarklet parses as JavaScript once its
// "javascript:" prefix is removed. Unescaped quotes in LoadingText are
// the usual culprit.
func Check(bookmarklet string) error {
	src := strings.TrimPrefix(bookmarklet, strings.TrimSpace(Prefix))
	if err := jsvm.Check("bookmarklet.js", src); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBookmarklet, err)
	}
	return nil
}
