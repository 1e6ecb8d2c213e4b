package pagelens_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code of application errors", func(t *testing.T) {
		t.Parallel()

		err := pagelens.Errorf(pagelens.ENOTFOUND, "page not found")

		assert.Equal(t, pagelens.ENOTFOUND, pagelens.ErrorCode(err))
	})

	t.Run("unwraps wrapped application errors", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("outer: %w", pagelens.Errorf(pagelens.EINVALID, "bad input"))

		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
	})

	t.Run("non-application errors are internal", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, pagelens.EINTERNAL, pagelens.ErrorCode(errors.New("boom")))
	})

	t.Run("nil returns empty string", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", pagelens.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns message of application errors", func(t *testing.T) {
		t.Parallel()

		err := pagelens.Errorf(pagelens.EUNAVAILABLE, "fetch %s: HTTP %d", "https://example.com", 503)

		assert.Equal(t, "fetch https://example.com: HTTP 503", pagelens.ErrorMessage(err))
	})

	t.Run("non-application errors get a generic message", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Internal error.", pagelens.ErrorMessage(errors.New("boom")))
	})
}
