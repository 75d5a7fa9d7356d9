package novelsrc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/novelsrc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := novelsrc.Errorf(novelsrc.ENOTFOUND, "source %q not found", "test")

	assert.Equal(t, novelsrc.ENOTFOUND, novelsrc.ErrorCode(err))
	assert.Equal(t, "source \"test\" not found", novelsrc.ErrorMessage(err))
	assert.Equal(t, `novelsrc error: code=not_found message=source "test" not found`, err.Error())
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, novelsrc.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, novelsrc.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading: %w", novelsrc.Errorf(novelsrc.ECONFLICT, "duplicate"))

	assert.Equal(t, novelsrc.ECONFLICT, novelsrc.ErrorCode(err))
	assert.Equal(t, "duplicate", novelsrc.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, novelsrc.EINTERNAL, novelsrc.ErrorCode(err))
	assert.Equal(t, "Internal error.", novelsrc.ErrorMessage(err))
}

func TestConfigValidationError(t *testing.T) {
	t.Parallel()

	t.Run("names the missing placeholder", func(t *testing.T) {
		t.Parallel()

		err := &novelsrc.ConfigValidationError{Field: "searchUrlTemplate", Placeholder: "{query}"}

		assert.Equal(t, "searchUrlTemplate: missing placeholder {query}", err.Error())
		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
		assert.Equal(t, err.Error(), novelsrc.ErrorMessage(err))
	})

	t.Run("reports a required field", func(t *testing.T) {
		t.Parallel()

		err := &novelsrc.ConfigValidationError{Field: "selectors.detail.title"}

		assert.Equal(t, "selectors.detail.title: required", err.Error())
	})

	t.Run("reports a reason", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("wrapped: %w", &novelsrc.ConfigValidationError{Field: "novelIdPattern", Reason: "needs one capture group"})

		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
		assert.Equal(t, "novelIdPattern: needs one capture group", novelsrc.ErrorMessage(err))
	})
}
