package madara_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/madara"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := madara.Errorf(madara.ENOTFOUND, "entry %q not found", "test")

	assert.Equal(t, madara.ENOTFOUND, madara.ErrorCode(err))
	assert.Equal(t, "entry \"test\" not found", madara.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, madara.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, madara.ErrorMessage(nil))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, madara.EINTERNAL, madara.ErrorCode(err))
	assert.Equal(t, "Internal error", madara.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("parse content: %w", madara.Errorf(madara.EMISSING, "title not found"))

	assert.Equal(t, madara.EMISSING, madara.ErrorCode(err))
	assert.Equal(t, "title not found", madara.ErrorMessage(err))
}

func TestIsRequiredFieldError(t *testing.T) {
	t.Parallel()

	assert.True(t, madara.IsRequiredFieldError(madara.Errorf(madara.EMISSING, "x")))
	assert.True(t, madara.IsRequiredFieldError(madara.Errorf(madara.ECONTRACT, "x")))
	assert.False(t, madara.IsRequiredFieldError(madara.Errorf(madara.EDATE, "x")))
	assert.False(t, madara.IsRequiredFieldError(nil))
}
