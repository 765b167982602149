package readmeta_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/readmeta"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := readmeta.Errorf(readmeta.ENOTFOUND, "repository %q not found", "acme/book")

	assert.Equal(t, readmeta.ENOTFOUND, readmeta.ErrorCode(err))
	assert.Equal(t, "repository \"acme/book\" not found", readmeta.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, readmeta.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, readmeta.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch readme: %w", readmeta.Errorf(readmeta.ENOTFOUND, "no readme"))

	assert.Equal(t, readmeta.ENOTFOUND, readmeta.ErrorCode(err))
	assert.Equal(t, "no readme", readmeta.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk full")

	assert.Equal(t, readmeta.EINTERNAL, readmeta.ErrorCode(err))
	assert.Equal(t, "Internal error.", readmeta.ErrorMessage(err))
}
