package csserr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestCodes(t *testing.T) {
	err := csserr.TypeMismatch("cannot add %s to %s", "px", "s")
	assert.Equal(t, "TYPE_MISMATCH_ERR: cannot add px to s", err.Error())
	assert.True(t, errors.Is(err, csserr.ErrTypeMismatch))
	assert.False(t, errors.Is(err, csserr.ErrSyntax))
	assert.Equal(t, csserr.TypeMismatchErr, csserr.CodeOf(err))
	assert.Equal(t, csserr.NoErr, csserr.CodeOf(errors.New("other")))
	assert.Equal(t, "ERR(42)", csserr.Code(42).String())
}

func TestWrapping(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := fmt.Errorf("margin: %w", csserr.Wrap(csserr.SyntaxErr, cause, "cannot parse"))
	assert.True(t, errors.Is(err, csserr.ErrSyntax))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, csserr.SyntaxErr, csserr.CodeOf(err))
	//
	errs := multierr.Combine(csserr.InvalidState("pending"), csserr.NotSupported("revert"))
	assert.True(t, errors.Is(errs, csserr.ErrNotSupported))
	assert.Len(t, multierr.Errors(errs), 2)
}
