package siteqa_test

import (
	"errors"
	"testing"

	"github.com/mwestrik/siteqa"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := siteqa.Errorf(siteqa.ENOTFOUND, "chunk %q not found", "abc-0")

	assert.Equal(t, siteqa.ENOTFOUND, siteqa.ErrorCode(err))
	assert.Equal(t, "chunk \"abc-0\" not found", siteqa.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, siteqa.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, siteqa.EINTERNAL, siteqa.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, siteqa.ErrorMessage(nil))
}
