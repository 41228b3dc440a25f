package cmd

import (
	"errors"
	"fmt"
	"testing"

	"material-manager/core/errs"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 2, exitCode(&errs.ValidationError{Field: "anio", Message: "out of range"}))
	assert.Equal(t, 3, exitCode(errs.NotFound("curso", "x")))
	assert.Equal(t, 3, exitCode(fmt.Errorf("verify: %w", errs.ErrNoVersion)))
	assert.Equal(t, 4, exitCode(errs.ErrConflict))
}

func TestRootCmd_ConfigDirFlag(t *testing.T) {
	flag := RootCmd.PersistentFlags().Lookup("config-dir")
	if assert.NotNil(t, flag) {
		assert.Equal(t, ".", flag.DefValue)
	}
}
