package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"conform/internal/cerrors"
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, context.Canceled) && !errors.Is(err, cerrors.ErrConversionNeeded) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cerrors.ExitCode(err))
}
