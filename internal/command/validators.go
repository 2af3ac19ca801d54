// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/azpipe/azpipe/internal/log"
	"github.com/azpipe/azpipe/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator applies the logging flags before the action runs so
// that everything the action logs honors them.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	log.ApplyFlags(c.Bool("debug"), c.Bool("verbose"), c.Bool("only-show-errors"))
	return nil
}

func OutputValidator(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("output must be a string, got %T", value)
	}
	_, err := output.ParseFormat(s)
	return err
}
