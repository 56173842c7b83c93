// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssg-wsg/apiclient/secrets"
)

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage secrets kept in the system keyring",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "store keyring:SERVICE/USER",
		Short:   "Store the first line of standard input in the system keyring",
		Example: "  printf '%s\\n' \"$SECRET\" | ssgapi secret store keyring:ssgapi/my-client",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			line = strings.TrimRight(line, "\r\n")
			if line == "" {
				if err != nil {
					return fmt.Errorf("reading secret: %w", err)
				}
				return errors.New("empty secret")
			}

			if err := secrets.Store(args[0], line); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", args[0])

			return nil
		},
	})

	return cmd
}
