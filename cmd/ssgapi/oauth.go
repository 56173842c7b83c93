// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"
	"github.com/ssg-wsg/apiclient/auth"
	"github.com/ssg-wsg/apiclient/config"
)

func newOAuthCmd(global *globalFlags) *cobra.Command {
	var (
		clientID     string
		clientSecret string
		tokenURL     string
		parser       string
		shortCircuit bool
	)

	cmd := &cobra.Command{
		Use:     "oauth URL",
		Aliases: []string{"oauth2"},
		Short:   "GET URL with a token obtained from OAuth2 client credentials",
		Example: "  ssgapi oauth https://public-api.ssg-wsg.sg/courses/directory --client-id ID --client-secret keyring:ssgapi/ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			cfg.Method = auth.MethodOauth2
			cfg.URL = args[0]
			cfg.TokenParser = parser
			cfg.ShortCircuit = shortCircuit
			cfg.OAuth2 = sectionOf(map[string]string{
				"client_id":     clientID,
				"client_secret": clientSecret,
				"token_url":     tokenURL,
			})

			return run(cmd.OutOrStdout(), cfg, *global)
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "Client ID from the developer portal")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "Secret, or env:NAME / keyring:SERVICE/USER")
	cmd.Flags().StringVar(&tokenURL, "token-url", auth.DefaultTokenURL, "Token endpoint")
	cmd.Flags().StringVar(&parser, "parser", "json", "Token response extraction: json or split")
	cmd.Flags().BoolVar(&shortCircuit, "short-circuit", false, "Do not send the request when no token could be extracted")

	return cmd
}
