// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/juju/loggo/v2"
	"github.com/spf13/cobra"
	"github.com/ssg-wsg/apiclient/auth"
	"github.com/ssg-wsg/apiclient/certauth"
	"github.com/ssg-wsg/apiclient/common"
	"github.com/ssg-wsg/apiclient/config"
	"github.com/ssg-wsg/apiclient/render"
	"github.com/ssg-wsg/apiclient/tokenauth"
)

const hint = "Please check if you have subscribed to the API or enter the correct Input Value"

var logger = loggo.GetLogger("ssgapi")

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	method     auth.Method
	logLevel   string
	timeout    time.Duration
	apiVersion string
	decryptKey string
}

// Execute runs the command line and returns the process exit status. HTTP
// error statuses are not failures: only an exchange that could not be
// completed is.
func Execute(args []string) int {
	return execute(newRootCmd(), args)
}

func execute(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Error Message: %v\n", err)
		fmt.Fprintln(out, hint)
		return 1
	}

	return 0
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "ssgapi [URL]",
		Short: "Call an SSG-WSG API with a client certificate or OAuth2 credentials",
		Long: "ssgapi issues one GET to an API published on the SSG-WSG API gateway and prints\n" +
			"the response headers and body. Without a subcommand the call is described by\n" +
			"--config; URL and --method override the file.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd.ErrOrStderr(), flags.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if flags.configPath != "" {
				var err error
				if cfg, err = config.Load(flags.configPath); err != nil {
					return err
				}
			}

			if flags.method != "" {
				cfg.Method = flags.method
			}
			if len(args) == 1 {
				cfg.URL = args[0]
			}

			return run(cmd.OutOrStdout(), cfg, flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "WARNING", "Log level (TRACE, DEBUG, INFO, WARNING, ERROR)")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "Request timeout (default from config, else 30s)")
	cmd.PersistentFlags().StringVar(&flags.apiVersion, "api-version", "", "x-api-version of the request (default latest)")
	cmd.PersistentFlags().StringVar(&flags.decryptKey, "decrypt-key", "", "Base64 AES key decrypting the response body, or env:NAME / keyring:SERVICE/USER")
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "YAML file describing the call")
	cmd.Flags().Var(&flags.method, "method", "Credential strategy: certificate or oauth2")

	cmd.AddCommand(newCertCmd(&flags))
	cmd.AddCommand(newOAuthCmd(&flags))
	cmd.AddCommand(newSecretCmd())

	return cmd
}

// run performs the call described by cfg and renders it to out.
func run(out io.Writer, cfg *config.Config, flags globalFlags) error {
	if flags.timeout > 0 {
		cfg.Timeout = flags.timeout
	}
	if flags.apiVersion != "" {
		cfg.APIVersion = flags.apiVersion
	}
	if flags.decryptKey != "" {
		cfg.DecryptKey = flags.decryptKey
	}

	a, err := cfg.Authenticator()
	if err != nil {
		return err
	}

	c, err := cfg.Cipher()
	if err != nil {
		return err
	}

	client := newClient()
	client.SetTimeout(cfg.Timeout)
	defer client.CloseIdleConnections()

	r := render.New(out)
	r.Cipher = c

	switch a := a.(type) {
	case *auth.CertificateAuthenticator:
		return certauth.FetchConfig{
			Client:        client,
			Authenticator: a,
			Renderer:      r,
			APIVersion:    cfg.APIVersion,
		}.Run(cfg.URL)
	case *auth.Oauth2Authenticator:
		parser, err := auth.NewTokenParser(cfg.TokenParser)
		if err != nil {
			return err
		}

		policy := tokenauth.AttemptAnyway
		if cfg.ShortCircuit {
			policy = tokenauth.ShortCircuit
		}

		return tokenauth.ExchangeConfig{
			Client:        client,
			Authenticator: a,
			Parser:        parser,
			UnsetToken:    policy,
			Renderer:      r,
			APIVersion:    cfg.APIVersion,
		}.Run(cfg.URL)
	default:
		return fmt.Errorf("no pipeline for %T", a)
	}
}

// newClient is replaced in tests.
var newClient = common.NewClient

func setupLogging(w io.Writer, level string) error {
	lvl, ok := loggo.ParseLevel(level)
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}

	if _, err := loggo.ReplaceDefaultWriter(loggo.NewSimpleWriter(w, loggo.DefaultFormatter)); err != nil {
		return err
	}

	if err := loggo.ConfigureLoggers(fmt.Sprintf("<root>=%s", lvl)); err != nil {
		return err
	}

	logger.Debugf("logging at %s", lvl)

	return nil
}
