// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"
	"github.com/ssg-wsg/apiclient/auth"
	"github.com/ssg-wsg/apiclient/config"
)

func newCertCmd(global *globalFlags) *cobra.Command {
	var (
		keystore  string
		password  string
		format    string
		algorithm string
		certFile  string
		keyFile   string
		caFiles   []string
	)

	cmd := &cobra.Command{
		Use:   "cert URL",
		Short: "GET URL presenting a client certificate (mutual TLS)",
		Example: "  ssgapi cert https://api.ssg-wsg.sg/skillsFramework/sectors --keystore example.p12 --password env:P12_PASSWORD\n" +
			"  ssgapi cert URL --format PEM --cert-file cert.pem --key-file key.pem",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			cfg.Method = auth.MethodCertificate
			cfg.URL = args[0]
			cfg.Certificate = sectionOf(map[string]string{
				"keystore_path":         keystore,
				"keystore_password":     password,
				"keystore_format":       format,
				"key_manager_algorithm": algorithm,
				"cert_file":             certFile,
				"key_file":              keyFile,
			})
			if len(caFiles) > 0 {
				cfg.Certificate["ca_files"] = caFiles
			}

			return run(cmd.OutOrStdout(), cfg, *global)
		},
	}

	cmd.Flags().StringVar(&keystore, "keystore", "", "PKCS#12 keystore file")
	cmd.Flags().StringVar(&password, "password", "", "Keystore password, or env:NAME / keyring:SERVICE/USER")
	cmd.Flags().StringVar(&format, "format", auth.FormatPKCS12, "Keystore format: PKCS12 or PEM")
	cmd.Flags().StringVar(&algorithm, "key-manager-algorithm", auth.DefaultKeyManagerAlgorithm, "Key manager algorithm")
	cmd.Flags().StringVar(&certFile, "cert-file", "", "PEM certificate (format PEM)")
	cmd.Flags().StringVar(&keyFile, "key-file", "", "PEM private key (format PEM)")
	cmd.Flags().StringSliceVar(&caFiles, "ca-file", nil, "Extra PEM roots trusted besides the system ones")

	return cmd
}

// sectionOf keeps the non-empty flag values.
func sectionOf(values map[string]string) map[string]interface{} {
	section := map[string]interface{}{}
	for k, v := range values {
		if v != "" {
			section[k] = v
		}
	}
	return section
}
