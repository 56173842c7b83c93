// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

// Command ssgapi calls an API published on the SSG-WSG API gateway with a
// client certificate or with OAuth2 client credentials and prints the
// response.
package main

import "os"

func main() {
	os.Exit(Execute(os.Args[1:]))
}
