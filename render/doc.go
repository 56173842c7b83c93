// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

/*
Package render prints API gateway responses for a human reader.

The output of a 200 response carrying two header fields starts with a blank
line and then reads:

	Status: 200 OK
	Key: Content-Type  Value: [application/json]
	Key: X-Request-Id  Value: [abc, def]

	{"data": ...}

Header keys are sorted. Values of a repeated key are listed together. The body
comes from the success stream of the exchange when the status is below 400 and
from the error stream otherwise.

APIs that answer with encrypted payloads are printed in clear when the
Renderer carries a payload.Cipher. Only success bodies are decrypted.
*/
package render
