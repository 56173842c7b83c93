// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/juju/loggo/v2"
	"github.com/ssg-wsg/apiclient/common"
	"github.com/ssg-wsg/apiclient/payload"
)

var logger = loggo.GetLogger("ssgapi.render")

// Renderer prints a completed exchange as diagnostic text: the status line,
// the response headers, a blank line and then the body line by line.
type Renderer struct {
	Out io.Writer
	// Cipher, when set, decrypts success bodies before they are printed.
	// Error bodies are never encrypted.
	Cipher *payload.Cipher
}

// New returns a Renderer writing to out, or to standard output if out is nil.
func New(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{Out: out}
}

// Render prints x. Only the stream selected by the status code is read.
// Failures reading the stream or writing the output are TransportErrors.
func (o *Renderer) Render(x *common.Exchange) error {
	w := bufio.NewWriter(o.out())

	if err := writeHeader(w, x); err != nil {
		return common.NewError(common.KindTransport, err)
	}

	body, err := o.body(x)
	if err != nil {
		return common.NewError(common.KindTransport, err)
	}

	if err := copyLines(w, body); err != nil {
		return common.NewError(common.KindTransport, err)
	}

	if err := w.Flush(); err != nil {
		return common.NewError(common.KindTransport, err)
	}

	return nil
}

// body returns the stream to print. A success body that does not decrypt is
// printed as received.
func (o *Renderer) body(x *common.Exchange) (io.Reader, error) {
	if o.Cipher == nil || common.IsErrorStatus(x.StatusCode) {
		return x.Stream(), nil
	}

	raw, err := io.ReadAll(x.Stream())
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	pt, err := o.Cipher.Decrypt(raw)
	if err != nil {
		logger.Warningf("could not decrypt response, printing it as received: %v", err)
		return bytes.NewReader(raw), nil
	}

	return bytes.NewReader(pt), nil
}

func (o *Renderer) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func writeHeader(w io.Writer, x *common.Exchange) error {
	if _, err := fmt.Fprintf(w, "\nStatus: %s\n", statusLine(x)); err != nil {
		return err
	}

	keys := make([]string, 0, len(x.Header))
	for k := range x.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := strings.Join(x.Header[k], ", ")
		if _, err := fmt.Fprintf(w, "Key: %s  Value: [%s]\n", k, v); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)

	return err
}

func statusLine(x *common.Exchange) string {
	if x.Status != "" {
		return x.Status
	}
	return fmt.Sprintf("%d", x.StatusCode)
}

// copyLines copies r to w one line at a time, normalising line terminators
// to "\n". Lines may be of any length.
func copyLines(w io.Writer, r io.Reader) error {
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if _, werr := io.WriteString(w, line+"\n"); werr != nil {
				return werr
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("reading response body: %w", err)
		}
	}
}
