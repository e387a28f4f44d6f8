// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"bytes"
	"sync"
)

// lineWriter hands complete lines to a sink. Stdout and stderr share one
// lineWriter, so writes are serialized.
type lineWriter struct {
	mu   sync.Mutex
	sink func(string)
	buf  []byte // partial line
}

func newLineWriter(sink func(string)) *lineWriter {
	return &lineWriter{sink: sink}
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			lw.buf = append(lw.buf, p...)
			break
		}
		lw.buf = append(lw.buf, p[:i]...)
		lw.emit()
		p = p[i+1:]
	}
	return n, nil
}

// Flush emits a trailing line without newline.
func (lw *lineWriter) Flush() {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.buf) > 0 {
		lw.emit()
	}
}

func (lw *lineWriter) emit() {
	lw.sink(string(bytes.TrimRight(lw.buf, "\r")))
	lw.buf = lw.buf[:0]
}
