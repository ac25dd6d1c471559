// Package responsewriter records the status and size of HTTP responses
// for access logs, metrics and trace spans.
package responsewriter

import "net/http"

// ResponseWriter is an http.ResponseWriter that remembers what was sent.
// Only the first WriteHeader takes effect, matching net/http.
type ResponseWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

// Wrap returns w wrapped for recording. If w is already a *ResponseWriter
// it is returned as is so stacked middleware share one recorder.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *ResponseWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.status = code
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Flush forwards to the underlying writer when it supports flushing.
func (w *ResponseWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// StatusCode is the status sent, or 200 if the handler never set one.
func (w *ResponseWriter) StatusCode() int { return w.status }

// BytesWritten is the number of body bytes sent.
func (w *ResponseWriter) BytesWritten() int { return w.size }

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool { return w.wroteHeader }

// Unwrap supports http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
