package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter_DefaultStatus(t *testing.T) {
	t.Parallel()

	rw := newResponseWriter(httptest.NewRecorder())

	if rw.statusCode != http.StatusOK {
		t.Errorf("default statusCode = %d, want %d", rw.statusCode, http.StatusOK)
	}
	if rw.headerWritten {
		t.Error("headerWritten = true before any write, want false")
	}
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusNotFound)

	if rw.statusCode != http.StatusNotFound {
		t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusNotFound)
	}
	if !rw.headerWritten {
		t.Error("headerWritten = false, want true")
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("recorder Code = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestResponseWriter_WriteHeaderOnlyFirstCallTakesEffect(t *testing.T) {
	t.Parallel()

	rw := newResponseWriter(httptest.NewRecorder())

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusConflict) // should be ignored

	if rw.statusCode != http.StatusCreated {
		t.Errorf("statusCode = %d, want %d (first call)", rw.statusCode, http.StatusCreated)
	}
}

func TestResponseWriter_WriteCountsBytes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	for _, chunk := range []string{`{"title":`, `"groceries"}`} {
		n, err := rw.Write([]byte(chunk))
		if err != nil {
			t.Fatalf("Write(%q) error = %v", chunk, err)
		}
		if n != len(chunk) {
			t.Errorf("Write(%q) = %d, want %d", chunk, n, len(chunk))
		}
	}

	if want := int64(len(`{"title":"groceries"}`)); rw.written != want {
		t.Errorf("written = %d, want %d", rw.written, want)
	}
	if !rw.headerWritten {
		t.Error("headerWritten = false after Write, want true")
	}
	if rec.Body.String() != `{"title":"groceries"}` {
		t.Errorf("body = %q, want %q", rec.Body.String(), `{"title":"groceries"}`)
	}
}

func TestResponseWriter_Unwrap(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	if rw.Unwrap() != rec {
		t.Error("Unwrap() did not return the underlying writer")
	}
}
