package convert

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLooksLikePDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"pdf header", []byte("%PDF-1.7\n..."), true},
		{"html error page", []byte("<html>oops</html>"), false},
		{"empty", nil, false},
		{"truncated header", []byte("%PD"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikePDF(tt.data); got != tt.want {
				t.Errorf("LooksLikePDF() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_ToPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/convert" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != docxMIME {
			t.Errorf("Content-Type = %q, want %q", got, docxMIME)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	pdf, err := c.ToPDF(context.Background(), []byte("docx bytes"))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !LooksLikePDF(pdf) {
		t.Errorf("ToPDF() returned non-pdf bytes: %q", pdf)
	}
}

func TestClient_ToPDF_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "renderer crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.ToPDF(context.Background(), []byte("docx bytes"))
	if err == nil {
		t.Fatal("ToPDF() expected error on 500")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error = %v, want status 500 mention", err)
	}
}

func TestClient_ToPDF_NonPDFBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>login required</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.ToPDF(context.Background(), []byte("docx bytes"))
	if err == nil {
		t.Fatal("ToPDF() expected error on non-pdf body")
	}
}

func TestClient_Unconfigured(t *testing.T) {
	c := NewClient("", "")
	if c.Configured() {
		t.Error("Configured() = true for empty base URL")
	}
	if _, err := c.ToPDF(context.Background(), nil); err == nil {
		t.Error("ToPDF() expected error when unconfigured")
	}
}
