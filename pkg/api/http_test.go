package api

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestDoSendsBearerToken(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "tok-123", testLogger())
	if _, err := c.ListSites(); err != nil {
		t.Fatalf("ListSites failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"access_token":"t","token_type":"bearer","usuario":{"id":1,"nombre_usuario":"atorres","rol":"administrador"}}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", testLogger())
	res, err := c.Login("atorres", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty for login", gotAuth)
	}
	if res.User.Username != "atorres" {
		t.Errorf("User.Username = %q, want atorres", res.User.Username)
	}
}

func TestDoDecodesDetailError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"Credenciales incorrectas"}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", testLogger())
	_, err := c.Login("atorres", "wrong")
	if err == nil {
		t.Fatal("expected error for 401 response, got nil")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", apiErr.Status)
	}
	if apiErr.Error() != "Credenciales incorrectas" {
		t.Errorf("Error() = %q, want server detail verbatim", apiErr.Error())
	}
}

func TestDoFallsBackOnNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "t", testLogger())
	_, err := c.ListSites()
	if err == nil {
		t.Fatal("expected error for 502 response, got nil")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("expected status in fallback message, got: %v", err)
	}
}

func TestFindSiteScansCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sitios/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `[{"id":1,"url":"http://a.example"},{"id":2,"url":"http://b.example"}]`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "t", testLogger())
	site, err := c.FindSite(2)
	if err != nil {
		t.Fatalf("FindSite failed: %v", err)
	}
	if site.URL != "http://b.example" {
		t.Errorf("URL = %q, want http://b.example", site.URL)
	}

	if _, err := c.FindSite(9); err == nil {
		t.Fatal("expected not-found error, got nil")
	}
}

func TestListAuditBuildsQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "t", testLogger())
	_, err := c.ListAudit(AuditFilter{Limit: 25, Action: "LOGIN", UserID: 2, Since: "2026-03-01"})
	if err != nil {
		t.Fatalf("ListAudit failed: %v", err)
	}
	for _, want := range []string{"limite=25", "accion=LOGIN", "usuario_id=2", "fecha_desde=2026-03-01"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
	if strings.Contains(gotQuery, "fecha_hasta") {
		t.Errorf("unset filter leaked into query: %q", gotQuery)
	}
}

func TestExportClientCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sitios/exportar-csv/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Disposition", `attachment; filename="reporte_Banco_Andino.csv"`)
		fmt.Fprint(w, "ID,URL\n1,http://a.example\n")
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "t", testLogger())
	export, err := c.ExportClientCSV(7)
	if err != nil {
		t.Fatalf("ExportClientCSV failed: %v", err)
	}
	if export.Filename != "reporte_Banco_Andino.csv" {
		t.Errorf("Filename = %q, want header value", export.Filename)
	}
	if !strings.Contains(string(export.Data), "http://a.example") {
		t.Errorf("Data missing CSV rows: %s", export.Data)
	}
}

func TestExportFilenameFallback(t *testing.T) {
	tests := []string{"", "garbage;;;", `attachment; name="x"`}
	for _, disposition := range tests {
		name := exportFilename(disposition)
		if !strings.HasPrefix(name, "reporte_") || !strings.HasSuffix(name, ".csv") {
			t.Errorf("exportFilename(%q) = %q, want dated reporte_*.csv fallback", disposition, name)
		}
	}
}

func TestMarkTakedownSentUsesPost(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "t", testLogger())
	if err := c.MarkTakedownSent(5); err != nil {
		t.Fatalf("MarkTakedownSent failed: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/takedown/5/marcar-enviado" {
		t.Errorf("got %s %s, want POST /api/takedown/5/marcar-enviado", gotMethod, gotPath)
	}
}

func TestConfirmTakedownUsesPut(t *testing.T) {
	var gotMethod string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		fmt.Fprint(w, `{"id":5,"estado":"confirmado"}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "t", testLogger())
	updated, err := c.ConfirmTakedown(5, "Domain suspended.")
	if err != nil {
		t.Fatalf("ConfirmTakedown failed: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if !strings.Contains(string(gotBody), `"estado":"confirmado"`) {
		t.Errorf("body missing state transition: %s", gotBody)
	}
	if !strings.Contains(string(gotBody), "Domain suspended.") {
		t.Errorf("body missing provider response: %s", gotBody)
	}
	if updated.State != TakedownConfirmed {
		t.Errorf("State = %s, want confirmado", updated.State)
	}
}
