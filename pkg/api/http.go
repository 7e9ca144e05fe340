package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// HTTPClient talks to a live PhishGuard API server. Every authenticated
// request carries the session's bearer token; mutating requests send JSON
// bodies. One request is in flight per operation and nothing is retried;
// a failed call is terminal until the operator re-invokes it.
type HTTPClient struct {
	baseURL string
	token   string
	hc      *http.Client
	logger  *log.Logger
}

var _ APIClient = (*HTTPClient)(nil)

// NewHTTPClient returns a client rooted at baseURL. The token may be empty
// for the login call; every other endpoint rejects unauthenticated
// requests server-side.
func NewHTTPClient(baseURL, token string, logger *log.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		hc:      &http.Client{},
		logger:  logger,
	}
}

// do issues one request and decodes a 2xx JSON response into out (which
// may be nil). Non-2xx responses become *Error carrying the server's
// detail message.
func (c *HTTPClient) do(method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Authentication --------------------------------------------------------

func (c *HTTPClient) Login(username, password string) (*LoginResult, error) {
	payload := map[string]string{
		"nombre_usuario": username,
		"contrasena":     password,
	}
	var res LoginResult
	if err := c.do(http.MethodPost, "/api/auth/login", payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Users ------------------------------------------------------------------

func (c *HTTPClient) ListUsers() ([]User, error) {
	var users []User
	if err := c.do(http.MethodGet, "/api/usuarios/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) CreateUser(u UserCreate) (*User, error) {
	var created User
	if err := c.do(http.MethodPost, "/api/usuarios/", u, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateUser(id int, u UserUpdate) (*User, error) {
	var updated User
	if err := c.do(http.MethodPut, "/api/usuarios/"+strconv.Itoa(id), u, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteUser(id int) error {
	return c.do(http.MethodDelete, "/api/usuarios/"+strconv.Itoa(id), nil, nil)
}

func (c *HTTPClient) ListRoles() ([]Role, error) {
	var roles []Role
	if err := c.do(http.MethodGet, "/api/usuarios/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Clients ----------------------------------------------------------------

func (c *HTTPClient) ListClients() ([]Client, error) {
	var clients []Client
	if err := c.do(http.MethodGet, "/api/clientes/", nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *HTTPClient) CreateClient(payload ClientCreate) (*Client, error) {
	var created Client
	if err := c.do(http.MethodPost, "/api/clientes/", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateClient(id int, payload ClientUpdate) (*Client, error) {
	var updated Client
	if err := c.do(http.MethodPut, "/api/clientes/"+strconv.Itoa(id), payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteClient(id int) error {
	return c.do(http.MethodDelete, "/api/clientes/"+strconv.Itoa(id), nil, nil)
}

// Sites ------------------------------------------------------------------

func (c *HTTPClient) ListSites() ([]Site, error) {
	var sites []Site
	if err := c.do(http.MethodGet, "/api/sitios/", nil, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// FindSite re-fetches the site collection and scans it; the API has no
// fetch-by-id endpoint.
func (c *HTTPClient) FindSite(id int) (*Site, error) {
	sites, err := c.ListSites()
	if err != nil {
		return nil, err
	}
	for i := range sites {
		if sites[i].ID == id {
			return &sites[i], nil
		}
	}
	return nil, fmt.Errorf("site %d not found", id)
}

func (c *HTTPClient) ReportSite(r SiteReport) (*Site, error) {
	var created Site
	if err := c.do(http.MethodPost, "/api/sitios/", r, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) ValidateSite(id int) (*ValidationResult, error) {
	var res ValidationResult
	if err := c.do(http.MethodPost, "/api/sitios/"+strconv.Itoa(id)+"/validar", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) DeleteSite(id int) error {
	return c.do(http.MethodDelete, "/api/sitios/"+strconv.Itoa(id), nil, nil)
}

func (c *HTTPClient) SiteStatistics() (*SiteStats, error) {
	var stats SiteStats
	if err := c.do(http.MethodGet, "/api/sitios/estadisticas", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ExportClientCSV downloads the server-generated CSV report for a client.
// The filename comes from the Content-Disposition header, with a dated
// fallback when the header is missing or malformed.
func (c *HTTPClient) ExportClientCSV(clientID int) (*Export, error) {
	path := "/api/sitios/exportar-csv/" + strconv.Itoa(clientID)
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, data)
	}

	filename := exportFilename(resp.Header.Get("Content-Disposition"))
	return &Export{Filename: filename, Data: data}, nil
}

func exportFilename(disposition string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := params["filename"]; name != "" {
				return name
			}
		}
	}
	return "reporte_" + time.Now().UTC().Format("20060102_150405") + ".csv"
}

// Whitelist --------------------------------------------------------------

func (c *HTTPClient) ListWhitelist() ([]WhitelistEntry, error) {
	var entries []WhitelistEntry
	if err := c.do(http.MethodGet, "/api/whitelist/", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) AddWhitelist(w WhitelistCreate) (*WhitelistEntry, error) {
	var created WhitelistEntry
	if err := c.do(http.MethodPost, "/api/whitelist/", w, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateWhitelist(id int, w WhitelistUpdate) (*WhitelistEntry, error) {
	var updated WhitelistEntry
	if err := c.do(http.MethodPut, "/api/whitelist/"+strconv.Itoa(id), w, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteWhitelist(id int) error {
	return c.do(http.MethodDelete, "/api/whitelist/"+strconv.Itoa(id), nil, nil)
}

// Takedowns --------------------------------------------------------------

func (c *HTTPClient) ListTakedowns() ([]Takedown, error) {
	var takedowns []Takedown
	if err := c.do(http.MethodGet, "/api/takedown/", nil, &takedowns); err != nil {
		return nil, err
	}
	return takedowns, nil
}

// FindTakedown re-fetches the takedown collection and scans it; the API
// has no fetch-by-id endpoint.
func (c *HTTPClient) FindTakedown(id int) (*Takedown, error) {
	takedowns, err := c.ListTakedowns()
	if err != nil {
		return nil, err
	}
	for i := range takedowns {
		if takedowns[i].ID == id {
			return &takedowns[i], nil
		}
	}
	return nil, fmt.Errorf("takedown %d not found", id)
}

func (c *HTTPClient) GenerateTakedown(siteID int) (*TakedownDraft, error) {
	var draft TakedownDraft
	if err := c.do(http.MethodPost, "/api/takedown/generar/"+strconv.Itoa(siteID), nil, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *HTTPClient) CreateTakedown(t TakedownCreate) (*Takedown, error) {
	var created Takedown
	if err := c.do(http.MethodPost, "/api/takedown/", t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) MarkTakedownSent(id int) error {
	return c.do(http.MethodPost, "/api/takedown/"+strconv.Itoa(id)+"/marcar-enviado", nil, nil)
}

func (c *HTTPClient) ConfirmTakedown(id int, providerResponse string) (*Takedown, error) {
	payload := TakedownUpdate{State: TakedownConfirmed, ProviderResponse: providerResponse}
	var updated Takedown
	if err := c.do(http.MethodPut, "/api/takedown/"+strconv.Itoa(id), payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) SendTakedownEmail(id int) (*SendResult, error) {
	var res SendResult
	if err := c.do(http.MethodPost, "/api/takedown/"+strconv.Itoa(id)+"/enviar-email", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) DeleteTakedown(id int) error {
	return c.do(http.MethodDelete, "/api/takedown/"+strconv.Itoa(id), nil, nil)
}

// Audit log --------------------------------------------------------------

func (c *HTTPClient) ListAudit(f AuditFilter) ([]AuditEntry, error) {
	q := url.Values{}
	if f.Limit > 0 {
		q.Set("limite", strconv.Itoa(f.Limit))
	}
	if f.Action != "" {
		q.Set("accion", f.Action)
	}
	if f.UserID > 0 {
		q.Set("usuario_id", strconv.Itoa(f.UserID))
	}
	if f.Since != "" {
		q.Set("fecha_desde", f.Since)
	}
	if f.Until != "" {
		q.Set("fecha_hasta", f.Until)
	}

	path := "/api/bitacora/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var entries []AuditEntry
	if err := c.do(http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) ListAuditActions() ([]string, error) {
	var actions []string
	if err := c.do(http.MethodGet, "/api/bitacora/acciones", nil, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

func (c *HTTPClient) AuditStatistics() (*AuditStats, error) {
	var stats AuditStats
	if err := c.do(http.MethodGet, "/api/bitacora/estadisticas", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
