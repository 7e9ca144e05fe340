package api

import "time"

// SiteState is the lifecycle state of a reported site.
type SiteState string

const (
	SitePending       SiteState = "pendiente"
	SiteValidated     SiteState = "validado"
	SiteFalsePositive SiteState = "falso_positivo"
	SiteTakedownSent  SiteState = "takedown_enviado"
	SiteDown          SiteState = "sitio_caido"
)

// TakedownState is the lifecycle state of a takedown notice. States only
// advance (pendiente -> enviado -> confirmado); rechazado is set by the
// server, never by this client.
type TakedownState string

const (
	TakedownPending   TakedownState = "pendiente"
	TakedownSent      TakedownState = "enviado"
	TakedownConfirmed TakedownState = "confirmado"
	TakedownRejected  TakedownState = "rechazado"
)

// RoleAdmin is the role name that unlocks user, client, and audit
// management.
const RoleAdmin = "administrador"

// Identity is the logged-in user record returned by the login endpoint and
// persisted alongside the access token.
type Identity struct {
	ID       int    `json:"id" yaml:"id"`
	FullName string `json:"nombre_completo" yaml:"nombre_completo"`
	Email    string `json:"correo" yaml:"correo"`
	Username string `json:"nombre_usuario" yaml:"nombre_usuario"`
	Role     string `json:"rol" yaml:"rol"`
}

// LoginResult is the response of POST /api/auth/login.
type LoginResult struct {
	AccessToken string   `json:"access_token" yaml:"access_token"`
	TokenType   string   `json:"token_type" yaml:"token_type"`
	User        Identity `json:"usuario" yaml:"usuario"`
}

// User is a platform account. The username is immutable after creation.
type User struct {
	ID        int       `json:"id" yaml:"id"`
	FullName  string    `json:"nombre_completo" yaml:"nombre_completo"`
	Email     string    `json:"correo" yaml:"correo"`
	Username  string    `json:"nombre_usuario" yaml:"nombre_usuario"`
	Role      string    `json:"rol_nombre" yaml:"rol_nombre"`
	Active    bool      `json:"activo" yaml:"activo"`
	CreatedAt time.Time `json:"fecha_creacion" yaml:"fecha_creacion"`
}

// UserCreate is the payload for creating a user.
type UserCreate struct {
	FullName string `json:"nombre_completo"`
	Email    string `json:"correo"`
	Username string `json:"nombre_usuario"`
	Password string `json:"contrasena"`
	RoleID   int    `json:"rol_id"`
}

// UserUpdate is the payload for updating a user. Nil fields are left
// untouched by the server; the username cannot be changed.
type UserUpdate struct {
	FullName string `json:"nombre_completo,omitempty"`
	Email    string `json:"correo,omitempty"`
	Password string `json:"contrasena,omitempty"`
	RoleID   int    `json:"rol_id,omitempty"`
	Active   *bool  `json:"activo,omitempty"`
}

// Role is an assignable account role.
type Role struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"nombre" yaml:"nombre"`
	Description string `json:"descripcion" yaml:"descripcion"`
}

// Client is a protected brand. Deleting a client cascades to its sites
// server-side.
type Client struct {
	ID           int       `json:"id" yaml:"id"`
	Name         string    `json:"nombre" yaml:"nombre"`
	Domain       string    `json:"dominio_legitimo" yaml:"dominio_legitimo"`
	ContactName  string    `json:"contacto_nombre" yaml:"contacto_nombre"`
	ContactEmail string    `json:"contacto_correo" yaml:"contacto_correo"`
	ContactPhone string    `json:"contacto_telefono" yaml:"contacto_telefono"`
	Active       bool      `json:"activo" yaml:"activo"`
	CreatedAt    time.Time `json:"fecha_creacion" yaml:"fecha_creacion"`
}

// ClientCreate is the payload for registering a client.
type ClientCreate struct {
	Name         string `json:"nombre"`
	Domain       string `json:"dominio_legitimo"`
	ContactName  string `json:"contacto_nombre,omitempty"`
	ContactEmail string `json:"contacto_correo,omitempty"`
	ContactPhone string `json:"contacto_telefono,omitempty"`
}

// ClientUpdate is the payload for updating a client.
type ClientUpdate struct {
	Name         string `json:"nombre,omitempty"`
	Domain       string `json:"dominio_legitimo,omitempty"`
	ContactName  string `json:"contacto_nombre,omitempty"`
	ContactEmail string `json:"contacto_correo,omitempty"`
	ContactPhone string `json:"contacto_telefono,omitempty"`
	Active       *bool  `json:"activo,omitempty"`
}

// Site is a reported phishing site.
type Site struct {
	ID         int       `json:"id" yaml:"id"`
	ClientID   int       `json:"cliente_id" yaml:"cliente_id"`
	ClientName string    `json:"cliente_nombre" yaml:"cliente_nombre"`
	URL        string    `json:"url" yaml:"url"`
	Domain     string    `json:"dominio" yaml:"dominio"`
	IP         string    `json:"ip" yaml:"ip"`
	State      SiteState `json:"estado" yaml:"estado"`
	Malicious  bool      `json:"es_malicioso" yaml:"es_malicioso"`
	Notes      string    `json:"notas" yaml:"notas"`
	ReportedAt time.Time `json:"fecha_reporte" yaml:"fecha_reporte"`
	ReportedBy string    `json:"usuario_reporta_nombre" yaml:"usuario_reporta_nombre"`
}

// SiteReport is the payload for reporting a new site.
type SiteReport struct {
	ClientID int    `json:"cliente_id"`
	URL      string `json:"url"`
	Notes    string `json:"notas,omitempty"`
}

// APIVerdict is a single threat-intelligence verdict from the validation
// endpoint.
type APIVerdict struct {
	Service   string `json:"servicio" yaml:"servicio"`
	Malicious bool   `json:"malicioso" yaml:"malicioso"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ValidationResult is the response of POST /api/sitios/{id}/validar.
type ValidationResult struct {
	SiteID     int          `json:"sitio_id" yaml:"sitio_id"`
	URL        string       `json:"url" yaml:"url"`
	IP         string       `json:"ip" yaml:"ip"`
	Malicious  bool         `json:"es_malicioso" yaml:"es_malicioso"`
	State      SiteState    `json:"estado" yaml:"estado"`
	Detections string       `json:"detecciones" yaml:"detecciones"`
	Verdicts   []APIVerdict `json:"validaciones" yaml:"validaciones"`
}

// WhitelistEntry is a client-scoped URL excluded from phishing reports. The
// client reference is immutable after creation.
type WhitelistEntry struct {
	ID          int       `json:"id" yaml:"id"`
	ClientID    int       `json:"cliente_id" yaml:"cliente_id"`
	ClientName  string    `json:"cliente_nombre" yaml:"cliente_nombre"`
	URL         string    `json:"url" yaml:"url"`
	Description string    `json:"descripcion" yaml:"descripcion"`
	AddedAt     time.Time `json:"fecha_agregado" yaml:"fecha_agregado"`
}

// WhitelistCreate is the payload for adding a whitelist entry.
type WhitelistCreate struct {
	ClientID    int    `json:"cliente_id"`
	URL         string `json:"url"`
	Description string `json:"descripcion,omitempty"`
}

// WhitelistUpdate is the payload for updating a whitelist entry. The client
// reference cannot be changed.
type WhitelistUpdate struct {
	URL         string `json:"url,omitempty"`
	Description string `json:"descripcion,omitempty"`
}

// Takedown is a takedown notice for a reported site.
type Takedown struct {
	ID               int           `json:"id" yaml:"id"`
	SiteID           int           `json:"sitio_id" yaml:"sitio_id"`
	SiteURL          string        `json:"sitio_url" yaml:"sitio_url"`
	ClientName       string        `json:"cliente_nombre" yaml:"cliente_nombre"`
	Recipient        string        `json:"destinatario" yaml:"destinatario"`
	ExtraRecipients  string        `json:"destinatarios_adicionales" yaml:"destinatarios_adicionales"`
	Subject          string        `json:"asunto" yaml:"asunto"`
	Body             string        `json:"cuerpo" yaml:"cuerpo"`
	State            TakedownState `json:"estado" yaml:"estado"`
	SentAt           *time.Time    `json:"fecha_envio" yaml:"fecha_envio"`
	ConfirmedAt      *time.Time    `json:"fecha_confirmacion" yaml:"fecha_confirmacion"`
	ProviderResponse string        `json:"respuesta_proveedor" yaml:"respuesta_proveedor"`
}

// TakedownDraft is the server-composed notice returned by the generate
// endpoint. It is not persisted until TakedownCreate is submitted.
type TakedownDraft struct {
	SiteID             int      `json:"sitio_id" yaml:"sitio_id"`
	SiteURL            string   `json:"sitio_url" yaml:"sitio_url"`
	SuggestedRecipient string   `json:"destinatario_sugerido" yaml:"destinatario_sugerido"`
	CommonAbuseEmails  []string `json:"emails_abuse_comunes" yaml:"emails_abuse_comunes"`
	Subject            string   `json:"asunto" yaml:"asunto"`
	Body               string   `json:"cuerpo" yaml:"cuerpo"`
}

// TakedownCreate is the payload for persisting a takedown notice.
type TakedownCreate struct {
	SiteID          int      `json:"sitio_id" yaml:"sitio_id"`
	Recipient       string   `json:"destinatario_principal" yaml:"destinatario_principal"`
	ExtraRecipients []string `json:"destinatarios_secundarios,omitempty" yaml:"destinatarios_secundarios,omitempty"`
	Subject         string   `json:"asunto,omitempty" yaml:"asunto,omitempty"`
	Body            string   `json:"cuerpo,omitempty" yaml:"cuerpo,omitempty"`
}

// TakedownUpdate is the payload for advancing a takedown's state.
type TakedownUpdate struct {
	State            TakedownState `json:"estado"`
	ProviderResponse string        `json:"respuesta_proveedor,omitempty"`
}

// SendResult is the response of POST /api/takedown/{id}/enviar-email. It
// lists the recipients the server actually dispatched to.
type SendResult struct {
	Success    bool     `json:"success" yaml:"success"`
	Message    string   `json:"mensaje" yaml:"mensaje"`
	Recipients []string `json:"destinatarios_enviados" yaml:"destinatarios_enviados"`
}

// AuditEntry is an append-only audit log record.
type AuditEntry struct {
	ID       int       `json:"id" yaml:"id"`
	UserID   int       `json:"usuario_id" yaml:"usuario_id"`
	UserName string    `json:"usuario_nombre" yaml:"usuario_nombre"`
	Action   string    `json:"accion" yaml:"accion"`
	Detail   string    `json:"detalle" yaml:"detalle"`
	SourceIP string    `json:"ip_origen" yaml:"ip_origen"`
	Date     time.Time `json:"fecha" yaml:"fecha"`
}

// AuditFilter narrows an audit log listing. Zero values mean "no filter".
type AuditFilter struct {
	Limit  int
	Action string
	UserID int
	Since  string
	Until  string
}

// NamedCount is a label/count pair used by the statistics payloads.
type NamedCount struct {
	Name  string `json:"nombre" yaml:"nombre"`
	Count int    `json:"cantidad" yaml:"cantidad"`
}

// DatedCount is a date/count pair from the weekly activity series.
type DatedCount struct {
	Date  string `json:"fecha" yaml:"fecha"`
	Count int    `json:"cantidad" yaml:"cantidad"`
}

// SiteStats is the aggregate payload of GET /api/sitios/estadisticas. All
// counts arrive pre-computed; the client never aggregates locally.
type SiteStats struct {
	SitesByState     map[string]int `json:"sitios_por_estado" yaml:"sitios_por_estado"`
	TopClients       []NamedCount   `json:"top_clientes" yaml:"top_clientes"`
	WeeklyActivity   []DatedCount   `json:"actividad_semanal" yaml:"actividad_semanal"`
	TakedownsByState map[string]int `json:"takedowns_estados" yaml:"takedowns_estados"`
}

// ActionCount is an action/count pair from the audit statistics payload.
type ActionCount struct {
	Action string `json:"accion" yaml:"accion"`
	Count  int    `json:"cantidad" yaml:"cantidad"`
}

// UserActionCount is a user/count pair from the audit statistics payload.
type UserActionCount struct {
	Name  string `json:"nombre" yaml:"nombre"`
	Count int    `json:"acciones" yaml:"acciones"`
}

// AuditStats is the aggregate payload of GET /api/bitacora/estadisticas.
type AuditStats struct {
	Total       int               `json:"total_registros" yaml:"total_registros"`
	Last24h     int               `json:"registros_24h" yaml:"registros_24h"`
	TopActions  []ActionCount     `json:"acciones_frecuentes" yaml:"acciones_frecuentes"`
	ActiveUsers []UserActionCount `json:"usuarios_activos" yaml:"usuarios_activos"`
}

// Export is a server-generated CSV report.
type Export struct {
	Filename string
	Data     []byte
}
