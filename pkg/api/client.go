package api

// Client defines the interface for communicating with the PhishGuard
// platform API. View- and edit-by-id lookups re-fetch the collection and
// scan for the id, since the platform exposes no fetch-by-id endpoints;
// callers stay insulated from that detail behind Find*.
type APIClient interface {
	// Authentication
	Login(username, password string) (*LoginResult, error)

	// User management (admin only, re-validated server-side)
	ListUsers() ([]User, error)
	CreateUser(u UserCreate) (*User, error)
	UpdateUser(id int, u UserUpdate) (*User, error)
	DeleteUser(id int) error
	ListRoles() ([]Role, error)

	// Client management (admin only, re-validated server-side)
	ListClients() ([]Client, error)
	CreateClient(c ClientCreate) (*Client, error)
	UpdateClient(id int, c ClientUpdate) (*Client, error)
	DeleteClient(id int) error

	// Reported sites
	ListSites() ([]Site, error)
	FindSite(id int) (*Site, error)
	ReportSite(r SiteReport) (*Site, error)
	ValidateSite(id int) (*ValidationResult, error)
	DeleteSite(id int) error
	SiteStatistics() (*SiteStats, error)
	ExportClientCSV(clientID int) (*Export, error)

	// Whitelist
	ListWhitelist() ([]WhitelistEntry, error)
	AddWhitelist(w WhitelistCreate) (*WhitelistEntry, error)
	UpdateWhitelist(id int, w WhitelistUpdate) (*WhitelistEntry, error)
	DeleteWhitelist(id int) error

	// Takedown workflow
	ListTakedowns() ([]Takedown, error)
	FindTakedown(id int) (*Takedown, error)
	GenerateTakedown(siteID int) (*TakedownDraft, error)
	CreateTakedown(t TakedownCreate) (*Takedown, error)
	MarkTakedownSent(id int) error
	ConfirmTakedown(id int, providerResponse string) (*Takedown, error)
	SendTakedownEmail(id int) (*SendResult, error)
	DeleteTakedown(id int) error

	// Audit log (admin only, re-validated server-side)
	ListAudit(f AuditFilter) ([]AuditEntry, error)
	ListAuditActions() ([]string, error)
	AuditStatistics() (*AuditStats, error)
}
