package api

import (
	"fmt"
	"time"
)

// MockClient implements APIClient with canned data for development and
// testing. Mutations validate their targets but do not persist anything.
type MockClient struct{}

var _ APIClient = (*MockClient)(nil)

var mockEpoch = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func (m *MockClient) Login(username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, &Error{Status: 401, Detail: "Credenciales incorrectas"}
	}
	return &LoginResult{
		AccessToken: "mock-token",
		TokenType:   "bearer",
		User: Identity{
			ID:       1,
			FullName: "Ana Torres",
			Email:    "ana.torres@phishguard.example",
			Username: username,
			Role:     RoleAdmin,
		},
	}, nil
}

func (m *MockClient) ListUsers() ([]User, error) {
	return []User{
		{
			ID:        1,
			FullName:  "Ana Torres",
			Email:     "ana.torres@phishguard.example",
			Username:  "atorres",
			Role:      RoleAdmin,
			Active:    true,
			CreatedAt: mockEpoch.AddDate(0, -6, 0),
		},
		{
			ID:        2,
			FullName:  "Luis Mendoza",
			Email:     "luis.mendoza@phishguard.example",
			Username:  "lmendoza",
			Role:      "analista",
			Active:    true,
			CreatedAt: mockEpoch.AddDate(0, -2, 0),
		},
	}, nil
}

func (m *MockClient) CreateUser(u UserCreate) (*User, error) {
	if u.Username == "" {
		return nil, &Error{Status: 400, Detail: "El nombre de usuario ya existe"}
	}
	return &User{
		ID:        3,
		FullName:  u.FullName,
		Email:     u.Email,
		Username:  u.Username,
		Role:      "analista",
		Active:    true,
		CreatedAt: mockEpoch,
	}, nil
}

func (m *MockClient) UpdateUser(id int, u UserUpdate) (*User, error) {
	users, _ := m.ListUsers()
	for _, existing := range users {
		if existing.ID == id {
			if u.FullName != "" {
				existing.FullName = u.FullName
			}
			if u.Email != "" {
				existing.Email = u.Email
			}
			if u.Active != nil {
				existing.Active = *u.Active
			}
			return &existing, nil
		}
	}
	return nil, &Error{Status: 404, Detail: "Usuario no encontrado"}
}

func (m *MockClient) DeleteUser(id int) error {
	if _, err := m.UpdateUser(id, UserUpdate{}); err != nil {
		return err
	}
	return nil
}

func (m *MockClient) ListRoles() ([]Role, error) {
	return []Role{
		{ID: 1, Name: RoleAdmin, Description: "Acceso completo a la plataforma"},
		{ID: 2, Name: "analista", Description: "Reporta y valida sitios"},
	}, nil
}

func (m *MockClient) ListClients() ([]Client, error) {
	return []Client{
		{
			ID:           1,
			Name:         "Banco Andino",
			Domain:       "bancoandino.com",
			ContactName:  "Carla Ruiz",
			ContactEmail: "seguridad@bancoandino.com",
			ContactPhone: "+502 2222 0000",
			Active:       true,
			CreatedAt:    mockEpoch.AddDate(-1, 0, 0),
		},
		{
			ID:        2,
			Name:      "TiendaMax",
			Domain:    "tiendamax.com",
			Active:    true,
			CreatedAt: mockEpoch.AddDate(0, -4, 0),
		},
	}, nil
}

func (m *MockClient) CreateClient(c ClientCreate) (*Client, error) {
	if c.Domain == "" {
		return nil, &Error{Status: 400, Detail: "El dominio ya está registrado"}
	}
	return &Client{ID: 3, Name: c.Name, Domain: c.Domain, Active: true, CreatedAt: mockEpoch}, nil
}

func (m *MockClient) UpdateClient(id int, c ClientUpdate) (*Client, error) {
	clients, _ := m.ListClients()
	for _, existing := range clients {
		if existing.ID == id {
			if c.Name != "" {
				existing.Name = c.Name
			}
			if c.Domain != "" {
				existing.Domain = c.Domain
			}
			if c.Active != nil {
				existing.Active = *c.Active
			}
			return &existing, nil
		}
	}
	return nil, &Error{Status: 404, Detail: "Cliente no encontrado"}
}

func (m *MockClient) DeleteClient(id int) error {
	if _, err := m.UpdateClient(id, ClientUpdate{}); err != nil {
		return err
	}
	return nil
}

func (m *MockClient) ListSites() ([]Site, error) {
	return []Site{
		{
			ID:         1,
			ClientID:   1,
			ClientName: "Banco Andino",
			URL:        "http://bancoand1no-login.xyz/acceso",
			Domain:     "bancoand1no-login.xyz",
			IP:         "203.0.113.40",
			State:      SiteValidated,
			Malicious:  true,
			ReportedAt: mockEpoch.AddDate(0, 0, -3),
			ReportedBy: "Luis Mendoza",
		},
		{
			ID:         2,
			ClientID:   1,
			ClientName: "Banco Andino",
			URL:        "http://promo-bancoandino.top",
			Domain:     "promo-bancoandino.top",
			State:      SitePending,
			ReportedAt: mockEpoch.AddDate(0, 0, -1),
			ReportedBy: "Luis Mendoza",
		},
		{
			ID:         3,
			ClientID:   2,
			ClientName: "TiendaMax",
			URL:        "http://tiendamax-ofertas.shop",
			Domain:     "tiendamax-ofertas.shop",
			State:      SiteDown,
			Malicious:  true,
			ReportedAt: mockEpoch.AddDate(0, 0, -20),
			ReportedBy: "Ana Torres",
		},
	}, nil
}

func (m *MockClient) FindSite(id int) (*Site, error) {
	sites, _ := m.ListSites()
	for i := range sites {
		if sites[i].ID == id {
			return &sites[i], nil
		}
	}
	return nil, fmt.Errorf("site %d not found", id)
}

func (m *MockClient) ReportSite(r SiteReport) (*Site, error) {
	if r.ClientID == 0 {
		return nil, &Error{Status: 404, Detail: "Cliente no encontrado"}
	}
	return &Site{
		ID:         4,
		ClientID:   r.ClientID,
		URL:        r.URL,
		State:      SitePending,
		Notes:      r.Notes,
		ReportedAt: mockEpoch,
	}, nil
}

func (m *MockClient) ValidateSite(id int) (*ValidationResult, error) {
	site, err := m.FindSite(id)
	if err != nil {
		return nil, &Error{Status: 404, Detail: "Sitio no encontrado"}
	}
	return &ValidationResult{
		SiteID:     site.ID,
		URL:        site.URL,
		IP:         "203.0.113.40",
		Malicious:  true,
		State:      SiteValidated,
		Detections: "2/3",
		Verdicts: []APIVerdict{
			{Service: "VirusTotal", Malicious: true},
			{Service: "Google Safe Browsing", Malicious: true},
			{Service: "AbuseIPDB", Malicious: false},
		},
	}, nil
}

func (m *MockClient) DeleteSite(id int) error {
	if _, err := m.FindSite(id); err != nil {
		return &Error{Status: 404, Detail: "Sitio no encontrado"}
	}
	return nil
}

func (m *MockClient) SiteStatistics() (*SiteStats, error) {
	return &SiteStats{
		SitesByState: map[string]int{
			string(SitePending):   1,
			string(SiteValidated): 1,
			string(SiteDown):      1,
		},
		TopClients: []NamedCount{
			{Name: "Banco Andino", Count: 2},
			{Name: "TiendaMax", Count: 1},
		},
		WeeklyActivity: []DatedCount{
			{Date: "2026-03-08", Count: 1},
			{Date: "2026-03-09", Count: 2},
		},
		TakedownsByState: map[string]int{
			string(TakedownPending):   1,
			string(TakedownSent):      1,
			string(TakedownConfirmed): 1,
		},
	}, nil
}

func (m *MockClient) ExportClientCSV(clientID int) (*Export, error) {
	if clientID != 1 && clientID != 2 {
		return nil, &Error{Status: 404, Detail: "Cliente no encontrado"}
	}
	csv := "ID,Cliente,URL,Estado\n1,Banco Andino,http://bancoand1no-login.xyz/acceso,validado\n"
	return &Export{Filename: "reporte_Banco_Andino.csv", Data: []byte(csv)}, nil
}

func (m *MockClient) ListWhitelist() ([]WhitelistEntry, error) {
	return []WhitelistEntry{
		{
			ID:          1,
			ClientID:    1,
			ClientName:  "Banco Andino",
			URL:         "https://promo.bancoandino.com",
			Description: "Campaña oficial de marketing",
			AddedAt:     mockEpoch.AddDate(0, -1, 0),
		},
	}, nil
}

func (m *MockClient) AddWhitelist(w WhitelistCreate) (*WhitelistEntry, error) {
	if w.ClientID == 0 {
		return nil, &Error{Status: 404, Detail: "Cliente no encontrado"}
	}
	return &WhitelistEntry{ID: 2, ClientID: w.ClientID, URL: w.URL, Description: w.Description, AddedAt: mockEpoch}, nil
}

func (m *MockClient) UpdateWhitelist(id int, w WhitelistUpdate) (*WhitelistEntry, error) {
	entries, _ := m.ListWhitelist()
	for _, existing := range entries {
		if existing.ID == id {
			if w.URL != "" {
				existing.URL = w.URL
			}
			if w.Description != "" {
				existing.Description = w.Description
			}
			return &existing, nil
		}
	}
	return nil, &Error{Status: 404, Detail: "Entrada no encontrada"}
}

func (m *MockClient) DeleteWhitelist(id int) error {
	if _, err := m.UpdateWhitelist(id, WhitelistUpdate{}); err != nil {
		return err
	}
	return nil
}

func (m *MockClient) ListTakedowns() ([]Takedown, error) {
	sent := mockEpoch.AddDate(0, 0, -2)
	confirmed := mockEpoch.AddDate(0, 0, -15)
	return []Takedown{
		{
			ID:              1,
			SiteID:          1,
			SiteURL:         "http://bancoand1no-login.xyz/acceso",
			ClientName:      "Banco Andino",
			Recipient:       "abuse@bancoand1no-login.xyz",
			ExtraRecipients: "reportphishing@apwg.org, report@netcraft.com",
			Subject:         "[URGENT] Takedown Request - Phishing Site Impersonating Banco Andino",
			Body:            "Dear Abuse Department,\n\nI am writing to report a phishing website...",
			State:           TakedownPending,
		},
		{
			ID:         2,
			SiteID:     1,
			SiteURL:    "http://bancoand1no-login.xyz/acceso",
			ClientName: "Banco Andino",
			Recipient:  "abuse@hostingprovider.example",
			Subject:    "[URGENT] Takedown Request - Phishing Site Impersonating Banco Andino",
			Body:       "Dear Abuse Department,\n\nI am writing to report a phishing website...",
			State:      TakedownSent,
			SentAt:     &sent,
		},
		{
			ID:               3,
			SiteID:           3,
			SiteURL:          "http://tiendamax-ofertas.shop",
			ClientName:       "TiendaMax",
			Recipient:        "abuse@tiendamax-ofertas.shop",
			Subject:          "[URGENT] Takedown Request - Phishing Site Impersonating TiendaMax",
			Body:             "Dear Abuse Department,\n\nI am writing to report a phishing website...",
			State:            TakedownConfirmed,
			SentAt:           &confirmed,
			ConfirmedAt:      &confirmed,
			ProviderResponse: "Domain suspended.",
		},
	}, nil
}

func (m *MockClient) FindTakedown(id int) (*Takedown, error) {
	takedowns, _ := m.ListTakedowns()
	for i := range takedowns {
		if takedowns[i].ID == id {
			return &takedowns[i], nil
		}
	}
	return nil, fmt.Errorf("takedown %d not found", id)
}

func (m *MockClient) GenerateTakedown(siteID int) (*TakedownDraft, error) {
	site, err := m.FindSite(siteID)
	if err != nil {
		return nil, &Error{Status: 404, Detail: "Sitio no encontrado"}
	}
	if !site.Malicious {
		return nil, &Error{Status: 400, Detail: "Solo se pueden generar takedowns para sitios validados como maliciosos"}
	}
	return &TakedownDraft{
		SiteID:             site.ID,
		SiteURL:            site.URL,
		SuggestedRecipient: "abuse@" + site.Domain,
		CommonAbuseEmails:  []string{"reportphishing@google.com", "report@netcraft.com", "reportphishing@apwg.org"},
		Subject:            "[URGENT] Takedown Request - Phishing Site Impersonating " + site.ClientName,
		Body:               "Dear Abuse Department,\n\nI am writing to report a phishing website impersonating " + site.ClientName + ".",
	}, nil
}

func (m *MockClient) CreateTakedown(t TakedownCreate) (*Takedown, error) {
	if t.Recipient == "" {
		return nil, &Error{Status: 400, Detail: "destinatario_principal es requerido"}
	}
	return &Takedown{
		ID:        4,
		SiteID:    t.SiteID,
		Recipient: t.Recipient,
		Subject:   t.Subject,
		Body:      t.Body,
		State:     TakedownPending,
	}, nil
}

func (m *MockClient) MarkTakedownSent(id int) error {
	if _, err := m.FindTakedown(id); err != nil {
		return &Error{Status: 404, Detail: "Takedown no encontrado"}
	}
	return nil
}

func (m *MockClient) ConfirmTakedown(id int, providerResponse string) (*Takedown, error) {
	td, err := m.FindTakedown(id)
	if err != nil {
		return nil, &Error{Status: 404, Detail: "Takedown no encontrado"}
	}
	td.State = TakedownConfirmed
	td.ProviderResponse = providerResponse
	return td, nil
}

func (m *MockClient) SendTakedownEmail(id int) (*SendResult, error) {
	td, err := m.FindTakedown(id)
	if err != nil {
		return nil, &Error{Status: 404, Detail: "Takedown no encontrado"}
	}
	if td.State != TakedownPending {
		return nil, &Error{Status: 400, Detail: "Solo se pueden enviar takedowns en estado PENDIENTE"}
	}
	return &SendResult{
		Success:    true,
		Message:    "Email enviado correctamente",
		Recipients: []string{td.Recipient, "reportphishing@apwg.org", "report@netcraft.com"},
	}, nil
}

func (m *MockClient) DeleteTakedown(id int) error {
	if _, err := m.FindTakedown(id); err != nil {
		return &Error{Status: 404, Detail: "Takedown no encontrado"}
	}
	return nil
}

func (m *MockClient) ListAudit(f AuditFilter) ([]AuditEntry, error) {
	entries := []AuditEntry{
		{ID: 3, UserID: 1, UserName: "Ana Torres", Action: "CREAR_TAKEDOWN", Detail: "Creó solicitud de takedown para sitio: http://bancoand1no-login.xyz/acceso (3 destinatarios)", SourceIP: "10.0.0.5", Date: mockEpoch.AddDate(0, 0, -2)},
		{ID: 2, UserID: 2, UserName: "Luis Mendoza", Action: "REPORTAR_SITIO", Detail: "Reportó sitio: http://promo-bancoandino.top para cliente Banco Andino", SourceIP: "10.0.0.8", Date: mockEpoch.AddDate(0, 0, -1)},
		{ID: 1, UserID: 1, UserName: "Ana Torres", Action: "LOGIN", Detail: "Usuario atorres inició sesión", SourceIP: "10.0.0.5", Date: mockEpoch.AddDate(0, 0, -1)},
	}

	filtered := entries[:0:0]
	for _, e := range entries {
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.UserID > 0 && e.UserID != f.UserID {
			continue
		}
		filtered = append(filtered, e)
	}
	if f.Limit > 0 && len(filtered) > f.Limit {
		filtered = filtered[:f.Limit]
	}
	return filtered, nil
}

func (m *MockClient) ListAuditActions() ([]string, error) {
	return []string{"LOGIN", "REPORTAR_SITIO", "CREAR_TAKEDOWN"}, nil
}

func (m *MockClient) AuditStatistics() (*AuditStats, error) {
	return &AuditStats{
		Total:   128,
		Last24h: 7,
		TopActions: []ActionCount{
			{Action: "LOGIN", Count: 45},
			{Action: "REPORTAR_SITIO", Count: 30},
		},
		ActiveUsers: []UserActionCount{
			{Name: "Ana Torres", Count: 70},
			{Name: "Luis Mendoza", Count: 58},
		},
	}, nil
}
