package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a typed wrapper over the SIVIACK REST API. Every call except
// Login carries the session's bearer token.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token via POST /token
// (form-encoded, per the backend's OAuth2 password flow).
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("backend: login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend: login: unexpected status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("backend: login response: %w", err)
	}
	return tok.AccessToken, nil
}

func (f ActividadFilters) query() url.Values {
	q := url.Values{}
	set := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	set("empresa_id", f.EmpresaID)
	set("status_id", f.StatusID)
	set("responsable_id", f.ResponsableID)
	set("fecha_inicio", f.FechaInicio)
	set("fecha_fin", f.FechaFin)
	return q
}

func (c *Client) ListActividades(ctx context.Context, token string, f ActividadFilters) ([]Actividad, error) {
	var out []Actividad
	if err := c.do(ctx, token, http.MethodGet, "/actividades/", f.query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateActividad(ctx context.Context, token string, payload map[string]any) (*Actividad, error) {
	var out Actividad
	if err := c.do(ctx, token, http.MethodPost, "/actividades/", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateActividad(ctx context.Context, token string, id int, payload map[string]any) (*Actividad, error) {
	var out Actividad
	path := fmt.Sprintf("/actividades/%d", id)
	if err := c.do(ctx, token, http.MethodPut, path, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MisPendientes returns the activities assigned to the token's user.
func (c *Client) MisPendientes(ctx context.Context, token string) ([]Actividad, error) {
	var out []Actividad
	if err := c.do(ctx, token, http.MethodGet, "/mis-pendientes/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListEmpresas(ctx context.Context, token string) ([]Empresa, error) {
	var out []Empresa
	if err := c.do(ctx, token, http.MethodGet, "/empresas/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEmpresa(ctx context.Context, token string, e Empresa) (*Empresa, error) {
	var out Empresa
	if err := c.do(ctx, token, http.MethodPost, "/empresas/", nil, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmpresa(ctx context.Context, token string, id int, e Empresa) (*Empresa, error) {
	var out Empresa
	if err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/empresas/%d", id), nil, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEmpresa(ctx context.Context, token string, id int) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/empresas/%d", id), nil, nil, nil)
}

func (c *Client) ListAreas(ctx context.Context, token string) ([]Area, error) {
	var out []Area
	if err := c.do(ctx, token, http.MethodGet, "/areas/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateArea(ctx context.Context, token string, a Area) (*Area, error) {
	var out Area
	if err := c.do(ctx, token, http.MethodPost, "/areas/", nil, a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateArea(ctx context.Context, token string, id int, a Area) (*Area, error) {
	var out Area
	if err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/areas/%d", id), nil, a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteArea(ctx context.Context, token string, id int) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/areas/%d", id), nil, nil, nil)
}

// ListUsuarios filters by role when roles is non-empty (comma-separated
// ?rol= parameter).
func (c *Client) ListUsuarios(ctx context.Context, token string, roles ...string) ([]Usuario, error) {
	var q url.Values
	if len(roles) > 0 {
		q = url.Values{}
		q.Set("rol", strings.Join(roles, ","))
	}
	var out []Usuario
	if err := c.do(ctx, token, http.MethodGet, "/usuarios/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUsuario(ctx context.Context, token string, u Usuario) (*Usuario, error) {
	var out Usuario
	if err := c.do(ctx, token, http.MethodPost, "/usuarios/", nil, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUsuario(ctx context.Context, token string, id int, u Usuario) (*Usuario, error) {
	var out Usuario
	if err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/usuarios/%d", id), nil, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUsuario(ctx context.Context, token string, id int) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/usuarios/%d", id), nil, nil, nil)
}

func (c *Client) GetListas(ctx context.Context, token string) (Listas, error) {
	var out Listas
	if err := c.do(ctx, token, http.MethodGet, "/config/listas", nil, nil, &out); err != nil {
		return Listas{}, err
	}
	return out, nil
}

func (c *Client) CreateCatalogoItem(ctx context.Context, token, categoria, nombre string) (*CatalogoItem, error) {
	var out CatalogoItem
	body := CatalogoItem{Nombre: nombre}
	if err := c.do(ctx, token, http.MethodPost, "/config/catalogo/"+categoria, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCatalogoItem(ctx context.Context, token, categoria string, id int) error {
	path := fmt.Sprintf("/config/catalogo/%s/%d", categoria, id)
	return c.do(ctx, token, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) ListAuditLogs(ctx context.Context, token string) ([]AuditLog, error) {
	var out []AuditLog
	if err := c.do(ctx, token, http.MethodGet, "/audit-logs/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest:
		return parseValidationError(resp.Body)
	case resp.StatusCode >= 400:
		return fmt.Errorf("backend: %s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
	}
	return nil
}

// parseValidationError accepts both shapes the backend emits: a list of
// field errors or a plain detail string.
func parseValidationError(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &ValidationError{}
	}

	var structured struct {
		Detail []FieldError `json:"detail"`
	}
	if err := json.Unmarshal(data, &structured); err == nil && len(structured.Detail) > 0 {
		return &ValidationError{Fields: structured.Detail}
	}

	var plain struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &plain); err == nil && plain.Detail != "" {
		return &ValidationError{Detail: plain.Detail}
	}
	return &ValidationError{}
}
