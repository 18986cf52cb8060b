package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/fieldworks/sitereport/internal/common"
	"github.com/fieldworks/sitereport/internal/logging"
	"github.com/fieldworks/sitereport/internal/netx"
)

// RESTClient talks to a PostgREST-style HTTP backend: tables as paths,
// eq./order/limit query filters, upserts via POST with an on_conflict key.
type RESTClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     logging.Logger
}

// NewRESTClient returns a client for the backend at baseURL. A nil
// httpClient falls back to one with a 15s timeout.
func NewRESTClient(baseURL, apiKey string, httpClient *http.Client, log logging.Logger) *RESTClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &RESTClient{baseURL: baseURL, apiKey: apiKey, http: httpClient, log: log}
}

// wireError is the machine-readable error body the backend returns.
type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, headers map[string]string, body any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteQueryFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", common.ErrRemoteQueryFailed, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var we wireError
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(data, &we)
		if we.Message == "" {
			we.Message = resp.Status
		}
		return fmt.Errorf("%w: %s %s: %s (code=%s)", common.ErrRemoteQueryFailed, method, path, we.Message, we.Code)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", common.ErrRemoteQueryFailed, path, err)
	}
	return nil
}

func (c *RESTClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil, nil)
}

func (c *RESTClient) QueryProjects(ctx context.Context, userID string) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "project_name")
	if userID != "" {
		q.Set("user_id", "eq."+userID)
	}
	var rows []map[string]any
	if err := c.do(ctx, http.MethodGet, "/projects", q, nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *RESTClient) GetProject(ctx context.Context, id string) (map[string]any, error) {
	q := url.Values{}
	q.Set("id", "eq."+id)
	q.Set("limit", "1")
	var rows []map[string]any
	if err := c.do(ctx, http.MethodGet, "/projects", q, nil, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (c *RESTClient) QueryContractors(ctx context.Context, projectID string) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("project_id", "eq."+projectID)
	var rows []map[string]any
	if err := c.do(ctx, http.MethodGet, "/contractors", q, nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *RESTClient) GetProfileByDevice(ctx context.Context, deviceID string) (map[string]any, error) {
	q := url.Values{}
	q.Set("device_id", "eq."+deviceID)
	q.Set("limit", "1")
	var rows []map[string]any
	if err := c.do(ctx, http.MethodGet, "/user_profiles", q, nil, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (c *RESTClient) UpsertProfile(ctx context.Context, p models.UserProfile) (map[string]any, error) {
	body := map[string]any{
		"device_id":  p.DeviceID,
		"full_name":  p.FullName,
		"title":      p.Title,
		"company":    p.Company,
		"email":      p.Email,
		"phone":      p.Phone,
		"updated_at": p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	// The id is only sent when this device already holds one; otherwise the
	// backend assigns it and the caller captures it from the returned row.
	if p.ID != "" {
		body["id"] = p.ID
	}

	q := url.Values{}
	q.Set("on_conflict", "device_id")
	headers := map[string]string{"Prefer": "resolution=merge-duplicates,return=representation"}

	var rows []map[string]any
	if err := c.do(ctx, http.MethodPost, "/user_profiles", q, headers, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: upsert returned no row", common.ErrRemoteQueryFailed)
	}
	return rows[0], nil
}

func (c *RESTClient) QueryArchivedReports(ctx context.Context, userID string, limit int) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("select", "*,projects(id,project_name)")
	q.Set("status", "eq.submitted")
	q.Set("order", "created_at.desc")
	q.Set("limit", strconv.Itoa(limit))
	if userID != "" {
		q.Set("user_id", "eq."+userID)
	}
	var rows []map[string]any
	if err := c.do(ctx, http.MethodGet, "/reports", q, nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *RESTClient) UpsertReportSection(ctx context.Context, reportID string, section models.ReportSection) error {
	body := map[string]any{
		"report_id":     reportID,
		"section_key":   section.Key,
		"section_title": section.Title,
		"content":       section.Content,
		"order":         section.Order,
	}
	q := url.Values{}
	q.Set("on_conflict", "report_id,section_key")
	headers := map[string]string{"Prefer": "resolution=merge-duplicates"}
	return c.do(ctx, http.MethodPost, "/final_report_sections", q, headers, body, nil)
}

func (c *RESTClient) MarkReportSubmitted(ctx context.Context, reportID string, at time.Time) error {
	body := map[string]any{
		"status":       "submitted",
		"submitted_at": at.UTC().Format(time.RFC3339),
	}
	q := url.Values{}
	q.Set("id", "eq."+reportID)
	return c.do(ctx, http.MethodPatch, "/reports", q, nil, body, nil)
}

func (c *RESTClient) DeleteReport(ctx context.Context, reportID string) error {
	q := url.Values{}
	q.Set("id", "eq."+reportID)
	return c.do(ctx, http.MethodDelete, "/reports", q, nil, nil, nil)
}

// uploadTicket is the backend's response to a photo upload registration: the
// assigned row id, the storage path, and a presigned URL for the binary.
type uploadTicket struct {
	ID          string `json:"id"`
	StoragePath string `json:"storage_path"`
	UploadURL   string `json:"upload_url"`
}

func (c *RESTClient) UploadPhoto(ctx context.Context, p *models.Photo) (*PhotoUpload, error) {
	body := map[string]any{
		"report_id": p.ReportID,
		"caption":   p.Caption,
		"taken_at":  p.Timestamp.UTC().Format(time.RFC3339),
	}
	if p.GPS != nil {
		body["gps_lat"] = p.GPS.Lat
		body["gps_lng"] = p.GPS.Lng
	}

	var ticket uploadTicket
	if err := c.do(ctx, http.MethodPost, "/photo_uploads", nil, nil, body, &ticket); err != nil {
		return nil, err
	}

	if err := netx.UploadToPresignedURL(ctx, c.http, ticket.UploadURL, "image/jpeg", p.Blob); err != nil {
		return nil, fmt.Errorf("%w: photo %s: %v", common.ErrRemoteQueryFailed, p.ID, err)
	}

	return &PhotoUpload{RemoteID: ticket.ID, StoragePath: ticket.StoragePath}, nil
}

func (c *RESTClient) DeletePhoto(ctx context.Context, remoteID string) error {
	q := url.Values{}
	q.Set("id", "eq."+remoteID)
	return c.do(ctx, http.MethodDelete, "/photos", q, nil, nil, nil)
}

func (c *RESTClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
