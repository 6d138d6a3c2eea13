package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/ports/adapter"
)

var _ adapter.UserDirectory = (*HTTPDirectory)(nil)

// HTTPDirectory reads accounts from the hosted identity provider's admin API
// (GET {base}/admin/users/{id} with a service-role bearer key).
type HTTPDirectory struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

func NewHTTPDirectory(baseURL, serviceKey string) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *HTTPDirectory) Lookup(ctx context.Context, userID string) (*adapter.UserInfo, error) {
	url := fmt.Sprintf("%s/admin/users/%s", d.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+d.serviceKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity lookup: %s", resp.Status)
	}

	var out struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			FullName string `json:"full_name"`
		} `json:"user_metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("identity lookup decode: %w", err)
	}
	return &adapter.UserInfo{
		ID:    out.ID,
		Name:  out.UserMetadata.FullName,
		Email: out.Email,
	}, nil
}
