// File: internal/infra/adapters/mikrotik/client.go
package mikrotik

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hotspot-voucher-platform/internal/config"
	"hotspot-voucher-platform/internal/domain/ports/adapter"
)

var _ adapter.RouterClient = (*Client)(nil)

// Client talks to the RouterOS REST API. The router must have the www-ssl
// service enabled and an API user with hotspot write permission.
type Client struct {
	host     string
	user     string
	password string
	http     *http.Client
}

func NewClient(cfg config.MikrotikConfig) *Client {
	transport := http.DefaultTransport
	if cfg.Insecure {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{
		host:     cfg.Host,
		user:     cfg.User,
		password: cfg.Password,
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

// CreateHotspotUser adds a time-limited hotspot account. RouterOS uses PUT
// for collection inserts.
func (c *Client) CreateHotspotUser(ctx context.Context, acc adapter.HotspotAccount) error {
	body := map[string]string{
		"name":         acc.Username,
		"password":     acc.Password,
		"limit-uptime": acc.LimitUptime,
		"comment":      acc.Comment,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://%s/rest/ip/hotspot/user", c.host)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.user, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mikrotik hotspot user add: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mikrotik hotspot user add: %s: %s", resp.Status, bytes.TrimSpace(msg))
	}
	return nil
}
