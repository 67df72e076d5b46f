// Package slack posts text notifications to a Slack channel via the
// chat.postMessage webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

const defaultAPIURL = "https://slack.com/api/chat.postMessage"

// ErrNoCredentials is returned when the webhook credentials are not
// configured or could not be fetched. Callers treat posting as best-effort
// and log this instead of failing the enclosing operation.
var ErrNoCredentials = errors.New("slack: credentials not configured")

// SecretsAPI is the subset of the Secrets Manager client used to fetch the
// webhook credentials.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Credentials is the shape of the stored Slack secret.
type Credentials struct {
	Token     string `json:"token"`
	ChannelID string `json:"channelId"`
}

// Client posts notifications using credentials fetched once and cached for
// the client's lifetime. A fresh execution environment constructs a fresh
// client, which resets the cache.
type Client struct {
	secrets   SecretsAPI
	secretARN string
	apiURL    string
	http      *http.Client

	mu     sync.Mutex
	cached *Credentials
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for the webhook call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAPIURL overrides the chat.postMessage endpoint (used in tests).
func WithAPIURL(url string) Option {
	return func(c *Client) { c.apiURL = url }
}

// New creates a Client reading credentials from the given secret.
func New(secrets SecretsAPI, secretARN string, opts ...Option) *Client {
	c := &Client{
		secrets:   secrets,
		secretARN: secretARN,
		apiURL:    defaultAPIURL,
		http:      http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) credentials(ctx context.Context) (*Credentials, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil {
		return c.cached, nil
	}
	if c.secretARN == "" {
		return nil, ErrNoCredentials
	}

	result, err := c.secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(c.secretARN),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch slack credentials: %w", err)
	}
	if result.SecretString == nil {
		return nil, ErrNoCredentials
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &creds); err != nil {
		return nil, fmt.Errorf("parse slack credentials: %w", err)
	}
	c.cached = &creds
	return c.cached, nil
}

// Post sends a text notification to the given channel, falling back to the
// channel configured in the secret when channel is empty.
func (c *Client) Post(ctx context.Context, channel, text string) error {
	creds, err := c.credentials(ctx)
	if err != nil {
		return err
	}

	target := channel
	if target == "" {
		target = creds.ChannelID
	}
	if target == "" {
		return ErrNoCredentials
	}

	payload, err := json.Marshal(map[string]string{
		"channel": target,
		"text":    text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post slack notification: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode slack response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("slack API error: %s", result.Error)
	}
	return nil
}
