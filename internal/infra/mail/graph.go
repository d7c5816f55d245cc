package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	domain "github.com/mohramadan911/watsonx-document-processor/internal/domain/workflows"
)

// GraphMailer sends email through the Microsoft Graph API using the
// client-credentials flow. Tokens are cached until near expiry.
type GraphMailer struct {
	ClientID     string
	ClientSecret string
	TenantID     string
	UserEmail    string

	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

var _ domain.Mailer = (*GraphMailer)(nil)

func NewGraphMailer(clientID, clientSecret, tenantID, userEmail string) *GraphMailer {
	return &GraphMailer{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TenantID:     tenantID,
		UserEmail:    userEmail,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *GraphMailer) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.expiresAt) {
		return g.accessToken, nil
	}

	form := url.Values{
		"client_id":     {g.ClientID},
		"client_secret": {g.ClientSecret},
		"scope":         {"https://graph.microsoft.com/.default"},
		"grant_type":    {"client_credentials"},
	}
	endpoint := fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", g.TenantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to obtain graph token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("graph token request failed: %d - %s", resp.StatusCode, string(body))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}

	g.accessToken = tok.AccessToken
	g.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn-60) * time.Second)
	return g.accessToken, nil
}

type graphRecipient struct {
	EmailAddress struct {
		Address string `json:"address"`
	} `json:"emailAddress"`
}

type graphAttachment struct {
	ODataType    string `json:"@odata.type"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType"`
	ContentBytes string `json:"contentBytes"`
}

// Send posts a sendMail request. Attachment paths that cannot be read are
// skipped rather than failing the whole message.
func (g *GraphMailer) Send(ctx context.Context, to, subject, bodyHTML string, attachments []string) error {
	token, err := g.token(ctx)
	if err != nil {
		return err
	}

	var rcpt graphRecipient
	rcpt.EmailAddress.Address = to

	message := map[string]any{
		"subject": subject,
		"body": map[string]string{
			"contentType": "HTML",
			"content":     bodyHTML,
		},
		"toRecipients": []graphRecipient{rcpt},
	}
	if atts := g.prepareAttachments(attachments); len(atts) > 0 {
		message["attachments"] = atts
	}

	payload, err := json.Marshal(map[string]any{
		"message":         message,
		"saveToSentItems": "true",
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("https://graph.microsoft.com/v1.0/users/%s/sendMail", g.UserEmail)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sendMail failed: %d - %s", resp.StatusCode, string(body))
	}
	return nil
}

func (g *GraphMailer) prepareAttachments(paths []string) []graphAttachment {
	var out []graphAttachment
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		out = append(out, graphAttachment{
			ODataType:    "#microsoft.graph.fileAttachment",
			Name:         filepath.Base(p),
			ContentType:  "application/octet-stream",
			ContentBytes: base64.StdEncoding.EncodeToString(data),
		})
	}
	return out
}
