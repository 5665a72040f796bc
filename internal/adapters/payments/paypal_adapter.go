package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/directoriodominicano/backend/internal/domain/providers"
	"github.com/directoriodominicano/backend/pkg/config"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
)

// PayPalAdapter implements the PaymentProvider interface against the
// PayPal Subscriptions REST API
type PayPalAdapter struct {
	cfg        *config.PayPalConfig
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// Ensure PayPalAdapter implements PaymentProvider
var _ providers.PaymentProvider = (*PayPalAdapter)(nil)

// NewPayPalAdapter creates a new PayPal adapter
func NewPayPalAdapter(cfg *config.PayPalConfig) *PayPalAdapter {
	return &PayPalAdapter{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type subscriptionResponse struct {
	ID          string `json:"id"`
	PlanID      string `json:"plan_id"`
	Status      string `json:"status"`
	BillingInfo struct {
		NextBillingTime *time.Time `json:"next_billing_time"`
	} `json:"billing_info"`
}

// GetSubscription fetches the subscription state from PayPal
func (a *PayPalAdapter) GetSubscription(ctx context.Context, subscriptionID string) (*providers.ProviderSubscription, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/billing/subscriptions/%s", a.cfg.BaseURL, url.PathEscape(subscriptionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build subscription request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to reach PayPal", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("subscription %s not found at provider", subscriptionID))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewExternalError(fmt.Sprintf("PayPal returned status %d", resp.StatusCode), nil)
	}

	var sub subscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, apperrors.NewExternalError("failed to decode PayPal response", err)
	}

	return &providers.ProviderSubscription{
		ID:            sub.ID,
		PlanID:        sub.PlanID,
		Status:        sub.Status,
		NextBillingAt: sub.BillingInfo.NextBillingTime,
	}, nil
}

// token returns a cached OAuth access token, refreshing it through the
// client-credentials grant when expired.
func (a *PayPalAdapter) token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.accessToken != "" && time.Now().Before(a.tokenExpiry) {
		return a.accessToken, nil
	}

	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+"/v1/oauth2/token", body)
	if err != nil {
		return "", apperrors.NewInternalError("failed to build token request", err)
	}
	req.SetBasicAuth(a.cfg.ClientID, a.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewExternalError("failed to reach PayPal", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewExternalError(fmt.Sprintf("PayPal token endpoint returned status %d", resp.StatusCode), nil)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", apperrors.NewExternalError("failed to decode token response", err)
	}

	a.accessToken = token.AccessToken
	// Refresh one minute early so in-flight requests never carry a
	// token that expires mid-call.
	a.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)

	return a.accessToken, nil
}
