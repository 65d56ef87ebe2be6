// Package notification implements the telephony gateway over the Twilio REST
// API. Calls and messages are best-effort: the provider may be unconfigured
// (local development) or unreachable, and callers must treat both as failures
// rather than assuming delivery.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fastfix/marketplace-api/internal/core/domain"
)

const defaultBaseURL = "https://api.twilio.com"

// voiceScriptURL is the hosted TwiML document played when a call connects.
const voiceScriptURL = "https://handler.twilio.com/twiml/EH7c2117bf7ce710638bd95c2f026dd7a6"

// Config carries the Twilio credentials and sender number. An empty value in
// any required field leaves the gateway unconfigured.
type Config struct {
	AccountSID    string
	AuthToken     string
	FromNumber    string
	CountryPrefix string
}

// TwilioGateway implements ports.NotificationGateway.
type TwilioGateway struct {
	cfg     Config
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func NewTwilioGateway(cfg Config, log zerolog.Logger) *TwilioGateway {
	if cfg.CountryPrefix == "" {
		cfg.CountryPrefix = "+91"
	}
	return &TwilioGateway{
		cfg:     cfg,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (g *TwilioGateway) WithBaseURL(baseURL string) *TwilioGateway {
	g.baseURL = baseURL
	return g
}

func (g *TwilioGateway) configured() bool {
	return g.cfg.AccountSID != "" && g.cfg.AuthToken != "" && g.cfg.FromNumber != ""
}

// PlaceCall initiates a voice call to phone and returns Twilio's call SID.
func (g *TwilioGateway) PlaceCall(ctx context.Context, accountID, phone string) (string, error) {
	if !g.configured() {
		return "", domain.ErrGatewayUnavailable
	}

	form := url.Values{}
	form.Set("Url", voiceScriptURL)
	form.Set("To", g.cfg.CountryPrefix+phone)
	form.Set("From", g.cfg.FromNumber)

	var result struct {
		SID string `json:"sid"`
	}
	if err := g.post(ctx, "Calls.json", form, &result); err != nil {
		g.log.Warn().Err(err).Str("account_id", accountID).Msg("call initiation failed")
		return "", err
	}

	g.log.Info().Str("account_id", accountID).Str("call_sid", result.SID).Msg("call initiated")
	return result.SID, nil
}

func (g *TwilioGateway) SendMessage(ctx context.Context, accountID, phone, body string) error {
	if !g.configured() {
		return domain.ErrGatewayUnavailable
	}

	form := url.Values{}
	form.Set("To", g.cfg.CountryPrefix+phone)
	form.Set("From", g.cfg.FromNumber)
	form.Set("Body", body)

	if err := g.post(ctx, "Messages.json", form, nil); err != nil {
		g.log.Warn().Err(err).Str("account_id", accountID).Msg("sms send failed")
		return err
	}

	g.log.Info().Str("account_id", accountID).Msg("sms sent")
	return nil
}

func (g *TwilioGateway) post(ctx context.Context, resource string, form url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/%s", g.baseURL, g.cfg.AccountSID, resource)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.cfg.AccountSID, g.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("twilio request: status %d", resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("twilio response: %w", err)
		}
	}
	return nil
}
