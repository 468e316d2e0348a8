// Package webhook implements the outbound notification adapter. Payloads go
// to the automation platform (Zapier style catch hooks) configured per
// notification kind; delivery is fire-and-forget.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// Notifier posts campaign events to the configured webhook URLs. A missing
// URL disables that notification kind. It implements ports.Notifier.
type Notifier struct {
	prizeWinURL string
	referralURL string
	client      *http.Client
	logger      *slog.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

// Config holds the webhook endpoints and HTTP timeout.
type Config struct {
	PrizeWinURL string
	ReferralURL string
	Timeout     time.Duration
}

// NewNotifier creates a new webhook notifier.
func NewNotifier(cfg Config, logger *slog.Logger) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		prizeWinURL: cfg.PrizeWinURL,
		referralURL: cfg.ReferralURL,
		client:      &http.Client{Timeout: timeout},
		logger:      logger.With("component", "webhook_notifier"),
	}
}

// NotifyPrizeWin posts a prize win event. Failures are logged, never
// surfaced; a dead hook must not break the game flow.
func (n *Notifier) NotifyPrizeWin(ctx context.Context, params ports.PrizeWinNotification) {
	if n.prizeWinURL == "" {
		n.logger.Debug("prize win webhook not configured, skipping")
		return
	}

	payload := map[string]any{
		"event":            "prize_win",
		"name":             params.Name,
		"email":            params.Email,
		"whatsapp":         params.WhatsApp,
		"prizeName":        params.PrizeName,
		"prizeDescription": params.PrizeDescription,
		"prizeIcon":        params.PrizeIcon,
		"spinKind":         string(params.SpinKind),
		"entryId":          params.EntryID,
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	}

	if err := n.post(ctx, n.prizeWinURL, payload); err != nil {
		n.logger.Error("prize win webhook failed", "error", err, "entry_id", params.EntryID)
		return
	}
	n.logger.Info("prize win webhook delivered", "entry_id", params.EntryID, "prize", params.PrizeName)
}

// NotifyReferrals posts a referral batch event.
func (n *Notifier) NotifyReferrals(ctx context.Context, params ports.ReferralNotification) {
	if n.referralURL == "" {
		n.logger.Debug("referral webhook not configured, skipping")
		return
	}

	payload := map[string]any{
		"event":          "referrals_registered",
		"referrerName":   params.ReferrerName,
		"referrerEmail":  params.ReferrerEmail,
		"referrerPhone":  params.ReferrerPhone,
		"totalReferrals": params.TotalReferrals,
		"chancesEarned":  params.ChancesEarned,
		"referredNames":  params.ReferredNames,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	}

	if err := n.post(ctx, n.referralURL, payload); err != nil {
		n.logger.Error("referral webhook failed", "error", err, "referrer", params.ReferrerEmail)
		return
	}
	n.logger.Info("referral webhook delivered", "referrer", params.ReferrerEmail, "saved", params.TotalReferrals)
}

// SendTest posts a canned payload to every configured hook so admins can
// verify wiring. Unlike the event notifications, the outcome is returned.
func (n *Notifier) SendTest(ctx context.Context) error {
	payload := map[string]any{
		"event":     "test",
		"message":   "Webhook connectivity test",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	urls := []string{}
	if n.prizeWinURL != "" {
		urls = append(urls, n.prizeWinURL)
	}
	if n.referralURL != "" && n.referralURL != n.prizeWinURL {
		urls = append(urls, n.referralURL)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no webhook URLs configured")
	}

	for _, url := range urls {
		if err := n.post(ctx, url, payload); err != nil {
			return err
		}
	}
	return nil
}

func (n *Notifier) post(ctx context.Context, url string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
