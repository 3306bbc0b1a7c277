// Package telegram provides Telegram Bot notification delivery.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dtorcivia/slotwatch/internal/config"
	"github.com/dtorcivia/slotwatch/internal/notifications"
	"github.com/dtorcivia/slotwatch/internal/util"
)

var _ notifications.Provider = (*Provider)(nil)

// Provider sends messages through the Telegram Bot API.
type Provider struct {
	config  *config.TelegramConfig
	client  *http.Client
	baseURL string
	logger  *util.Logger
}

// NewProvider creates a new Telegram provider.
func NewProvider(cfg *config.TelegramConfig, logger *util.Logger) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = config.DefaultTelegramAPIBase
	}
	if logger == nil {
		logger = util.GetDefaultLogger()
	}
	return &Provider{
		config:  cfg,
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(apiBase, "/") + "/bot" + cfg.BotToken,
		logger:  logger,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "telegram"
}

// Enabled returns whether Telegram is configured.
func (p *Provider) Enabled() bool {
	return p.config.BotToken != "" && p.config.ChatID != ""
}

// telegramResponse represents a Telegram API response.
type telegramResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
}

// messageResult represents the result of sending a message.
type messageResult struct {
	MessageID int64 `json:"message_id"`
}

// BotInfo is the subset of getMe used to confirm credentials.
type BotInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"first_name"`
}

// Send delivers msg to the configured chat with a GET sendMessage call.
func (p *Provider) Send(ctx context.Context, msg *notifications.Message) (string, error) {
	params := url.Values{
		"chat_id": {p.config.ChatID},
		"text":    {msg.Text},
	}
	if msg.ParseMode != "" {
		params.Set("parse_mode", msg.ParseMode)
	}
	if msg.DisableWebPagePreview {
		params.Set("disable_web_page_preview", "true")
	}

	result, err := p.apiCall(ctx, "sendMessage", params)
	if err != nil {
		return "", err
	}

	var sent messageResult
	if err := json.Unmarshal(result, &sent); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return strconv.FormatInt(sent.MessageID, 10), nil
}

// SendTest sends a test notification.
func (p *Provider) SendTest(ctx context.Context) error {
	msg := notifications.NewHTMLMessage(
		"🧪 <b>slotwatch test</b>\nIf you can see this, Telegram is configured correctly.",
	)
	_, err := p.Send(ctx, msg)
	return err
}

// GetBotInfo returns information about the bot.
func (p *Provider) GetBotInfo(ctx context.Context) (*BotInfo, error) {
	result, err := p.apiCall(ctx, "getMe", nil)
	if err != nil {
		return nil, err
	}

	var info BotInfo
	if err := json.Unmarshal(result, &info); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &info, nil
}

// apiCall makes a GET call to the Telegram Bot API.
func (p *Provider) apiCall(ctx context.Context, method string, params url.Values) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/%s", p.baseURL, method)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	p.logger.Debug("Calling Telegram API",
		"method", method,
		"url", util.RedactString(endpoint, p.config.BotToken),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", util.RedactError(err, p.config.BotToken))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", util.RedactError(err, p.config.BotToken))
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	p.logger.Debug("Telegram response", "method", method, "status", resp.StatusCode)

	var tgResp telegramResponse
	if err := json.Unmarshal(respBody, &tgResp); err != nil {
		return nil, fmt.Errorf("telegram returned status %d: %s", resp.StatusCode, util.TruncateString(string(respBody), 200))
	}

	if !tgResp.OK {
		return nil, fmt.Errorf("telegram API error %d: %s", tgResp.ErrorCode, tgResp.Description)
	}

	return tgResp.Result, nil
}
