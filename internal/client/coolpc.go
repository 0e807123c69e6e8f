package client

import (
	"context"
	"fmt"
	"time"

	"coolpc/catalog/internal/config"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"golang.org/x/text/encoding/traditionalchinese"
	"resty.dev/v3"
)

type CoolPCClient interface {
	FetchPriceList(ctx context.Context) (string, error)
}

type coolPCClient struct {
	rl         ratelimit.Limiter
	config     config.CoolPCConfig
	httpClient *resty.Client
}

func NewCoolPCClient(cfg config.CoolPCConfig) CoolPCClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "zh-TW,zh;q=0.9,en;q=0.5")

	return &coolPCClient{
		rl:         ratelimit.New(cfg.MaxRequestsPerSecond),
		config:     cfg,
		httpClient: client,
	}
}

// FetchPriceList downloads the evaluate.php price list and transcodes it from
// Big5 to UTF-8. Bytes outside Big5 become replacement runes, the page
// carries the occasional vendor symbol that would otherwise kill the decode.
func (c *coolPCClient) FetchPriceList(ctx context.Context) (string, error) {
	c.rl.Take()

	reqCtx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	url := c.config.BaseURL + "/evaluate.php"
	resp, err := c.httpClient.R().
		SetContext(reqCtx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("failed to fetch price list: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	decoded, err := traditionalchinese.Big5.NewDecoder().Bytes([]byte(resp.String()))
	if err != nil {
		return "", fmt.Errorf("failed to decode price list: %w", err)
	}

	log.Debugf("Fetched price list from %s: %d bytes after decode", url, len(decoded))
	return string(decoded), nil
}
