// Package qrcode produces PNG QR codes for quotation documents. Codes come
// from a remote rendering endpoint and fall back to a locally encoded image
// when the endpoint is unreachable.
package qrcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ErrUnavailable is returned when neither the endpoint nor the local encoder
// could produce a code.
var ErrUnavailable = errors.New("qr code unavailable")

const maxImageBytes = 1 << 20

// Config configures a Client.
type Config struct {
	// Endpoint is the rendering URL. The payload is sent in the "data" query
	// parameter; any other parameters (size, margin) are kept. Empty means
	// local encoding only.
	Endpoint   string
	Timeout    time.Duration
	MaxRetries uint64
	CacheTTL   time.Duration
	// Size is the edge length in pixels of locally encoded codes.
	Size int
	// OnFallback is called whenever a code had to be encoded locally.
	OnFallback func(err error)
}

// Client fetches QR codes and caches them.
type Client struct {
	cfg   Config
	http  *http.Client
	cache Cache
	log   *zap.Logger
}

func NewClient(cfg Config, cache Cache, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Size <= 0 {
		cfg.Size = 300
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.Timeout},
		cache: cache,
		log:   log,
	}
}

// Generate returns an image encoding payload. Only images served by the
// endpoint are cached, so a locally encoded fallback never outlives an
// endpoint outage.
func (c *Client) Generate(ctx context.Context, payload string) ([]byte, error) {
	key := cacheKey(payload)
	if c.cache != nil {
		if img, err := c.cache.Get(ctx, key); err == nil && len(img) > 0 {
			return img, nil
		} else if err != nil && !errors.Is(err, ErrCacheMiss) {
			c.log.Warn("qr cache read failed", zap.Error(err))
		}
	}

	img, err := c.fetch(ctx, payload)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Warn("qr endpoint failed, encoding locally", zap.Error(err))
		if c.cfg.OnFallback != nil {
			c.cfg.OnFallback(err)
		}
		if img, err = EncodeLocal(payload, c.cfg.Size); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return img, nil
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, img, c.cfg.CacheTTL); err != nil {
			c.log.Warn("qr cache write failed", zap.Error(err))
		}
	}
	return img, nil
}

func (c *Client) fetch(ctx context.Context, payload string) ([]byte, error) {
	if c.cfg.Endpoint == "" {
		return nil, errors.New("no endpoint configured")
	}
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("parse endpoint: %w", err))
	}
	q := u.Query()
	q.Set("data", payload)
	u.RawQuery = q.Encode()
	target := u.String()

	var img []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("endpoint returned %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("endpoint returned %d", resp.StatusCode)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
		if err != nil {
			return err
		}
		if err := checkImage(body); err != nil {
			return backoff.Permanent(err)
		}
		img = body
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxElapsedTime = 3 * c.cfg.Timeout

	err = backoff.RetryNotify(op,
		backoff.WithContext(backoff.WithMaxRetries(policy, c.cfg.MaxRetries), ctx),
		func(err error, next time.Duration) {
			c.log.Debug("qr endpoint failed, retrying",
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// checkImage rejects endpoint bodies the renderer could not embed: empty or
// oversized bodies and anything that is not a PNG, JPEG or GIF.
func checkImage(body []byte) error {
	switch {
	case len(body) == 0:
		return errors.New("endpoint returned an empty body")
	case len(body) > maxImageBytes:
		return fmt.Errorf("endpoint returned more than %d bytes", maxImageBytes)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(body)); err != nil {
		return fmt.Errorf("endpoint returned an unreadable image: %w", err)
	}
	return nil
}

// EncodeLocal renders payload as a size×size PNG without any network access.
func EncodeLocal(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = 300
	}
	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code, err = barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("scale qr: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
