package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

// ErrLogoUnavailable is returned when the issuer logo cannot be obtained.
var ErrLogoUnavailable = errors.New("logo unavailable")

// DefaultLogoTimeout bounds how long generation waits for the logo.
const DefaultLogoTimeout = 3 * time.Second

// maxLogoBytes caps how much of a logo response is read.
const maxLogoBytes = 4 << 20

// LogoSource supplies the issuer logo image bytes.
type LogoSource interface {
	Logo(ctx context.Context) ([]byte, error)
}

// FileLogo reads the logo from a filesystem, typically the ./static directory.
type FileLogo struct {
	FS   fs.FS
	Path string
}

func (l FileLogo) Logo(ctx context.Context) ([]byte, error) {
	if l.FS == nil || l.Path == "" {
		return nil, ErrLogoUnavailable
	}
	b, err := fs.ReadFile(l.FS, l.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoUnavailable, err)
	}
	return b, nil
}

// HTTPLogo fetches the logo from a URL.
type HTTPLogo struct {
	URL    string
	Client *http.Client
}

func (l HTTPLogo) Logo(ctx context.Context) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoUnavailable, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrLogoUnavailable, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoUnavailable, err)
	}
	return b, nil
}

// CachedLogo keeps successfully loaded logo bytes for a while so repeated
// downloads do not hit the source every time. Failures are not cached.
type CachedLogo struct {
	source LogoSource
	cache  *cache.Cache
}

const logoCacheKey = "logo"

// NewCachedLogo wraps src with a cache whose entries live for ttl.
func NewCachedLogo(src LogoSource, ttl time.Duration) *CachedLogo {
	return &CachedLogo{
		source: src,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func (l *CachedLogo) Logo(ctx context.Context) ([]byte, error) {
	if b, found := l.cache.Get(logoCacheKey); found {
		return b.([]byte), nil
	}
	b, err := l.source.Logo(ctx)
	if err != nil {
		return nil, err
	}
	l.cache.Set(logoCacheKey, b, cache.DefaultExpiration)
	return b, nil
}

// loadLogo resolves src within timeout. The caller is never blocked past
// the deadline even when the source ignores ctx.
func loadLogo(ctx context.Context, src LogoSource, timeout time.Duration) ([]byte, error) {
	if src == nil {
		return nil, ErrLogoUnavailable
	}
	if timeout <= 0 {
		timeout = DefaultLogoTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		b   []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		b, err := src.Logo(ctx)
		done <- result{b, err}
	}()

	select {
	case r := <-done:
		return r.b, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrLogoUnavailable, ctx.Err())
	}
}
