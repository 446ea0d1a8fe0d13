package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"recovres/internal/config"
)

var ErrNoDocument = errors.New("no registry document available")

type Document struct {
	Bytes     []byte
	Changed   bool
	Hash      string
	Origin    string
	CachePath string
	FetchedAt time.Time
}

type Fetcher struct {
	cfg    config.Config
	client *Client
	log    *logrus.Logger
	now    func() time.Time
}

func NewFetcher(cfg config.Config, log *logrus.Logger) *Fetcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Fetcher{cfg: cfg, client: NewClient(cfg), log: log, now: time.Now}
}

// Fetch returns the registry document and whether it differs from the cached
// copy. Offline sources always count as changed. A failed download falls back
// to the cached copy and counts as unchanged.
func (f *Fetcher) Fetch(ctx context.Context) (Document, error) {
	origin := strings.TrimSpace(f.cfg.RegistryURL)
	if !f.cfg.RegistryOnline || !isRemote(origin) {
		local := f.cfg.RegistryCachePath
		if origin != "" && !isRemote(origin) {
			local = origin
		}
		return f.readLocal(local)
	}

	target := origin
	if f.cfg.RegistryIndexURL != "" {
		resolved, err := f.client.ResolveDocumentURL(ctx, f.cfg.RegistryIndexURL, remoteFileName(origin))
		if err != nil {
			f.log.WithError(err).WithField("index", f.cfg.RegistryIndexURL).Warn("registry link not resolved, using configured url")
		} else {
			target = resolved
		}
	}

	body, err := f.client.Get(ctx, target)
	if err != nil {
		f.log.WithError(err).WithField("url", target).Warn("registry download failed, falling back to cached copy")
		cached, readErr := os.ReadFile(f.cfg.RegistryCachePath)
		if readErr != nil {
			return Document{}, fmt.Errorf("%w: %v", ErrNoDocument, err)
		}
		return f.document(cached, false, f.cfg.RegistryCachePath), nil
	}

	hash := hashBytes(body)
	cached, readErr := os.ReadFile(f.cfg.RegistryCachePath)
	switch {
	case readErr == nil && hashBytes(cached) == hash:
		f.log.WithField("hash", hash).Info("registry unchanged")
		return f.document(body, false, target), nil
	case errors.Is(readErr, os.ErrNotExist):
		f.log.WithField("path", f.cfg.RegistryCachePath).Info("no saved data")
	case readErr != nil:
		f.log.WithError(readErr).Warn("cached registry unreadable")
	}

	if err := os.MkdirAll(filepath.Dir(f.cfg.RegistryCachePath), 0o755); err != nil {
		return Document{}, err
	}
	if err := os.WriteFile(f.cfg.RegistryCachePath, body, 0o644); err != nil {
		return Document{}, err
	}
	return f.document(body, true, target), nil
}

func (f *Fetcher) readLocal(p string) (Document, error) {
	blob, err := os.ReadFile(p)
	if err != nil {
		f.log.WithError(err).WithField("path", p).Warn("no saved data")
		return Document{}, fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	return f.document(blob, true, p), nil
}

func (f *Fetcher) document(blob []byte, changed bool, origin string) Document {
	return Document{
		Bytes:     blob,
		Changed:   changed,
		Hash:      hashBytes(blob),
		Origin:    origin,
		CachePath: f.cfg.RegistryCachePath,
		FetchedAt: f.now(),
	}
}

func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func isRemote(origin string) bool {
	lower := strings.ToLower(origin)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func remoteFileName(rawURL string) string {
	if idx := strings.IndexAny(rawURL, "?#"); idx >= 0 {
		rawURL = rawURL[:idx]
	}
	return path.Base(rawURL)
}
