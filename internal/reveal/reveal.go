// Package reveal performs the side effect of finding a secret: the access
// code is recorded and the companion page is opened in a browser. Every
// step is best effort and runs off the caller's goroutine.
package reveal

import (
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/browser"
)

// Store records issued access codes.
type Store interface {
	SaveAccessCode(code, roomID string) error
}

// Opener opens a URL for the user.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(url string) error

// Open calls f(url).
func (f OpenerFunc) Open(url string) error { return f(url) }

var quietBrowser sync.Once

// BrowserOpener opens URLs in the system browser.
type BrowserOpener struct{}

// NewBrowserOpener returns an opener whose helper processes never write
// to the terminal.
func NewBrowserOpener() BrowserOpener {
	quietBrowser.Do(func() {
		browser.Stdout = io.Discard
		browser.Stderr = io.Discard
	})
	return BrowserOpener{}
}

// Open opens url in the system browser.
func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}

// Revealer runs the reveal side effect.
type Revealer struct {
	store   Store  // Optional
	opener  Opener // Optional
	baseURL string
	logger  *log.Logger
	wg      sync.WaitGroup
}

// New creates a Revealer. A nil store skips recording, and a nil opener or
// empty baseURL skips the browser.
func New(store Store, opener Opener, baseURL string, logger *log.Logger) *Revealer {
	if logger == nil {
		logger = log.Default()
	}
	return &Revealer{
		store:   store,
		opener:  opener,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Reveal records code and opens the companion page in the background.
// It never blocks and never reports failure to the caller.
func (r *Revealer) Reveal(code, room string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.logger.Debug("reveal panicked", "panic", p)
			}
		}()
		r.reveal(code, room)
	}()
}

func (r *Revealer) reveal(code, room string) {
	if r.store != nil {
		if err := r.store.SaveAccessCode(code, room); err != nil {
			r.logger.Debug("cannot record access code", "room", room, "err", err)
		}
	}

	if r.opener == nil || r.baseURL == "" {
		return
	}
	target, err := PageURL(r.baseURL, code)
	if err != nil {
		r.logger.Debug("bad reveal url", "url", r.baseURL, "err", err)
		return
	}
	if err := r.opener.Open(target); err != nil {
		r.logger.Debug("cannot open browser", "url", target, "err", err)
		return
	}
	r.logger.Info("opened secret page", "room", room, "url", target)
}

// Wait blocks until all started reveals finished.
func (r *Revealer) Wait() {
	r.wg.Wait()
}

// PageURL returns base with the access code added as the "code" query
// parameter.
func PageURL(base, code string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("reveal: parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("reveal: url %q is not absolute", base)
	}
	q := u.Query()
	q.Set("code", code)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
