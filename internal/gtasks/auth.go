// Package gtasks is the Google Tasks store adapter: OAuth2 installed-app
// auth, a thin wrapper over the tasks/v1 service, and field mapping between
// the API task shape and normalized records.
package gtasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/tasks/v1"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/debug"
)

// authPort is where the local callback server listens during first-run
// authorization. The OAuth client in Google Cloud Console must allow a
// localhost redirect.
const authPort = "8339"

// authTimeout bounds how long we wait for the user to approve in the browser.
const authTimeout = 5 * time.Minute

// AuthConfig locates the two credential files on disk.
type AuthConfig struct {
	// CredentialsFile is the downloaded OAuth client secrets JSON.
	CredentialsFile string
	// TokenFile caches the obtained token (0600).
	TokenFile string
}

// NewHTTPClient returns an authenticated client for the Tasks API. It loads
// a cached token when one exists, refreshing transparently via the token
// source; otherwise it runs the interactive browser flow and caches the
// result.
func NewHTTPClient(ctx context.Context, ac AuthConfig) (*http.Client, error) {
	b, err := os.ReadFile(ac.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading client secrets %s: %w", ac.CredentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(b, tasks.TasksScope)
	if err != nil {
		return nil, fmt.Errorf("parsing client secrets: %w", err)
	}
	cfg.RedirectURL = fmt.Sprintf("http://127.0.0.1:%s/oauth2callback", authPort)

	tok, err := tokenFromFile(ac.TokenFile)
	if err != nil {
		debug.Logf("gtasks: no cached token at %s, starting browser flow", ac.TokenFile)
		tok, err = tokenFromWeb(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(ac.TokenFile, tok); err != nil {
			return nil, err
		}
	}

	// Persist refreshed tokens so the next process start skips the browser.
	src := cfg.TokenSource(ctx, tok)
	return oauth2.NewClient(ctx, &savingSource{src: src, path: ac.TokenFile, last: tok}), nil
}

// savingSource writes the token back to disk whenever the underlying source
// rotates it.
type savingSource struct {
	src  oauth2.TokenSource
	path string
	last *oauth2.Token
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.last == nil || tok.AccessToken != s.last.AccessToken || tok.RefreshToken != s.last.RefreshToken {
		s.last = tok
		if err := saveToken(s.path, tok); err != nil {
			debug.Logf("gtasks: could not cache refreshed token: %v", err)
		}
	}
	return tok, nil
}

// tokenFromWeb runs the authorization-code flow with a local callback server
// and exchanges the code for a token.
func tokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:"+authPort)
	if err != nil {
		return nil, fmt.Errorf("starting callback listener: %w", err)
	}
	defer listener.Close()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	srv := &http.Server{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "authorization code missing", http.StatusBadRequest)
				errCh <- fmt.Errorf("redirect carried no authorization code")
				return
			}
			fmt.Fprintln(w, "Authorized. You can close this tab.")
			codeCh <- code
		}),
	}
	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	defer srv.Shutdown(context.Background())

	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Fprintf(os.Stderr, "Open this URL in your browser to authorize Google Tasks access:\n\n  %s\n\n", authURL)

	select {
	case code := <-codeCh:
		tok, err := cfg.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("exchanging authorization code: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-time.After(authTimeout):
		return nil, fmt.Errorf("authorization timed out after %s", authTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decoding cached token %s: %w", path, err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("caching token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
