package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drivev3 "google.golang.org/api/drive/v3"
)

// consentWait bounds how long the interactive authorization handshake waits
// for the user to approve access in the browser.
const consentWait = 3 * time.Minute

// CredentialProvider owns the OAuth credential lifecycle: load the cached
// token at first use, run the interactive consent flow when no valid token
// exists, persist the result. It requests only the drive.file scope — access
// to files the application itself created — never full account access.
type CredentialProvider struct {
	credentialsPath string
	tokenPath       string
	log             *zap.Logger
}

func NewCredentialProvider(credentialsPath, tokenPath string, log *zap.Logger) *CredentialProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &CredentialProvider{
		credentialsPath: credentialsPath,
		tokenPath:       tokenPath,
		log:             log,
	}
}

// HTTPClient returns an authorized HTTP client, running the consent flow if
// no cached token exists.
func (p *CredentialProvider) HTTPClient(ctx context.Context) (*http.Client, error) {
	data, err := os.ReadFile(p.credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read OAuth credentials: %w", err)
	}

	conf, err := google.ConfigFromJSON(data, drivev3.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("parse OAuth credentials: %w", err)
	}

	tok, err := p.cachedToken()
	if err != nil {
		p.log.Info("no cached Drive token, starting consent flow", zap.Error(err))
		tok, err = p.authorize(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err := p.saveToken(tok); err != nil {
			p.log.Warn("failed to persist Drive token", zap.Error(err))
		}
	}

	return conf.Client(ctx, tok), nil
}

func (p *CredentialProvider) cachedToken() (*oauth2.Token, error) {
	f, err := os.Open(p.tokenPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token file: %w", err)
	}
	if tok.RefreshToken == "" && !tok.Valid() {
		return nil, fmt.Errorf("cached token expired with no refresh token")
	}
	return tok, nil
}

func (p *CredentialProvider) saveToken(tok *oauth2.Token) error {
	f, err := os.OpenFile(p.tokenPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

// authorize runs the one-time interactive consent flow: a loopback listener
// receives the authorization code after the user approves in the browser.
// The wait is bounded; timeout or denial is an explicit failure.
func (p *CredentialProvider) authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("start callback listener: %w", err)
	}
	defer ln.Close()

	conf.RedirectURL = fmt.Sprintf("http://%s/callback", ln.Addr().String())
	state := fmt.Sprintf("pm-%d", time.Now().UnixNano())

	type callbackResult struct {
		code string
		err  error
	}
	results := make(chan callbackResult, 1)

	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("state") != state {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				results <- callbackResult{err: fmt.Errorf("authorization state mismatch")}
				return
			}
			if errMsg := q.Get("error"); errMsg != "" {
				http.Error(w, "authorization denied", http.StatusForbidden)
				results <- callbackResult{err: fmt.Errorf("authorization denied: %s", errMsg)}
				return
			}
			fmt.Fprintln(w, "Authorization complete. You can close this tab.")
			results <- callbackResult{code: q.Get("code")}
		}),
	}
	go srv.Serve(ln)
	defer srv.Close()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	p.log.Info("open this URL in a browser to authorize Drive access", zap.String("url", authURL))
	fmt.Printf("Authorize Google Drive access:\n%s\n", authURL)

	waitCtx, cancel := context.WithTimeout(ctx, consentWait)
	defer cancel()

	select {
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		tok, err := conf.Exchange(ctx, res.code)
		if err != nil {
			return nil, fmt.Errorf("exchange authorization code: %w", err)
		}
		return tok, nil
	case <-waitCtx.Done():
		return nil, fmt.Errorf("authorization not completed within %s", consentWait)
	}
}
