// ABOUTME: SSH+SOCKS5 dialer for reaching the API through a jumpbox
// ABOUTME: Dialer is created lazily on first connection and reused afterwards

package apiclient

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cloudfoundry/socks5-proxy"
)

// jumpbox is a parsed ssh+socks5 proxy setting.
type jumpbox struct {
	username string
	host     string
	key      []byte
}

// parseAllProxy parses ssh+socks5://user@host:port?private-key=/path/to/key
// and reads the key.
func parseAllProxy(allProxy string) (jumpbox, error) {
	raw := strings.TrimPrefix(allProxy, "ssh+")

	proxyURL, err := url.Parse(raw)
	if err != nil {
		return jumpbox{}, fmt.Errorf("parsing proxy URL: %w", err)
	}
	if proxyURL.Scheme != "socks5" {
		return jumpbox{}, fmt.Errorf("proxy URL must use ssh+socks5://, got %q", sanitizeForLog(proxyURL.Scheme))
	}
	if proxyURL.Host == "" {
		return jumpbox{}, fmt.Errorf("proxy URL is missing the jumpbox host")
	}

	username := ""
	if proxyURL.User != nil {
		username = proxyURL.User.Username()
	}

	keyPath := proxyURL.Query().Get("private-key")
	if keyPath == "" {
		return jumpbox{}, fmt.Errorf("proxy URL missing required 'private-key' query param")
	}
	if !filepath.IsAbs(keyPath) || strings.Contains(keyPath, "..") {
		return jumpbox{}, fmt.Errorf("proxy private-key must be an absolute path, got %q", sanitizeForLog(keyPath))
	}

	key, err := os.ReadFile(keyPath)
	if err != nil {
		return jumpbox{}, fmt.Errorf("reading SSH private key: %w", err)
	}
	return jumpbox{username: username, host: proxyURL.Host, key: key}, nil
}

// ValidateAllProxy reports why allProxy cannot be used to reach the API.
func ValidateAllProxy(allProxy string) error {
	_, err := parseAllProxy(allProxy)
	return err
}

// createSOCKS5DialContextFunc creates a dial function for SSH+SOCKS5 proxy connections.
// Returns nil when allProxy is unusable; configuration loading rejects that case first.
func createSOCKS5DialContextFunc(allProxy string) func(ctx context.Context, network, address string) (net.Conn, error) {
	jb, err := parseAllProxy(allProxy)
	if err != nil {
		slog.Error("Unusable proxy configuration", "error", err)
		return nil
	}

	socks5Proxy := proxy.NewSocks5Proxy(proxy.NewHostKey(), log.Default(), 1*time.Minute)

	var (
		dialer proxy.DialFunc
		mut    sync.RWMutex
	)

	return func(ctx context.Context, network, address string) (net.Conn, error) {
		mut.RLock()
		d := dialer
		mut.RUnlock()
		if d != nil {
			return d(network, address)
		}

		mut.Lock()
		defer mut.Unlock()
		if dialer == nil {
			d, err := socks5Proxy.Dialer(jb.username, string(jb.key), jb.host)
			if err != nil {
				return nil, fmt.Errorf("error creating SOCKS5 dialer: %w", err)
			}
			dialer = d
		}
		return dialer(network, address)
	}
}
