package network

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Noooste/azuretls-client"
)

// ProxyProvider supplies the outbound proxy URL. An empty string means direct connections.
type ProxyProvider interface {
	GetProxyURL(ctx context.Context) string
}

// StaticProxy is a ProxyProvider backed by a fixed configuration value.
type StaticProxy string

func (p StaticProxy) GetProxyURL(ctx context.Context) string {
	return strings.TrimSpace(string(p))
}

// ClientFactory creates HTTP clients and browser-fingerprint sessions that share proxy settings.
type ClientFactory struct {
	proxyProvider  ProxyProvider
	testHTTPClient *http.Client
}

func NewClientFactory(proxyProvider ProxyProvider) *ClientFactory {
	if proxyProvider == nil {
		proxyProvider = StaticProxy("")
	}
	return &ClientFactory{proxyProvider: proxyProvider}
}

// NewClientFactoryForTest returns a factory whose NewHTTPClient always yields client.
func NewClientFactoryForTest(client *http.Client) *ClientFactory {
	return &ClientFactory{
		proxyProvider:  StaticProxy(""),
		testHTTPClient: client,
	}
}

// NewHTTPClient creates an http.Client honoring the configured proxy.
func (f *ClientFactory) NewHTTPClient(ctx context.Context, timeout time.Duration) *http.Client {
	if f.testHTTPClient != nil {
		return f.testHTTPClient
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: f.NewHTTPTransport(ctx),
	}
}

// NewHTTPTransport creates a transport with the configured HTTP(S) proxy.
// Unparseable or non-HTTP proxy URLs are ignored.
func (f *ClientFactory) NewHTTPTransport(ctx context.Context) *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil

	proxyURL := f.proxyProvider.GetProxyURL(ctx)
	if proxyURL == "" {
		return transport
	}
	parsed, err := url.Parse(proxyURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return transport
	}
	transport.Proxy = http.ProxyURL(parsed)
	return transport
}

// NewAzureSession creates a Chrome-fingerprint session for hosts that reject plain Go clients.
// Callers must Close the session.
func (f *ClientFactory) NewAzureSession(ctx context.Context, timeout time.Duration) *azuretls.Session {
	session := azuretls.NewSession()
	session.Browser = azuretls.Chrome
	session.SetTimeout(timeout)

	if proxyURL := f.proxyProvider.GetProxyURL(ctx); proxyURL != "" {
		_ = session.SetProxy(proxyURL)
	}

	return session
}

// GetProxyURL returns the current proxy URL.
func (f *ClientFactory) GetProxyURL(ctx context.Context) string {
	return f.proxyProvider.GetProxyURL(ctx)
}

// ExtractHost returns the host[:port] of rawURL, or "" when it has none.
func ExtractHost(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return parsed.Host
}
