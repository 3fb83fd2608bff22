package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds a transport proxy selector. Explicit proxy URLs win
// over the HTTP_PROXY/HTTPS_PROXY environment; hosts listed in noProxy
// (comma separated, suffix matched) always connect directly.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	skip := parseNoProxy(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if hostExcluded(req.URL.Hostname(), skip) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func parseNoProxy(noProxy string) []string {
	var hosts []string
	for _, part := range strings.Split(noProxy, ",") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "."))
		if part != "" {
			hosts = append(hosts, strings.ToLower(part))
		}
	}
	return hosts
}

func hostExcluded(host string, skip []string) bool {
	host = strings.ToLower(host)
	for _, s := range skip {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}
