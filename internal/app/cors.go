package app

import (
	"net/url"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/lightsmap/core/internal/config"
	"github.com/lightsmap/core/internal/middleware"
)

// corsConfig allows every origin in development. Elsewhere a configured
// allow-list is enforced with credentials; without one every origin is
// reflected but credentials are never allowed.
func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", middleware.CacheHeader},
	}
	switch {
	case cfg.IsDev():
		c.AllowOriginFunc = func(string) bool { return true }
		c.AllowCredentials = true
	case len(cfg.AllowedOrigins) == 0:
		c.AllowOriginFunc = func(string) bool { return true }
	default:
		c.AllowOriginFunc = originAllowList(cfg.AllowedOrigins).allows
		c.AllowCredentials = true
	}
	return c
}

// originAllowList holds host patterns: exact "host[:port]", "*.domain"
// for any subdomain, or "host:*" for any port. Entries given as full
// origins are reduced to their host.
type originAllowList []string

func (l originAllowList) allows(origin string) bool {
	host := originHost(origin)
	for _, pattern := range l {
		if hostMatches(originHost(strings.TrimSpace(pattern)), host) {
			return true
		}
	}
	return false
}

// originHost returns the "host[:port]" part of an origin, or the input
// when it does not parse as a URL with a host.
func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

func hostMatches(pattern, host string) bool {
	switch {
	case pattern == "" || host == "":
		return false
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
