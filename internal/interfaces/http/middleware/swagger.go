package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
)

// SwaggerConfig controls who may read the API document under /swagger
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool     // run the bearer middleware before serving
	AllowedIPs  []string // single addresses or CIDR ranges, empty allows any client
}

// SwaggerProtection guards the API document.
//
// A disabled document answers 404 as if the route did not exist. When
// AllowedIPs is set, other clients get 403. With RequireAuth, authenticate
// runs first and its rejection stands. The checks combine.
func SwaggerProtection(cfg SwaggerConfig, authenticate gin.HandlerFunc) gin.HandlerFunc {
	allowedIPs, allowedNets := parseAllowList(cfg.AllowedIPs)
	restricted := len(allowedIPs) > 0 || len(allowedNets) > 0

	return func(c *gin.Context) {
		if !cfg.Enabled {
			abortWithCode(c, dto.ErrCodeRouteNotFound, "API documentation is not available")
			return
		}

		if restricted && !ipAllowed(clientIP(c), allowedIPs, allowedNets) {
			abortWithCode(c, dto.ErrCodeForbidden, "Access to API documentation is restricted")
			return
		}

		if cfg.RequireAuth && authenticate != nil {
			authenticate(c)
			if c.IsAborted() {
				return
			}
		}

		c.Next()
	}
}

// parseAllowList splits entries into exact addresses and networks; unparsable
// entries are dropped
func parseAllowList(entries []string) ([]net.IP, []*net.IPNet) {
	var ips []net.IP
	var nets []*net.IPNet
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				nets = append(nets, network)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			ips = append(ips, ip)
		}
	}
	return ips, nets
}

// clientIP prefers gin's proxy-aware address and falls back to RemoteAddr
func clientIP(c *gin.Context) net.IP {
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return net.ParseIP(host)
}

func ipAllowed(ip net.IP, ips []net.IP, nets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, allowed := range ips {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, network := range nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
