package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/casevault/internal/logger"
	"github.com/osse101/casevault/internal/metrics"
)

// AuthMiddleware validates the API key on every non-public path
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasPathPrefix(r.URL.Path, PublicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)

			// Use constant time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ipActivity counts one client's requests and failed logins in its current window
type ipActivity struct {
	windowStart time.Time
	requests    int
	failedAuth  int
}

// SuspiciousActivityDetector tracks request rates and failed logins per client IP.
// Each IP gets its own fixed window that starts with its first request; idle
// IPs expire from a bounded LRU.
type SuspiciousActivityDetector struct {
	mu     sync.Mutex
	window time.Duration
	limit  int
	now    func() time.Time
	byIP   *expirable.LRU[string, *ipActivity]
}

// DetectorOption configures a SuspiciousActivityDetector
type DetectorOption func(*SuspiciousActivityDetector)

// WithRequestLimit sets how many requests one IP may make per window
func WithRequestLimit(limit int) DetectorOption {
	return func(s *SuspiciousActivityDetector) {
		s.limit = limit
	}
}

// WithWindow sets the counting window
func WithWindow(window time.Duration) DetectorOption {
	return func(s *SuspiciousActivityDetector) {
		s.window = window
	}
}

func NewSuspiciousActivityDetector(opts ...DetectorOption) *SuspiciousActivityDetector {
	s := &SuspiciousActivityDetector{
		window: DetectorWindow,
		limit:  MaxRequestsPerWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.byIP = expirable.NewLRU[string, *ipActivity](MaxTrackedIPs, nil, s.window)
	return s
}

// activity returns the counters of ip, starting a new window when the last one ended.
// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) activity(ip string) *ipActivity {
	now := s.now()
	if a, ok := s.byIP.Get(ip); ok && now.Sub(a.windowStart) < s.window {
		return a
	}
	a := &ipActivity{windowStart: now}
	s.byIP.Add(ip, a)
	return a
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	a := s.activity(ip)
	a.failedAuth++
	count := a.failedAuth
	s.mu.Unlock()

	metrics.SecurityEventsTotal.WithLabelValues(metrics.SecurityEventAuthFailed).Inc()
	if count >= FailedAuthAlertCount {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", count)
	}
}

// RecordRequest counts a request and reports whether ip is still under its limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	a := s.activity(ip)
	a.requests++
	count := a.requests
	s.mu.Unlock()

	if count <= s.limit {
		return true
	}
	metrics.SecurityEventsTotal.WithLabelValues(metrics.SecurityEventRateLimited).Inc()
	if count%HighRateLogEveryNth == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count", count, "window", s.window)
	}
	return false
}

// Counts returns the requests and failed logins of ip in its current window
func (s *SuspiciousActivityDetector) Counts(ip string) (requests, failedAuth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byIP.Get(ip)
	if !ok || s.now().Sub(a.windowStart) >= s.window {
		return 0, 0
	}
	return a.requests, a.failedAuth
}

// SecurityLoggingMiddleware enforces the per-IP request limit. PublicPaths are
// not counted, so health checks and metric scrapes never use up a client's window.
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasPathPrefix(r.URL.Path, PublicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			ip := extractIP(r, trustedProxies)
			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request.
// It only trusts X-Forwarded-For if the request comes from a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if slices.Contains(trustedProxies, remoteIP) {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// rightmost entry is the hop that reached the trusted proxy
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}

// hasPathPrefix reports whether path starts with any of prefixes
func hasPathPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
