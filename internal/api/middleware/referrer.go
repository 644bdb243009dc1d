package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// ValidateReferrer отклоняет запросы публичной веб-формы с неизвестных сайтов.
// Сначала проверяется Origin, при его отсутствии - Referer.
// Пустой список allowed отключает проверку.
func ValidateReferrer(allowed []string, logger Logger) mux.MiddlewareFunc {
	allowedHosts := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if host := hostOf(origin); host != "" {
			allowedHosts[host] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowedHosts) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			source := r.Header.Get("Origin")
			if source == "" {
				source = r.Header.Get("Referer")
			}

			if host := hostOf(source); host == "" || !allowedHosts[host] {
				logger.Warn("ValidateReferrer: rejected request from %q to %s", source, r.URL.Path)
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hostOf извлекает хост из origin/referer; значения без схемы трактуются как хост
func hostOf(raw string) string {
	if raw == "" {
		return ""
	}

	if !strings.Contains(raw, "://") {
		return strings.ToLower(strings.Split(raw, "/")[0])
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
