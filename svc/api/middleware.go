package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/surveyguy/surveykit/handler"
	"github.com/surveyguy/surveykit/pkg/logger"
)

// RequestIDLogExtractor adds the chi request id to log records.
func RequestIDLogExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := middleware.GetReqID(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}

func (a *API) withProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := a.profile(r)
		if err != nil {
			a.log.WarnContext(r.Context(), "rejected request profile", logger.Error(err))
			_ = errorResponse(err).Render(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), p)))
	})
}

type visitorCtxKey struct{}

// withVisitor makes sure every browser carries a visitor id cookie.
// Currency preferences of anonymous callers are keyed by it.
func (a *API) withVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(a.cfg.VisitorCookie); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     a.cfg.VisitorCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				Secure:   a.cfg.SecureCookies,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitorCtxKey{}, id)))
	})
}

// preferenceKey identifies whose currency preference to use: the user when
// signed in, the visitor cookie otherwise.
func preferenceKey(ctx context.Context) string {
	if p := ProfileFromContext(ctx); p.Authenticated {
		return "user:" + p.UserID.String()
	}
	if id, ok := ctx.Value(visitorCtxKey{}).(string); ok && id != "" {
		return "visitor:" + id
	}
	return ""
}

func (a *API) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		a.log.Log(r.Context(), level, "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Int("bytes", ww.BytesWritten()),
			logger.Duration(time.Since(start)),
		)
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(handler.ErrNotFound).Render(w, r)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(handler.HTTPError{Status: http.StatusMethodNotAllowed, Code: "method_not_allowed"}).Render(w, r)
}
