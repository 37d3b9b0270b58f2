package middlewarectx

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

// Recorder описывает интерфейс записи журнала действий.
type Recorder interface {
	Record(ctx context.Context, entry models.AuditEntry)
}

// AuditMiddleware пишет одну запись журнала на каждый вызов обработчика.
// Статус entry определяется кодом ответа, паника фиксируется как error
// и пробрасывается дальше.
func AuditMiddleware(recorder Recorder, action, resourceType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			entry := models.AuditEntry{
				Action:       action,
				ResourceType: resourceType,
			}
			if uid, ok := r.Context().Value(UserUID).(string); ok && uid != "" {
				entry.UserUID = &uid
			}

			defer func() {
				if rec := recover(); rec != nil {
					entry.Status = "error"
					entry.Details = fmt.Sprintf("%s %s: panic: %v", r.Method, r.URL.Path, rec)
					recorder.Record(r.Context(), entry)
					panic(rec)
				}

				if ww.Status() >= http.StatusBadRequest {
					entry.Status = "error"
				} else {
					entry.Status = "success"
				}
				entry.Details = fmt.Sprintf("%s %s: %d", r.Method, r.URL.Path, ww.Status())
				recorder.Record(r.Context(), entry)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
