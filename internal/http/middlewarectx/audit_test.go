package middlewarectx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

type RecorderMock struct {
	entries []models.AuditEntry
}

func (m *RecorderMock) Record(_ context.Context, entry models.AuditEntry) {
	m.entries = append(m.entries, entry)
}

func TestAuditMiddleware(t *testing.T) {
	t.Run("success entry on 2xx", func(t *testing.T) {
		rec := &RecorderMock{}
		handler := AuditMiddleware(rec, "upload_document", "document")(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
			}))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserUID, "uid-1"))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.Len(t, rec.entries, 1)
		entry := rec.entries[0]
		assert.Equal(t, "upload_document", entry.Action)
		assert.Equal(t, "document", entry.ResourceType)
		assert.Equal(t, "success", entry.Status)
		require.NotNil(t, entry.UserUID)
		assert.Equal(t, "uid-1", *entry.UserUID)
	})

	t.Run("error entry on 4xx", func(t *testing.T) {
		rec := &RecorderMock{}
		handler := AuditMiddleware(rec, "create_query", "query")(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/queries", nil))

		require.Len(t, rec.entries, 1)
		assert.Equal(t, "error", rec.entries[0].Status)
		assert.Nil(t, rec.entries[0].UserUID)
	})

	t.Run("panic recorded and rethrown", func(t *testing.T) {
		rec := &RecorderMock{}
		handler := AuditMiddleware(rec, "read_document", "document")(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("boom")
			}))

		assert.Panics(t, func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/documents/1", nil))
		})

		require.Len(t, rec.entries, 1)
		assert.Equal(t, "error", rec.entries[0].Status)
		assert.Contains(t, rec.entries[0].Details, "panic")
	})

	t.Run("exactly one entry per request", func(t *testing.T) {
		rec := &RecorderMock{}
		handler := AuditMiddleware(rec, "list_documents", "document")(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

		for i := 0; i < 3; i++ {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil))
		}
		assert.Len(t, rec.entries, 3)
	})
}
