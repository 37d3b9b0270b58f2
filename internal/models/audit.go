package models

import "time"

// AuditEntry представляет запись журнала аудита.
// Записи append-only: одна запись на каждый вызов защищённой операции.
type AuditEntry struct {
	ID           int       // Идентификатор записи
	UserUID      *string   // Идентификатор пользователя, nil для неаутентифицированных вызовов
	Action       string    // Действие, например login, upload_document, create_query
	ResourceType string    // Тип ресурса: user, document, query или project
	Status       string    // success или error
	Details      string    // Текст ошибки при неуспехе
	CreatedAt    time.Time // Момент записи
}
