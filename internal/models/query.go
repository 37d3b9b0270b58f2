package models

import "time"

// Query представляет RAG-запрос пользователя по его документам.
// Context хранит идентификаторы документов, попавших в выборку.
type Query struct {
	ID        int       // Идентификатор запроса
	UserUID   string    // Владелец запроса
	Question  string    // Текст вопроса
	Answer    string    // Сгенерированный ответ
	Context   []int     // Идентификаторы документов-источников
	Status    string    // pending или completed
	CreatedAt time.Time // Дата создания
}

// DummyQuery используется для приёма данных из JSON-запроса.
type DummyQuery struct {
	Question string `json:"question" validate:"required,min=3"` // Текст вопроса
}
