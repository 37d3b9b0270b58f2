package models

import "time"

// Document представляет метаданные загруженного документа.
// Содержимое хранится вместе с записью, наружу отдается только
// усечённый фрагмент.
type Document struct {
	ID        int       // Идентификатор документа
	UserUID   string    // Владелец документа
	Filename  string    // Исходное имя файла
	StoredKey string    // Ключ, под которым содержимое сохранено
	Content   string    // Извлечённый текст документа
	FileType  string    // Расширение файла без точки
	Size      int64     // Размер файла в байтах
	Status    string    // pending или processed
	CreatedAt time.Time // Дата загрузки
}

// DocumentSummary — усечённое представление документа для списков.
type DocumentSummary struct {
	ID        int       `json:"id"`
	Filename  string    `json:"filename"`
	Status    string    `json:"status"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
