// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя платформы.
type User struct {
	UID          string     // Уникальный идентификатор пользователя
	Email        string     // Электронная почта (уникальная)
	Username     string     // Имя пользователя (уникальное)
	PasswordHash string     // Хэш пароля пользователя
	Agency       string     // Ведомство пользователя (опционально)
	Role         string     // Роль: admin, moderator, editor или viewer
	Active       bool       // Флаг активности учётной записи
	CreatedAt    time.Time  // Дата регистрации
	LastLogin    *time.Time // Дата последнего входа, nil если входов не было
}

// UserInfo используется как тело события регистрации,
// публикуемого в очередь уведомлений.
type UserInfo struct {
	Email    string
	Username string
}
