package models

import "time"

// Project представляет консалтинговый проект, по которому
// строятся отчеты о соответствии и стоимости.
type Project struct {
	ID          int       // Идентификатор проекта
	UserUID     string    // Владелец проекта
	Name        string    // Название проекта
	Agency      string    // Заказчик (DoD, GSA, NASA, VA и т.д.)
	Budget      float64   // Бюджет проекта в долларах
	Description string    // Краткое описание
	Status      string    // draft или analysis
	CreatedAt   time.Time // Дата создания
}

// DummyProject используется для приёма данных из JSON-запроса.
type DummyProject struct {
	Name        string  `json:"name" validate:"required,min=3,max=120"`  // Название проекта
	Agency      string  `json:"agency" validate:"required,max=120"`      // Заказчик
	Budget      float64 `json:"budget" validate:"required,gt=0"`         // Бюджет (>0)
	Description string  `json:"description" validate:"omitempty,max=2000"` // Описание
}
