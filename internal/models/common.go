package models

import "time"

// DateLayout - формат дат в API (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// Identifiable - запись с целочисленным id, который назначает приложение
type Identifiable interface {
	GetID() int
	AssignID(id int)
}

// Identity - целочисленный идентификатор записи. Значение выделяется
// счетчиком из таблицы counters, а не базой данных.
type Identity struct {
	ID int `gorm:"primaryKey;autoIncrement:false" json:"id"`
}

func (i *Identity) GetID() int {
	return i.ID
}

func (i *Identity) AssignID(id int) {
	i.ID = id
}

// Today возвращает текущую дату в формате DateLayout
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
