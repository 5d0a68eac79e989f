package models

import "github.com/go-faster/jx"

type HomeworkStatus string

const (
	StatusApproved  HomeworkStatus = "approved"
	StatusReviewing HomeworkStatus = "reviewing"
	StatusRejected  HomeworkStatus = "rejected"
)

// HomeworkVerdicts сопоставляет статус проверки с текстом для пользователя.
var HomeworkVerdicts = map[HomeworkStatus]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// OptString хранит строку и признак того, что ключ присутствовал в ответе.
type OptString struct {
	Value string
	Set   bool
}

func NewOptString(v string) OptString {
	return OptString{Value: v, Set: true}
}

func (o OptString) Get() (string, bool) {
	return o.Value, o.Set
}

type Homework struct {
	Name   OptString
	Status OptString
}

// StatusResponse хранит записи списка работ в исходном виде.
type StatusResponse struct {
	Homeworks   []jx.Raw
	CurrentDate int64
}
