package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ContentType определяет вид содержимого поста
type ContentType string

const (
	// ContentTypeText текстовый пост
	ContentTypeText ContentType = "text"
	// ContentTypeImage пост со ссылкой на загруженный медиафайл
	ContentTypeImage ContentType = "image"
)

// PostID идентификатор поста.
// Бэкенд может отдавать id строкой или числом. Форма запоминается,
// чтобы вернуть id серверу в том же виде, в каком он пришел.
type PostID struct {
	value   string
	numeric bool
}

// NewPostID создает id, который передается строкой
func NewPostID(value string) PostID {
	return PostID{value: value}
}

// NewNumericPostID создает id, который передается числом
func NewNumericPostID(n int64) PostID {
	return PostID{value: strconv.FormatInt(n, 10), numeric: true}
}

// String возвращает id как строку
func (id PostID) String() string {
	return id.value
}

// IsZero сообщает, что id не задан
func (id PostID) IsZero() bool {
	return id.value == ""
}

// IsNumeric сообщает, что id передается числом
func (id PostID) IsNumeric() bool {
	return id.numeric
}

// Matches сравнивает id по значению без учета формы
func (id PostID) Matches(other PostID) bool {
	return id.value == other.value
}

// MarshalJSON возвращает id в исходной форме
func (id PostID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON принимает id в виде строки или числа
func (id *PostID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = PostID{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid post id: %w", err)
		}
		*id = NewPostID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid post id: %w", err)
	}
	*id = PostID{value: n.String(), numeric: true}
	return nil
}

// PostContent содержимое поста: текст или URL медиафайла
type PostContent struct {
	Type    ContentType `json:"type"`
	Content string      `json:"content"`
}

// Post представляет одну запись блога
type Post struct {
	Date    time.Time   `json:"date"`
	ID      PostID      `json:"id"`
	Content PostContent `json:"content"`
}

// UnmarshalJSON разбирает пост. Дата разбирается нестрого (см. ParseDate),
// нераспознанная дата остается нулевой и не мешает загрузке профиля.
func (p *Post) UnmarshalJSON(data []byte) error {
	type plain Post
	aux := struct {
		*plain
		Date json.RawMessage `json:"date"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	date, err := ParseDate(aux.Date)
	if err != nil {
		return err
	}
	p.Date = date
	return nil
}

// Profile представляет профиль авторизованного пользователя со списком постов
type Profile struct {
	Username string `json:"username"`
	Blogs    []Post `json:"blogs"`
}

// Clone возвращает независимую копию профиля
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	clone := &Profile{
		Username: p.Username,
		Blogs:    make([]Post, len(p.Blogs)),
	}
	copy(clone.Blogs, p.Blogs)
	return clone
}

// IndexOf возвращает позицию поста в списке или -1
func (p *Profile) IndexOf(id PostID) int {
	for i := range p.Blogs {
		if p.Blogs[i].ID.Matches(id) {
			return i
		}
	}
	return -1
}
