package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// dateLayouts форматы строковых дат, которые встречаются у бэкендов.
// Дробная часть секунд при разборе допускается без указания в формате.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// ParseDate разбирает дату поста из JSON.
// Число считается временем Unix в миллисекундах. Пустая строка, null
// и строка неизвестного формата дают нулевое время без ошибки.
// Ошибка возвращается только для значений, которые не могут быть датой
// (объект, массив, логическое значение).
func ParseDate(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, fmt.Errorf("invalid post date: %w", err)
		}
		return parseDateString(s), nil
	case '{', '[', 't', 'f':
		return time.Time{}, fmt.Errorf("invalid post date: %s", raw)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return time.Time{}, fmt.Errorf("invalid post date: %w", err)
	}
	if ms, err := n.Int64(); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	f, err := n.Float64()
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid post date: %w", err)
	}
	return time.UnixMicro(int64(f * 1000)).UTC(), nil
}

func parseDateString(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
