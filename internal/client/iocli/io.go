package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует терминал: вывод, ввод строк, скрытый ввод пароля и уведомления
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	// ReadText читает строку как есть, отбрасывая только перевод строки
	ReadText(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	// Alert показывает пользователю уведомление об ошибке операции
	Alert(message string)
	Write(p []byte) (n int, err error)
}
