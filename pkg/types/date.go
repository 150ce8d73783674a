package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDateFormat возвращается, когда строка не соответствует формату YYYY-MM-DD
var ErrInvalidDateFormat = errors.New("types: invalid date format, expected YYYY-MM-DD")

// Date календарная дата без времени и без часового пояса
type Date string

// NewDate создает Date из календарной части t в его собственном часовом поясе
func NewDate(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// NewDateFromString парсит строку YYYY-MM-DD
func NewDateFromString(s string) (Date, error) {
	d := Date(strings.TrimSpace(s))
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// String возвращает строковое представление
func (d Date) String() string {
	return string(d)
}

// IsZero проверяет, что дата не указана
func (d Date) IsZero() bool {
	return d == ""
}

// Validate проверяет формат и существование даты
func (d Date) Validate() error {
	if len(d) != len(dateLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidDateFormat, string(d))
	}
	if _, err := time.Parse(dateLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateFormat, string(d))
	}
	return nil
}

// YMD возвращает год, месяц и день
func (d Date) YMD() (int, time.Month, int, error) {
	parsed, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateFormat, string(d))
	}
	return parsed.Year(), parsed.Month(), parsed.Day(), nil
}

// Scan реализует sql.Scanner. Тип DATE драйвер отдает как time.Time в UTC.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = Date(v.UTC().Format(dateLayout))
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDateFormat, value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := NewDateFromString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return string(d), nil
}
