package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderItemNotFound возвращается, если позиция заказа не найдена.
	ErrOrderItemNotFound = errors.New("order item not found")
	// ErrOrderExists возвращается при попытке создать заказ с занятым ID.
	ErrOrderExists = errors.New("order already exists")
	// ErrMailTransport сигнализирует об ошибке почтового транспорта.
	// Заказ к этому моменту уже зафиксирован, ошибка не подавляется.
	ErrMailTransport = errors.New("mail transport failed")
)

// ValidationError содержит замечания по отдельным полям формы оформления заказа.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError создаёт пустую ошибку валидации.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add добавляет замечание к полю.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

// Empty сообщает, что замечаний нет.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "invalid checkout form: " + strings.Join(parts, "; ")
}

// IsNotFound проверяет, является ли ошибка отсутствием заказа или позиции.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrOrderItemNotFound)
}
