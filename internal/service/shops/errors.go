package shops

import (
	"fmt"

	"github.com/khan47650/central-kitchen/internal/domain"
)

var (
	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("shops.service: %w", domain.ErrInternal)
)
