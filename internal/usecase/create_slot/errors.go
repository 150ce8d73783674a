package create_slot

import (
	"fmt"

	"github.com/khan47650/central-kitchen/internal/domain"
)

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_slot: %w", domain.ErrInternal)
)
