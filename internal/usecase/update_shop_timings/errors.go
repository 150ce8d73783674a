package update_shop_timings

import (
	"fmt"

	"github.com/khan47650/central-kitchen/internal/domain"
)

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("update_shop_timings: %w", domain.ErrInternal)
)
