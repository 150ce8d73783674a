package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotOverlap возвращается, когда запись нарушает ограничение непересечения интервалов
	ErrSlotOverlap = errors.New("slot.repository: slot overlaps another slot on the same date")

	// ErrInvalidSlot возвращается, когда запись нарушает CHECK-ограничения таблицы
	ErrInvalidSlot = errors.New("slot.repository: invalid slot state")

	// ErrLockDate возвращается, когда не удалось взять блокировку даты
	ErrLockDate = errors.New("slot.repository: failed to lock date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
