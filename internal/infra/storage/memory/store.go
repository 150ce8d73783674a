package memory

import (
	"sort"
	"time"
)

// Store однопроцессное хранилище слотов и магазинов.
// Используется драйвером "memory" и в тестах.
type Store struct {
	Slots *SlotRepository
	Shops *ShopRepository
	Tx    *TxManager
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	locks := newDateLocks()
	return &Store{
		Slots: newSlotRepository(locks, time.Now),
		Shops: newShopRepository(time.Now),
		Tx:    &TxManager{},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

