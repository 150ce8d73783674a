package memory

import (
	"context"
	"sync"

	"github.com/khan47650/central-kitchen/pkg/types"
)

// dateLocks реестр мьютексов по датам
type dateLocks struct {
	mu    sync.Mutex
	locks map[types.Date]*sync.Mutex
}

func newDateLocks() *dateLocks {
	return &dateLocks{locks: make(map[types.Date]*sync.Mutex)}
}

func (d *dateLocks) get(date types.Date) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()

	m, ok := d.locks[date]
	if !ok {
		m = &sync.Mutex{}
		d.locks[date] = m
	}
	return m
}

// scope блокировки, взятые внутри одной "транзакции"
type scope struct {
	mu   sync.Mutex
	held map[types.Date]*sync.Mutex
}

func (s *scope) lock(locks *dateLocks, date types.Date) {
	s.mu.Lock()
	if _, ok := s.held[date]; ok {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	m := locks.get(date)
	m.Lock()

	s.mu.Lock()
	s.held[date] = m
	s.mu.Unlock()
}

func (s *scope) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for date, m := range s.held {
		m.Unlock()
		delete(s.held, date)
	}
}

type scopeKey struct{}

func scopeFrom(ctx context.Context) *scope {
	sc, _ := ctx.Value(scopeKey{}).(*scope)
	return sc
}

// TxManager выполняет функцию в области блокировок дат.
// Хранилище однопроцессное: сериализация достигается мьютексом на дату,
// который берет LockDate и отпускает завершение функции.
type TxManager struct{}

// Do выполняет fn в области блокировок
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if scopeFrom(ctx) != nil {
		return fn(ctx)
	}

	sc := &scope{held: make(map[types.Date]*sync.Mutex)}
	defer sc.release()

	return fn(context.WithValue(ctx, scopeKey{}, sc))
}

// DoSerializable совпадает с Do: все изменения одной даты уже последовательны
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
