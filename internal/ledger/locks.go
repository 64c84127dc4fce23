package ledger

import "sync"

// userLocks hands out one mutex per user id. Entries are dropped once no
// goroutine holds or waits for them, so the map is bounded by the number of users
// with an order in flight.
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uint]*userLock)}
}

// lock blocks until the caller owns userID and returns the release func.
func (l *userLocks) lock(userID uint) (unlock func()) {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()

	return func() {
		ul.mu.Unlock()

		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}
