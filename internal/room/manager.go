package room

import (
	"sync"
	"time"

	"github.com/umarudotdev/ft-transcendence-sub000/internal/constants"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/logging"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/service"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/storage"
)

// Manager tracks active rooms by join code. Rooms run on their own
// goroutines; the manager only guards the map.
type Manager struct {
	mu    sync.Mutex
	rooms map[string]*Room
	wg    sync.WaitGroup

	repo             storage.Repository
	reporter         service.Reporter
	broadcastDivisor int
	reconnectWindow  time.Duration
}

func NewManager(repo storage.Repository, reporter service.Reporter, broadcastDivisor int, reconnectWindow time.Duration) *Manager {
	return &Manager{
		rooms:            make(map[string]*Room),
		repo:             repo,
		reporter:         reporter,
		broadcastDivisor: broadcastDivisor,
		reconnectWindow:  reconnectWindow,
	}
}

// Create registers and starts a room under the given code. Returns false
// when the code is already taken.
func (m *Manager) Create(code string) (*Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.rooms[code]; exists {
		return nil, false
	}
	r := New(Options{
		Code:             code,
		Repo:             m.repo,
		Reporter:         m.reporter,
		BroadcastDivisor: m.broadcastDivisor,
		ReconnectWindow:  m.reconnectWindow,
		OnEmpty:          m.remove,
	})
	m.rooms[code] = r
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		r.Run()
	}()
	logging.Info("room created", logging.Fields{constants.LogFieldRoomCode: code})
	return r, true
}

// Get returns the room for a code, or nil.
func (m *Manager) Get(code string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[code]
}

func (m *Manager) remove(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
	logging.Info("room removed", logging.Fields{constants.LogFieldRoomCode: code})
}

// Shutdown stops every active room and waits for each to finish its
// teardown, so in-progress matches get their abandonment notification
// before the process exits.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.Unlock()
	for _, r := range rooms {
		r.Stop()
	}
	m.wg.Wait()
}
