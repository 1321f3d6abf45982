// Package symbols manages the simulated symbol universe.
package symbols

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/synthfeed/pkg/models"
)

// Manager manages all simulated symbols in the system.
type Manager struct {
	symbols map[string]models.SymbolInfo
	logger  *logrus.Entry

	mu sync.RWMutex
}

// NewManager creates a new symbols manager pre-loaded with the built-in
// universe.
func NewManager(logger *logrus.Logger) *Manager {
	m := &Manager{
		symbols: make(map[string]models.SymbolInfo, len(universe)),
		logger:  logger.WithField("component", "symbols-manager"),
	}
	for _, info := range universe {
		m.symbols[info.Symbol] = info
	}
	return m
}

// Get returns metadata for a symbol.
func (m *Manager) Get(symbol string) (models.SymbolInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.symbols[symbol]
	if !ok {
		return models.SymbolInfo{}, fmt.Errorf("%w: %s", models.ErrUnknownSymbol, symbol)
	}
	return info, nil
}

// Has reports whether a symbol exists in the universe.
func (m *Manager) Has(symbol string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.symbols[symbol]
	return ok
}

// List returns all symbols sorted by ticker.
func (m *Manager) List() []models.SymbolInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]models.SymbolInfo, 0, len(m.symbols))
	for _, info := range m.symbols {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Symbol < infos[j].Symbol })
	return infos
}

// Add registers an additional symbol. Existing entries are replaced.
func (m *Manager) Add(info models.SymbolInfo) error {
	if info.Symbol == "" {
		return models.ErrInvalidSymbol
	}
	if info.BasePrice <= 0 {
		return models.ErrInvalidPrice
	}

	m.mu.Lock()
	m.symbols[info.Symbol] = info
	m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"symbol":     info.Symbol,
		"base_price": info.BasePrice,
	}).Debug("Symbol registered")
	return nil
}

// Count returns the number of symbols in the universe.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.symbols)
}
