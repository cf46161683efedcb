package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	pkgerrors "github.com/sockshoplabs/storefront-go/pkg/errors"
	"github.com/sockshoplabs/storefront-go/pkg/logger"
	"github.com/sockshoplabs/storefront-go/pkg/storage"
	"github.com/sockshoplabs/storefront-go/pkg/validators"
	"go.uber.org/multierr"
)

// Manager is the sole owner of the cart contents. All reads and mutations go
// through it; durable storage holds a write-through snapshot, with an empty
// cart represented by key absence rather than an empty array.
type Manager struct {
	mu      sync.Mutex
	items   []LineItem
	loading bool
	store   storage.Store
	logg    *logger.Logger
	subs    []func(Snapshot)
}

// NewManager builds a cart manager over the provided durable store.
func NewManager(store storage.Store, logg *logger.Logger) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("durable store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Manager{
		loading: true,
		store:   store,
		logg:    logg,
	}, nil
}

// RestoreResult reports how the restore attempt resolved. Recovered is true
// when stored data existed but failed validation and was discarded, so the
// caller can tell the shopper their saved cart could not be restored.
type RestoreResult struct {
	Recovered bool
}

// Restore loads the persisted cart once per session. Absent storage starts an
// empty cart; invalid storage is discarded and the slot cleared. Loading is
// reported until the attempt resolves either way.
func (m *Manager) Restore(ctx context.Context) (RestoreResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	raw, err := m.store.Get(ctx, storage.CartKey)
	if errors.Is(err, storage.ErrNotFound) {
		return RestoreResult{}, nil
	}
	if err != nil {
		return RestoreResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read stored cart")
	}

	items, err := decodeStoredItems(raw)
	if err != nil {
		m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "stored cart failed validation, resetting")
		if delErr := m.store.Delete(ctx, storage.CartKey); delErr != nil {
			return RestoreResult{Recovered: true}, pkgerrors.Wrap(pkgerrors.CodeInternal, delErr, "clear invalid cart")
		}
		m.publishLocked()
		return RestoreResult{Recovered: true}, nil
	}

	m.items = items
	m.publishLocked()
	return RestoreResult{}, nil
}

func decodeStoredItems(raw []byte) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "stored cart is not valid json")
	}

	var combined error
	seen := map[int]struct{}{}
	for i, item := range items {
		if err := validators.Struct(item); err != nil {
			combined = multierr.Append(combined, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		if _, dup := seen[item.SockVariantID]; dup {
			combined = multierr.Append(combined, fmt.Errorf("item %d: duplicate variant id %d", i, item.SockVariantID))
		}
		seen[item.SockVariantID] = struct{}{}
	}
	if combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "stored cart failed validation")
	}
	return items, nil
}

// Loading reports whether the initial restore is still pending. Consumers
// must not assume an empty cart before this turns false.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Items returns the current snapshot.
func (m *Manager) Items() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers an observer invoked with a fresh snapshot after every
// committed mutation.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// AddItem inserts a new line or merges into an existing one. Merging adds the
// quantities and keeps every other field from the first add.
func (m *Manager) AddItem(ctx context.Context, item LineItem) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.Quantity < 1 {
		return m.snapshotLocked(), pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 1").
			WithDetails(map[string]any{"sockVariantId": item.SockVariantID, "quantity": item.Quantity})
	}
	if err := validators.Struct(item); err != nil {
		return m.snapshotLocked(), err
	}

	merged := false
	for i := range m.items {
		if m.items[i].SockVariantID == item.SockVariantID {
			m.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		m.items = append(m.items, item)
	}

	return m.commitLocked(ctx)
}

// UpdateItem replaces the line for sockVariantID in place. Quantity zero
// removes the line; a missing line is a logged no-op.
func (m *Manager) UpdateItem(ctx context.Context, sockVariantID int, item LineItem) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.Quantity < 0 {
		return m.snapshotLocked(), pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must not be negative").
			WithDetails(map[string]any{"sockVariantId": sockVariantID, "quantity": item.Quantity})
	}

	index := -1
	for i := range m.items {
		if m.items[i].SockVariantID == sockVariantID {
			index = i
			break
		}
	}
	if index < 0 {
		m.logg.Warn(m.logg.WithField(ctx, "sock_variant_id", sockVariantID), "update for line not in cart")
		return m.snapshotLocked(), nil
	}

	if item.Quantity == 0 {
		m.items = append(m.items[:index], m.items[index+1:]...)
		return m.commitLocked(ctx)
	}

	if err := validators.Struct(item); err != nil {
		return m.snapshotLocked(), err
	}
	m.items[index] = item
	return m.commitLocked(ctx)
}

// RemoveItem is a zero-quantity update; removal and "set quantity to zero"
// share one code path.
func (m *Manager) RemoveItem(ctx context.Context, item LineItem) (Snapshot, error) {
	item.Quantity = 0
	return m.UpdateItem(ctx, item.SockVariantID, item)
}

// Empty clears all items and the storage slot unconditionally.
func (m *Manager) Empty(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	return m.commitLocked(ctx)
}

// commitLocked persists the in-memory state and notifies subscribers. The
// in-memory mutation stands even if persistence fails; the error surfaces so
// the caller can warn.
func (m *Manager) commitLocked(ctx context.Context) (Snapshot, error) {
	snapshot := m.snapshotLocked()

	var err error
	if len(m.items) == 0 {
		err = m.store.Delete(ctx, storage.CartKey)
	} else {
		var raw []byte
		raw, err = json.Marshal(m.items)
		if err == nil {
			err = m.store.Set(ctx, storage.CartKey, raw)
		}
	}
	if err != nil {
		m.logg.Error(ctx, "persist cart", err)
		err = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist cart")
	}

	m.publishLocked()
	return snapshot, err
}

func (m *Manager) snapshotLocked() Snapshot {
	snapshot := make(Snapshot, len(m.items))
	copy(snapshot, m.items)
	return snapshot
}

func (m *Manager) publishLocked() {
	snapshot := m.snapshotLocked()
	for _, fn := range m.subs {
		fn(snapshot)
	}
}
