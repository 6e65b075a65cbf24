// Package inventory owns the set of live shelf products, keyed and ordered by
// product id.
package inventory

import (
	"context"
	"sync"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/google/btree"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/talkincode/supermarkt/internal/goods"
	"github.com/talkincode/supermarkt/internal/simulate"
)

// Event topics published on the bus.
const (
	TopicProductAdded   = "inventory:product_added"
	TopicProductRemoved = "inventory:product_removed"
	TopicDayAdvanced    = "inventory:day_advanced"
)

var (
	ErrDuplicateID = errors.New("a product with this id already exists")
	ErrEmptyID     = errors.New("product id must not be empty")
)

const defaultWorkers = 8

// DayReport summarises one call to AdvanceDay.
type DayReport struct {
	Advanced int
	Expired  []string
	// ToRemove lists products whose category says they should leave the
	// shelf. They stay in the inventory until Sweep.
	ToRemove []string
}

// Result is the simulation of one product.
type Result struct {
	ProductID string
	Snapshots []simulate.Snapshot
}

// Inventory is safe for concurrent use. Products handed in are owned by the
// inventory; products handed out are clones.
type Inventory struct {
	mu    sync.RWMutex
	items *btree.BTreeG[entry]
	bus   EventBus.Bus
}

type entry struct {
	id      string
	product *goods.Product
}

func byID(a, b entry) bool {
	return a.id < b.id
}

// New creates an empty inventory. bus may be nil.
func New(bus EventBus.Bus) *Inventory {
	return &Inventory{
		items: btree.NewG[entry](16, byID),
		bus:   bus,
	}
}

func (inv *Inventory) publish(topic string, args ...interface{}) {
	if inv.bus != nil {
		inv.bus.Publish(topic, args...)
	}
}

// Has reports whether a product with id exists.
func (inv *Inventory) Has(id string) bool {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.items.Has(entry{id: id})
}

// Add stores p. Ids are unique.
func (inv *Inventory) Add(p *goods.Product) error {
	if p.ID() == "" {
		return ErrEmptyID
	}
	inv.mu.Lock()
	if inv.items.Has(entry{id: p.ID()}) {
		inv.mu.Unlock()
		return errors.Wrap(ErrDuplicateID, p.ID())
	}
	inv.items.ReplaceOrInsert(entry{id: p.ID(), product: p})
	inv.mu.Unlock()
	inv.publish(TopicProductAdded, p.ID(), p.Category())
	return nil
}

// AddAll stores every product it can and returns the combined errors of the
// rest.
func (inv *Inventory) AddAll(products []*goods.Product) (added int, err error) {
	for _, p := range products {
		if e := inv.Add(p); e != nil {
			err = multierr.Append(err, e)
			continue
		}
		added++
	}
	return added, err
}

// Get returns a copy of the product with id.
func (inv *Inventory) Get(id string) (*goods.Product, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	e, ok := inv.items.Get(entry{id: id})
	if !ok {
		return nil, false
	}
	return e.product.Clone(), true
}

// Remove deletes the product with id.
func (inv *Inventory) Remove(id string) bool {
	inv.mu.Lock()
	_, ok := inv.items.Delete(entry{id: id})
	inv.mu.Unlock()
	if ok {
		inv.publish(TopicProductRemoved, id)
	}
	return ok
}

func (inv *Inventory) Len() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.items.Len()
}

// List returns copies of all products in id order.
func (inv *Inventory) List() []*goods.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	out := make([]*goods.Product, 0, inv.items.Len())
	inv.items.Ascend(func(e entry) bool {
		out = append(out, e.product.Clone())
		return true
	})
	return out
}

// AdvanceDay applies one daily update to every product.
func (inv *Inventory) AdvanceDay() DayReport {
	var rep DayReport
	inv.mu.Lock()
	inv.items.Ascend(func(e entry) bool {
		p := e.product
		p.AdvanceOneDay()
		rep.Advanced++
		if p.IsExpired() {
			rep.Expired = append(rep.Expired, p.ID())
		}
		if remove, applies := p.ShouldBeRemoved(); applies && remove {
			rep.ToRemove = append(rep.ToRemove, p.ID())
		}
		return true
	})
	inv.mu.Unlock()
	inv.publish(TopicDayAdvanced, rep)
	return rep
}

// Sweep removes every product flagged for removal and returns their ids.
func (inv *Inventory) Sweep() []string {
	var ids []string
	inv.mu.Lock()
	inv.items.Ascend(func(e entry) bool {
		if remove, applies := e.product.ShouldBeRemoved(); applies && remove {
			ids = append(ids, e.id)
		}
		return true
	})
	for _, id := range ids {
		inv.items.Delete(entry{id: id})
	}
	inv.mu.Unlock()
	for _, id := range ids {
		inv.publish(TopicProductRemoved, id)
	}
	return ids
}

// SimulateAll simulates every product for the given number of days on a
// worker pool. The inventory is not modified. Results are in id order.
func (inv *Inventory) SimulateAll(ctx context.Context, days, workers int) ([]Result, error) {
	if days < 0 {
		return nil, simulate.ErrNegativeHorizon
	}
	if workers <= 0 {
		workers = defaultWorkers
	}
	products := inv.List()
	results := make([]Result, len(products))
	if len(products) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "create simulation pool")
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for i, p := range products {
		i, p := i, p
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			snaps, err := simulate.Days(p, days)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, errors.Wrap(err, p.ID()))
				mu.Unlock()
				return
			}
			results[i] = Result{ProductID: p.ID(), Snapshots: snaps}
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			errs = multierr.Append(errs, errors.Wrap(err, "submit simulation"))
			mu.Unlock()
		}
	}
	wg.Wait()
	if errs == nil {
		errs = ctx.Err()
	}
	if errs != nil {
		return nil, errs
	}
	return results, nil
}
