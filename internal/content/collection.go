package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/neoportfolio/internal/common"
	"github.com/dmitrijs2005/neoportfolio/internal/dataapi"
	"github.com/dmitrijs2005/neoportfolio/internal/models"
)

// Collection is the CRUD contract for one entity kind.
type Collection[T models.Entity] struct {
	store    *Store
	name     string
	localKey string
	sortDir  int
	seed     func() []T
}

func (c *Collection[T]) Name() string { return c.name }

// List returns every entity. Remote results are sorted by id (ascending for
// projects, descending for posts); local results keep insertion order.
// A failed remote read, or an unreadable local record, yields the seed.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	b := c.store.Backend(ctx)
	if b.Kind == BackendRemote {
		return c.listRemote(ctx, b), nil
	}
	return c.listLocal(ctx)
}

// Save inserts the entity, or fully replaces the one with the same id.
func (c *Collection[T]) Save(ctx context.Context, item T) error {
	b := c.store.Backend(ctx)
	if b.Kind == BackendRemote {
		return c.saveRemote(ctx, b, item)
	}
	return c.saveLocal(ctx, item)
}

// Delete removes the entity with id. Deleting a missing id is not an error.
func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	b := c.store.Backend(ctx)
	if b.Kind == BackendRemote {
		if err := c.store.remote.DeleteOne(ctx, c.target(b), dataapi.ByID(id)); err != nil {
			return fmt.Errorf("delete %s %d: %w", c.name, id, err)
		}
		return nil
	}

	err := c.store.local.Update(ctx, c.localKey, func(current string, ok bool) (string, error) {
		items := c.decodeLocal(ctx, current, ok)
		kept := make([]T, 0, len(items))
		for _, it := range items {
			if it.EntityID() != id {
				kept = append(kept, it)
			}
		}
		return encode(kept)
	})
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", c.name, id, err)
	}
	return nil
}

func (c *Collection[T]) target(b Backend) dataapi.Target {
	return dataapi.Target{
		URL:        b.Remote.APIURL,
		APIKey:     b.Remote.APIKey,
		Database:   b.Remote.Database,
		DataSource: b.Remote.Cluster,
		Collection: c.name,
	}
}

func (c *Collection[T]) listRemote(ctx context.Context, b Backend) []T {
	docs, err := c.store.remote.Find(ctx, c.target(b), nil, map[string]int{"id": c.sortDir})
	if err != nil {
		return c.fallback(ctx, "remote read failed", err)
	}

	items := make([]T, 0, len(docs))
	for _, d := range docs {
		var it T
		if err := json.Unmarshal(d, &it); err != nil {
			return c.fallback(ctx, "remote document undecodable", err)
		}
		items = append(items, it)
	}
	return items
}

func (c *Collection[T]) saveRemote(ctx context.Context, b Backend, item T) error {
	t := c.target(b)
	id := item.EntityID()

	_, exists, err := c.store.remote.FindOne(ctx, t, dataapi.ByID(id))
	if err != nil {
		return fmt.Errorf("save %s %d: %w", c.name, id, err)
	}

	if exists {
		err = c.store.remote.UpdateOne(ctx, t, dataapi.ByID(id), dataapi.Set(item))
	} else {
		err = c.store.remote.InsertOne(ctx, t, item)
	}
	if err != nil {
		return fmt.Errorf("save %s %d: %w", c.name, id, err)
	}
	return nil
}

func (c *Collection[T]) listLocal(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.local.Get(ctx, c.localKey)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	return c.decodeLocal(ctx, raw, ok), nil
}

func (c *Collection[T]) saveLocal(ctx context.Context, item T) error {
	err := c.store.local.Update(ctx, c.localKey, func(current string, ok bool) (string, error) {
		items := c.decodeLocal(ctx, current, ok)
		replaced := false
		for i := range items {
			if items[i].EntityID() == item.EntityID() {
				items[i] = item
				replaced = true
			}
		}
		if !replaced {
			items = append(items, item)
		}
		return encode(items)
	})
	if err != nil {
		return fmt.Errorf("save %s %d: %w", c.name, item.EntityID(), err)
	}
	return nil
}

// decodeLocal turns the stored record into entities. An absent record is
// the seed; so is a corrupt one, which the next mutation then overwrites.
func (c *Collection[T]) decodeLocal(ctx context.Context, raw string, ok bool) []T {
	if !ok {
		return c.seed()
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return c.fallback(ctx, "local record unreadable", fmt.Errorf("%w: %w", common.ErrCorruptRecord, err))
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func (c *Collection[T]) fallback(ctx context.Context, msg string, err error) []T {
	c.store.log.Warn(ctx, msg+", serving seed", "collection", c.name, "error", err)
	c.store.metrics.SeedFallback(c.name)
	return c.seed()
}

func encode[T any](items []T) (string, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
