package documents

import (
	"context"
	"sort"
	"sync"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
)

// MemoryRepository is an in-process Repository for tests and tools.
// It applies the same optimistic version check as the SQL repositories.
type MemoryRepository[D Doc[S], S ~string] struct {
	mu    sync.Mutex
	docs  map[id.ID]D
	lines map[id.ID][]Line
}

// NewMemoryRepository creates an empty store.
func NewMemoryRepository[D Doc[S], S ~string]() *MemoryRepository[D, S] {
	return &MemoryRepository[D, S]{
		docs:  make(map[id.ID]D),
		lines: make(map[id.ID][]Line),
	}
}

func (r *MemoryRepository[D, S]) Create(_ context.Context, doc D) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	docID := doc.Core().ID
	if _, ok := r.docs[docID]; ok {
		return apperror.NewDuplicate("document", "id", docID.String())
	}
	r.docs[docID] = doc
	return nil
}

func (r *MemoryRepository[D, S]) get(docID id.ID) (D, error) {
	doc, ok := r.docs[docID]
	if !ok || doc.Core().DeletionMark {
		var zero D
		return zero, apperror.NewNotFound("document", docID.String())
	}
	return doc, nil
}

func (r *MemoryRepository[D, S]) GetByID(_ context.Context, docID id.ID) (D, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(docID)
}

func (r *MemoryRepository[D, S]) GetForUpdate(ctx context.Context, docID id.ID) (D, error) {
	return r.GetByID(ctx, docID)
}

func (r *MemoryRepository[D, S]) Update(_ context.Context, doc D) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	core := doc.Core()
	stored, err := r.get(core.ID)
	if err != nil {
		return err
	}
	if stored.Core().Version != core.Version {
		return apperror.NewConcurrentModification("document", core.ID.String())
	}
	core.Version++
	r.docs[core.ID] = doc
	return nil
}

func (r *MemoryRepository[D, S]) SetDeletionMark(_ context.Context, docID id.ID, marked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[docID]
	if !ok {
		return apperror.NewNotFound("document", docID.String())
	}
	doc.Core().DeletionMark = marked
	doc.Core().Version++
	return nil
}

func (r *MemoryRepository[D, S]) GetLines(_ context.Context, docID id.ID) ([]Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Line(nil), r.lines[docID]...), nil
}

func (r *MemoryRepository[D, S]) SaveLines(_ context.Context, docID id.ID, lines []Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[docID] = append([]Line(nil), lines...)
	return nil
}

// List filters by status only.
func (r *MemoryRepository[D, S]) List(_ context.Context, f ListFilter) (domain.ListResult[D], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	statuses := make(map[string]bool, len(f.Statuses))
	for _, st := range f.Statuses {
		statuses[st] = true
	}

	var items []D
	for _, doc := range r.docs {
		core := doc.Core()
		if core.DeletionMark && !f.IncludeDeleted {
			continue
		}
		if len(statuses) > 0 && !statuses[string(core.Status)] {
			continue
		}
		items = append(items, doc)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Core().CreatedAt.After(items[j].Core().CreatedAt)
	})

	res := domain.ListResult[D]{TotalCount: int64(len(items)), Limit: f.Limit, Offset: f.Offset}
	if f.Offset < len(items) {
		items = items[f.Offset:]
	} else {
		items = nil
	}
	if f.Limit > 0 && len(items) > f.Limit {
		items = items[:f.Limit]
	}
	res.Items = items
	return res, nil
}
