package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/lifecycle"
	"github.com/amriddinov-m/panasonic-api/internal/core/tx"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
	"github.com/amriddinov-m/panasonic-api/internal/domain/posting"
	"github.com/amriddinov-m/panasonic-api/pkg/logger"
)

// Locker serializes status changes of one document across processes.
// Obtain fails with a ConflictError when another holder owns key.
type Locker interface {
	Obtain(ctx context.Context, key string) (release func(), err error)
}

// Config wires a Service for one document type.
type Config[D Doc[S], S ~string] struct {
	Entity  string
	Machine *lifecycle.Machine[S]
	Repo    Repository[D]

	TxManager tx.Manager
	Engine    *posting.Engine
	Locker    Locker // optional
	Clock     clock.Clock

	// Deletable lists statuses in which a document may be deleted.
	Deletable []S

	// Prepare checks references and resolves line prices before every write.
	Prepare func(ctx context.Context, doc D) error
}

// Service implements the document lifecycle: create while pending, edit
// while pending, status transitions through the posting engine, soft delete.
type Service[D Doc[S], S ~string] struct {
	cfg Config[D, S]
}

// NewService creates a document service.
func NewService[D Doc[S], S ~string](cfg Config[D, S]) *Service[D, S] {
	if cfg.TxManager == nil {
		cfg.TxManager = tx.Nop{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System{}
	}
	if cfg.Engine == nil {
		cfg.Engine = posting.NewEngine(cfg.TxManager, nil)
	}
	if len(cfg.Deletable) == 0 {
		cfg.Deletable = []S{cfg.Machine.Initial()}
	}
	return &Service[D, S]{cfg: cfg}
}

// Entity returns the document type name.
func (s *Service[D, S]) Entity() string {
	return s.cfg.Entity
}

// Now returns the service clock reading.
func (s *Service[D, S]) Now() time.Time {
	return s.cfg.Clock.Now()
}

// Machine exposes the status machine.
func (s *Service[D, S]) Machine() *lifecycle.Machine[S] {
	return s.cfg.Machine
}

// Transitions describes the status machine for the transitions endpoint.
func (s *Service[D, S]) Transitions() lifecycle.Table {
	return s.cfg.Machine.Describe()
}

// Create stores doc in the initial status. When doc carries another status,
// that status is applied afterwards through the regular transition, in the
// same transaction, so ledger effects fire through a single code path.
func (s *Service[D, S]) Create(ctx context.Context, doc D) error {
	core := doc.Core()
	initial := s.cfg.Machine.Initial()

	target := core.Status
	if target == "" {
		target = initial
	}
	if _, err := s.cfg.Machine.Parse(string(target)); err != nil {
		return err
	}
	core.Status = initial
	core.SetLines(core.Lines)

	if err := s.prepare(ctx, doc); err != nil {
		return err
	}

	err := s.cfg.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.cfg.Repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create %s: %w", s.cfg.Entity, err)
		}
		if err := s.cfg.Repo.SaveLines(ctx, core.ID, core.Lines); err != nil {
			return fmt.Errorf("save %s lines: %w", s.cfg.Entity, err)
		}
		if target == initial {
			return nil
		}
		return s.transition(ctx, doc, target)
	})
	if err != nil {
		return err
	}
	s.cfg.Engine.Invalidate(ctx)

	logger.Info(ctx, "document created",
		"entity", s.cfg.Entity,
		"id", core.ID,
		"status", string(core.Status),
		"lines", len(core.Lines),
	)
	return nil
}

// GetByID returns the document with its lines.
func (s *Service[D, S]) GetByID(ctx context.Context, docID id.ID) (D, error) {
	doc, err := s.cfg.Repo.GetByID(ctx, docID)
	if err != nil {
		return doc, s.normalizeGetErr(err, docID)
	}
	lines, err := s.cfg.Repo.GetLines(ctx, docID)
	if err != nil {
		return doc, fmt.Errorf("get %s lines: %w", s.cfg.Entity, err)
	}
	doc.Core().Lines = lines
	return doc, nil
}

// Update replaces header fields and lines. Only documents in the initial
// status can be edited.
func (s *Service[D, S]) Update(ctx context.Context, doc D) error {
	return s.UpdateWithStatus(ctx, doc, "")
}

// UpdateWithStatus edits a pending document and, when status names another
// status, applies that transition in the same transaction. An empty status
// keeps the current one.
func (s *Service[D, S]) UpdateWithStatus(ctx context.Context, doc D, status string) error {
	core := doc.Core()

	var target S
	if status != "" {
		parsed, err := s.cfg.Machine.Parse(status)
		if err != nil {
			return err
		}
		target = parsed
		if s.cfg.Locker != nil {
			release, err := s.cfg.Locker.Obtain(ctx, s.lockKey(core.ID))
			if err != nil {
				return err
			}
			defer release()
		}
	}

	err := s.cfg.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.cfg.Repo.GetForUpdate(ctx, core.ID)
		if err != nil {
			return s.normalizeGetErr(err, core.ID)
		}
		cur := current.Core()
		if cur.Status != s.cfg.Machine.Initial() {
			return apperror.NewDocumentLocked(s.cfg.Entity, core.ID.String(), string(cur.Status))
		}

		core.Status = cur.Status
		core.CreatedAt = cur.CreatedAt
		core.UserID = cur.UserID
		if core.Version == 0 {
			core.Version = cur.Version
		}
		core.Touch(s.cfg.Clock.Now())
		core.SetLines(core.Lines)

		if err := s.prepare(ctx, doc); err != nil {
			return err
		}
		if err := s.cfg.Repo.Update(ctx, doc); err != nil {
			return err
		}
		if err := s.cfg.Repo.SaveLines(ctx, core.ID, core.Lines); err != nil {
			return fmt.Errorf("save %s lines: %w", s.cfg.Entity, err)
		}
		if target == "" || target == core.Status {
			return nil
		}
		return s.transition(ctx, doc, target)
	})
	if err != nil {
		return err
	}
	s.cfg.Engine.Invalidate(ctx)

	logger.Info(ctx, "document updated",
		"entity", s.cfg.Entity,
		"id", core.ID,
		"status", string(core.Status),
		"version", core.Version,
	)
	return nil
}

// Delete marks the document deleted. Allowed only in the deletable statuses.
func (s *Service[D, S]) Delete(ctx context.Context, docID id.ID) error {
	err := s.cfg.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.cfg.Repo.GetForUpdate(ctx, docID)
		if err != nil {
			return s.normalizeGetErr(err, docID)
		}
		status := doc.Core().Status
		if !s.deletable(status) {
			return apperror.NewDocumentLocked(s.cfg.Entity, docID.String(), string(status)).
				WithDetail("deletable", s.cfg.Deletable)
		}
		return s.cfg.Repo.SetDeletionMark(ctx, docID, true)
	})
	if err != nil {
		return err
	}
	s.cfg.Engine.Invalidate(ctx)

	logger.Info(ctx, "document deleted", "entity", s.cfg.Entity, "id", docID)
	return nil
}

// ChangeStatus moves the document to raw status. Transitions that carry a
// ledger effect post it in the same transaction as the header update; any
// failure leaves the document in its previous status. Report caches are
// invalidated after every committed change, with or without a ledger effect.
func (s *Service[D, S]) ChangeStatus(ctx context.Context, docID id.ID, raw string) (D, error) {
	var zero D
	target, err := s.cfg.Machine.Parse(raw)
	if err != nil {
		return zero, err
	}

	if s.cfg.Locker != nil {
		release, err := s.cfg.Locker.Obtain(ctx, s.lockKey(docID))
		if err != nil {
			return zero, err
		}
		defer release()
	}

	var doc D
	err = s.cfg.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.cfg.Repo.GetForUpdate(ctx, docID)
		if err != nil {
			return s.normalizeGetErr(err, docID)
		}
		lines, err := s.cfg.Repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get %s lines: %w", s.cfg.Entity, err)
		}
		doc.Core().Lines = lines
		return s.transition(ctx, doc, target)
	})
	if err != nil {
		return zero, err
	}
	s.cfg.Engine.Invalidate(ctx)
	return doc, nil
}

// List retrieves documents with filtering.
func (s *Service[D, S]) List(ctx context.Context, filter ListFilter) (domain.ListResult[D], error) {
	filter.Normalize()
	for _, st := range filter.Statuses {
		if _, err := s.cfg.Machine.Parse(st); err != nil {
			return domain.ListResult[D]{}, err
		}
	}
	return s.cfg.Repo.List(ctx, filter)
}

// transition applies one edge to a loaded document. It must run inside a transaction.
func (s *Service[D, S]) transition(ctx context.Context, doc D, target S) error {
	core := doc.Core()
	step, err := s.cfg.Machine.Transition(core.Status, target)
	if err != nil {
		return err
	}
	if step.Noop {
		return nil
	}

	snapshot := *core
	core.Status = target
	core.Recalculate()
	core.Touch(s.cfg.Clock.Now())

	err = s.cfg.Engine.Post(ctx, posting.Request{
		Entity:      s.cfg.Entity,
		DocumentID:  core.ID,
		Effect:      step.Effect,
		WarehouseID: doc.PostingWarehouse(),
		Moves:       core.Moves(),
		UserID:      core.UserID,
	}, func(ctx context.Context) error {
		return s.cfg.Repo.Update(ctx, doc)
	})
	if err != nil {
		*core = snapshot
		return err
	}

	logger.Info(ctx, "document status changed",
		"entity", s.cfg.Entity,
		"id", core.ID,
		"from", string(step.From),
		"to", string(step.To),
		"effect", string(step.Effect),
	)
	return nil
}

func (s *Service[D, S]) prepare(ctx context.Context, doc D) error {
	if err := doc.Validate(ctx); err != nil {
		if _, ok := apperror.AsAppError(err); ok {
			return err
		}
		return apperror.NewValidation(err.Error())
	}
	if s.cfg.Prepare != nil {
		return s.cfg.Prepare(ctx, doc)
	}
	return nil
}

func (s *Service[D, S]) deletable(status S) bool {
	for _, d := range s.cfg.Deletable {
		if d == status {
			return true
		}
	}
	return false
}

func (s *Service[D, S]) lockKey(docID id.ID) string {
	return "doc:" + s.cfg.Entity + ":" + docID.String()
}

func (s *Service[D, S]) normalizeGetErr(err error, docID id.ID) error {
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.cfg.Entity, docID.String())
	}
	return err
}

// Deps are the collaborators every document type is wired with.
type Deps struct {
	TxManager tx.Manager
	Engine    *posting.Engine
	Locker    Locker
	Clock     clock.Clock
	Refs      References
}
