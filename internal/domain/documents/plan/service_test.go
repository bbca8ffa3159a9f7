package plan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/user"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
)

type dealers map[id.ID]user.Role

func (d dealers) RequireDealer(_ context.Context, dealerID id.ID) (*user.User, error) {
	role, ok := d[dealerID]
	if !ok {
		return nil, apperror.NewNotFound("user", dealerID.String())
	}
	if role != user.RoleDealer {
		return nil, apperror.NewValidation("user is not a dealer")
	}
	return &user.User{Role: role}, nil
}

func TestPlanForDealer(t *testing.T) {
	dealer, staff := id.New(), id.New()
	svc := NewService(documents.NewMemoryRepository[*Plan, Status](), documents.Deps{},
		dealers{dealer: user.RoleDealer, staff: user.RoleWarehouse})
	ctx := context.Background()
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	p := New(now, nil, dealer, 3)
	p.AddLine(id.New(), 40, types.MustMoney("99"))
	require.NoError(t, svc.Create(ctx, p))
	assert.Equal(t, 2024, p.Year())
	assert.True(t, p.Lines[0].Price.IsZero(), "plan items carry counts only")
	assert.True(t, p.TotalAmount.IsZero())

	err := svc.Create(ctx, New(now, nil, staff, 3))
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	err = svc.Create(ctx, New(now, nil, id.New(), 3))
	assert.True(t, apperror.IsNotFound(err))
}

func TestPlanPeriodIsAMonth(t *testing.T) {
	dealer := id.New()
	svc := NewService(documents.NewMemoryRepository[*Plan, Status](), documents.Deps{},
		dealers{dealer: user.RoleDealer})

	for _, period := range []int{0, 13} {
		err := svc.Create(context.Background(), New(time.Now(), nil, dealer, period))
		assert.True(t, apperror.HasCode(err, apperror.CodeValidation), period)
	}
}

func TestConfirmedPlanCanBeCancelled(t *testing.T) {
	dealer := id.New()
	svc := NewService(documents.NewMemoryRepository[*Plan, Status](), documents.Deps{},
		dealers{dealer: user.RoleDealer})
	ctx := context.Background()

	p := New(time.Now(), nil, dealer, 1)
	p.Status = StatusConfirmed
	require.NoError(t, svc.Create(ctx, p))
	assert.Equal(t, StatusConfirmed, p.Status)

	_, err := svc.ChangeStatus(ctx, p.ID, "cancelled")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, p.ID))
}
