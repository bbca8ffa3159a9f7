package catalog_repo

import (
	"context"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/user"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

const userTable = "users"

var _ user.Repository = (*UserRepo)(nil)

// UserRepo implements user.Repository.
type UserRepo struct {
	*BaseCatalogRepo[*user.User]
}

// NewUserRepo creates a new user repository. The password hash is stored
// but can never be used as a filter or sort key.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	base := NewBaseCatalogRepo[*user.User](
		txm,
		userTable,
		postgres.ExtractDBColumns[user.User](),
		[]string{"first_name", "last_name", "phone_number"},
		func() *user.User { return &user.User{} },
	)
	delete(base.filterCols, "password_hash")
	return &UserRepo{BaseCatalogRepo: base}
}

// ExistsByPhone checks whether another live user already uses phone.
func (r *UserRepo) ExistsByPhone(ctx context.Context, phone string, exclude id.ID) (bool, error) {
	return r.existsOther(ctx, "phone_number", phone, exclude)
}
