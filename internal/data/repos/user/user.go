package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	List(dbc dbctx.Context) ([]*types.User, error)
	GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error)
	GetByID(dbc dbctx.Context, userID uuid.UUID) (*types.User, error)
	GetByLogin(dbc dbctx.Context, username, email string) (*types.User, error)
	FindConflicting(dbc dbctx.Context, username, email string, excludeID uuid.UUID) (*types.User, error)
	Update(dbc dbctx.Context, user *types.User) error
	FullDeleteByIDs(dbc dbctx.Context, userIDs []uuid.UUID) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) List(dbc dbctx.Context) ([]*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}
	var results []*types.User
	if err := t.WithContext(dbc.Ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}
	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) GetByID(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	rows, err := ur.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// GetByLogin returns the first user whose username or email matches.
// Empty identifiers are ignored.
func (ur *userRepo) GetByLogin(dbc dbctx.Context, username, email string) (*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}
	q := t.WithContext(dbc.Ctx)
	switch {
	case username != "" && email != "":
		q = q.Where("username = ? OR email = ?", username, email)
	case username != "":
		q = q.Where("username = ?", username)
	case email != "":
		q = q.Where("email = ?", email)
	default:
		return nil, nil
	}
	var results []*types.User
	if err := q.Limit(1).Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// FindConflicting returns a user other than excludeID already holding username or email.
func (ur *userRepo) FindConflicting(dbc dbctx.Context, username, email string, excludeID uuid.UUID) (*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}
	q := t.WithContext(dbc.Ctx).Where("username = ? OR email = ?", username, email)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var results []*types.User
	if err := q.Limit(1).Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (ur *userRepo) Update(dbc dbctx.Context, user *types.User) error {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}
	return t.WithContext(dbc.Ctx).
		Model(user).
		Select("name", "username", "email", "password", "updated_at").
		Updates(user).Error
}

func (ur *userRepo) FullDeleteByIDs(dbc dbctx.Context, userIDs []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("id IN ?", userIDs).
		Delete(&types.User{}).Error
}
