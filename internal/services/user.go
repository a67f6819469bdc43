package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/quizbank-backend/internal/data/repos"
	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/apierr"
	"github.com/yungbote/quizbank-backend/internal/platform/ctxutil"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/validation"
)

const (
	msgUserNotFound   = "User not found"
	msgForbidAccess   = "You do not have permission to access this information."
	msgForbidModify   = "You do not have permission to modify this information."
	msgForbidDelete   = "You do not have permission to delete this information."
	msgUsernameEmpty  = "O nome do usuário não pode ser vazio"
	msgUsernameLength = "O nome do usuário deve ter no mínimo 3 caracteres e no máximo 15 caracteres"
	msgUsernameSpace  = "O nome do usuário não pode conter espaços em branco"
	msgEmailEmpty     = "O e-mail não pode ser vazio"
	msgEmailInvalid   = "E-mail inválido"
	msgPasswordEmpty  = "A senha não pode ser vazia"
	msgPasswordLength = "A senha deve ter no mínimo 8 caracteres e no máximo 12 caracteres"
	msgPasswordWeak   = "A senha deve conter letras maiúsculas, números e caracteres especiais"
)

type UserInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in UserInput) sanitized() UserInput {
	return UserInput{
		Name:     validation.Sanitize(in.Name),
		Username: validation.Sanitize(in.Username),
		Email:    validation.Sanitize(in.Email),
		Password: strings.TrimSpace(in.Password),
	}
}

var userRules = validation.Schema[UserInput]{
	{Field: "username", Value: func(in UserInput) any { return in.Username }, Tag: "required", Message: msgUsernameEmpty},
	{Field: "username", Value: func(in UserInput) any { return in.Username }, Tag: "min=3,max=15", Message: msgUsernameLength},
	{Field: "username", Value: func(in UserInput) any { return in.Username }, Tag: "nowhitespace", Message: msgUsernameSpace},
	{Field: "email", Value: func(in UserInput) any { return in.Email }, Tag: "required", Message: msgEmailEmpty},
	{Field: "email", Value: func(in UserInput) any { return in.Email }, Tag: "email", Message: msgEmailInvalid},
	{Field: "password", Value: func(in UserInput) any { return in.Password }, Tag: "required", Message: msgPasswordEmpty},
	{Field: "password", Value: func(in UserInput) any { return in.Password }, Tag: "min=8,max=12", Message: msgPasswordLength},
	{Field: "password", Value: func(in UserInput) any { return in.Password }, Tag: "strongpassword", Message: msgPasswordWeak},
}

type UserService interface {
	Create(ctx context.Context, in UserInput) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
	Get(ctx context.Context, id string) (*types.User, error)
	Update(ctx context.Context, id string, in UserInput) (*types.User, error)
	Delete(ctx context.Context, id string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) Create(ctx context.Context, in UserInput) (*types.User, error) {
	in = in.sanitized()
	if err := userRules.Validate(in); err != nil {
		return nil, err
	}
	dbc := dbctx.New(ctx)
	if err := us.checkConflict(dbc, in, uuid.Nil); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	user := &types.User{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if _, err := us.userRepo.Create(dbc, []*types.User{user}); err != nil {
		return nil, apierr.FromStore(err, "Exist user with: "+in.Email)
	}
	us.log.Info("User created", "user_id", user.ID)
	return user, nil
}

func (us *userService) List(ctx context.Context) ([]*types.User, error) {
	return us.userRepo.List(dbctx.New(ctx))
}

func (us *userService) Get(ctx context.Context, id string) (*types.User, error) {
	if err := requireOwner(ctx, id, msgForbidAccess); err != nil {
		return nil, err
	}
	return us.load(dbctx.New(ctx), id)
}

func (us *userService) Update(ctx context.Context, id string, in UserInput) (*types.User, error) {
	if err := requireOwner(ctx, id, msgForbidModify); err != nil {
		return nil, err
	}
	in = in.sanitized()
	if err := userRules.Validate(in); err != nil {
		return nil, err
	}
	dbc := dbctx.New(ctx)
	user, err := us.load(dbc, id)
	if err != nil {
		return nil, err
	}
	if err := us.checkConflict(dbc, in, user.ID); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	user.Name = in.Name
	user.Username = in.Username
	user.Email = in.Email
	user.Password = hash
	if err := us.userRepo.Update(dbc, user); err != nil {
		return nil, apierr.FromStore(err, "Exist user with: "+in.Email)
	}
	us.log.Info("User updated", "user_id", user.ID)
	return user, nil
}

func (us *userService) Delete(ctx context.Context, id string) (*types.User, error) {
	if err := requireOwner(ctx, id, msgForbidDelete); err != nil {
		return nil, err
	}
	dbc := dbctx.New(ctx)
	user, err := us.load(dbc, id)
	if err != nil {
		return nil, err
	}
	if err := us.userRepo.FullDeleteByIDs(dbc, []uuid.UUID{user.ID}); err != nil {
		return nil, err
	}
	us.log.Info("User deleted", "user_id", user.ID)
	return user, nil
}

func (us *userService) load(dbc dbctx.Context, id string) (*types.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierr.NotFound(msgUserNotFound)
	}
	user, err := us.userRepo.GetByID(dbc, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound(msgUserNotFound)
	}
	return user, nil
}

func (us *userService) checkConflict(dbc dbctx.Context, in UserInput, self uuid.UUID) error {
	existing, err := us.userRepo.FindConflicting(dbc, in.Username, in.Email, self)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if existing.Email == in.Email {
		return apierr.Conflict("Exist user with: " + in.Email)
	}
	return apierr.Conflict("Exist user with: " + in.Username)
}

// requireOwner compares the raw path id with the authenticated subject.
func requireOwner(ctx context.Context, id, msg string) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.Subject == "" || rd.Subject != id {
		return apierr.Forbidden(msg)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
