package commands

import (
	"context"

	"bookswap/internal/domain/user"
	"bookswap/internal/infra"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/pkg/jwt"
	"bookswap/internal/pkg/password"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *queries.UserView
}

// UserReader is the non-transactional read surface the auth flow needs.
type UserReader interface {
	FindByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error)
}

// TokenValidator is what the auth middleware depends on.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, string, error)
}

type AuthCommands interface {
	TokenValidator
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.UserView, error)
}

type authUseCaseImpl struct {
	uow        shared.UnitOfWork
	users      UserReader
	jwtService *jwt.Service
}

func NewAuthUseCase(uow shared.UnitOfWork, users UserReader, jwtService *jwt.Service) AuthCommands {
	return &authUseCaseImpl{
		uow:        uow,
		users:      users,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email, err := user.NewEmail(input.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrUserValidation)
	}
	displayName, err := user.NewDisplayName(input.DisplayName)
	if err != nil {
		return nil, errs.Mark(err, ErrUserValidation)
	}
	pass, err := user.NewPassword(input.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrUserValidation)
	}

	hash, err := password.HashPassword(pass.Value())
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	entity := user.NewUser(email, displayName, hash)
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, txErr := tx.Users().FindByEmail(ctx, email.String())
		if txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		if existing != nil {
			return ErrEmailTaken
		}
		_, txErr = tx.Users().Create(ctx, entity)
		if txErr != nil {
			// The unique index closes the check-then-insert window.
			if infra.IsKind(txErr, infra.KindDuplicateKey) {
				return ErrEmailTaken
			}
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return a.issueToken(ctx, entity.ID())
}

func (a *authUseCaseImpl) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email, err := user.NewEmail(input.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	snap, err := a.users.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap == nil {
		return nil, ErrInvalidCredentials
	}

	if err := password.ComparePassword(snap.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return a.issueToken(ctx, snap.ID)
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.UserView, error) {
	snap, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap == nil {
		return nil, ErrUserNotFound
	}
	return userView(snap), nil
}

func (a *authUseCaseImpl) ValidateToken(token string) (uuid.UUID, string, error) {
	claims, err := a.jwtService.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, claims.DisplayName, nil
}

func (a *authUseCaseImpl) issueToken(ctx context.Context, userID uuid.UUID) (*AuthResult, error) {
	snap, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap == nil {
		return nil, ErrUserNotFound
	}

	token, err := a.jwtService.GenerateToken(snap.ID, snap.DisplayName)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &AuthResult{Token: token, User: userView(snap)}, nil
}

func userView(snap *shared.UserSnapshot) *queries.UserView {
	return &queries.UserView{
		ID:          snap.ID,
		Email:       snap.Email,
		DisplayName: snap.DisplayName,
		CreatedAt:   snap.CreatedAt,
	}
}
