// Package services contains server-side business logic: accounts and
// credentials, appointments with their QR codes, and the hospital catalog.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/dmitrijs2005/medapp/internal/cryptox"
	"github.com/dmitrijs2005/medapp/internal/server/auth"
	"github.com/dmitrijs2005/medapp/internal/server/config"
	"github.com/dmitrijs2005/medapp/internal/server/models"
	"github.com/dmitrijs2005/medapp/internal/server/repositories/repomanager"
)

// SignupInput is the data needed to register a user.
type SignupInput struct {
	Name     string
	Lastname string
	Email    string
	CURP     string
	RFC      string
	Password string
}

// AuthResult is a user together with a freshly issued bearer token.
type AuthResult struct {
	User  *models.User
	Token string
}

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	defaultRoleID         int64
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		defaultRoleID:         cfg.DefaultRoleID,
	}
}

// Signup registers a new user and logs them in. It fails with
// common.ErrorAlreadyExists when the email, CURP or RFC is already in use;
// in that case nothing is written.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	taken, err := repo.IdentityTaken(ctx, in.Email, in.CURP, in.RFC)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check: %v", common.ErrorInternal, err)
	}
	if taken {
		return nil, common.ErrorAlreadyExists
	}

	salt, digest, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	user, err := repo.Create(ctx, &models.User{
		Name:         in.Name,
		Lastname:     in.Lastname,
		Email:        in.Email,
		CURP:         in.CURP,
		RFC:          in.RFC,
		PasswordHash: digest,
		Salt:         salt,
		RoleID:       s.defaultRoleID,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create user: %v", common.ErrorInternal, err)
	}

	return s.issue(user)
}

// Login checks email and password. Unknown email and wrong password both
// yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: find user: %v", common.ErrorInternal, err)
	}

	if !cryptox.VerifyPassword(password, user.Salt, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token: %v", common.ErrorInternal, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// GetProfile returns the user with the given id or common.ErrorNotFound.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: find user: %v", common.ErrorInternal, err)
	}
	return user, nil
}

// EditProfile overwrites name, lastname, email, CURP and RFC of user.ID.
// Editing a user that does not exist succeeds without effect.
func (s *UserService) EditProfile(ctx context.Context, user *models.User) error {
	err := s.repomanager.Users(s.db).Update(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return err
		}
		return fmt.Errorf("%w: update user: %v", common.ErrorInternal, err)
	}
	return nil
}
