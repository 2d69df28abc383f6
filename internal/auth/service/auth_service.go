package service

import (
	"context"
	"errors"
	"fmt"

	commoncrypto "github.com/seo-pirate/backend/internal/common/crypto"
	commonerrors "github.com/seo-pirate/backend/internal/common/errors"
	"github.com/seo-pirate/backend/internal/common/logger"
	"github.com/seo-pirate/backend/internal/observability/metrics"
	userdomain "github.com/seo-pirate/backend/internal/user/domain"
	userrepo "github.com/seo-pirate/backend/internal/user/repository"
)

type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	tokens      *TokenIssuer
	log         *logger.Logger
}

type AuthServiceDeps struct {
	Repo        userrepo.Repository
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Tokens      *TokenIssuer
	Log         *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	return &AuthService{
		repo:        deps.Repo,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		tokens:      deps.Tokens,
		log:         deps.Log,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
}

type LoginInput struct {
	Username string
	Password string
}

type UpdateUserInput struct {
	ID       userdomain.ID
	Username string
	Password string
}

type UpdateUserResult struct {
	User  userdomain.Public
	Token string
}

// Register creates a user with a freshly hashed password. It never
// issues a token; clients log in afterwards.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.Public, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if input.Email == "" || input.Password == "" || input.Username == "" {
		return userdomain.Public{}, ErrRegisterFieldsMissing
	}

	email := NormalizeEmail(input.Email)
	if err := validateEmail(email); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return userdomain.Public{}, err
	}

	if err := validatePassword(input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return userdomain.Public{}, err
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_email_exists",
		}).Warn("register failed: email already exists")
		return userdomain.Public{}, ErrEmailTaken
	}
	if !errors.Is(err, userrepo.ErrUserNotFound) {
		return userdomain.Public{}, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return userdomain.Public{}, commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return userdomain.Public{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Email:        email,
		Username:     input.Username,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			return userdomain.Public{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return userdomain.Public{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.RegistrationsTotal.Inc()

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "register_success",
	}).Info("register success")

	return user.Public(), nil
}

// Login verifies the password and answers with a signed access token.
// The user record itself is not part of the response.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	if input.Username == "" || input.Password == "" {
		return "", ErrLoginFieldsMissing
	}

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_unknown_user",
			}).Warn("login failed: unknown user")
			return "", ErrUnknownUser
		}
		return "", commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_bad_password",
		}).Warn("login failed: password mismatch")
		return "", ErrUnableToAuthenticate
	}

	token, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return token, nil
}

// UpdateUser rewrites the profile and answers with the updated record
// plus a fresh token reflecting it. A supplied password is hashed
// before it is persisted; plaintext never reaches the store.
func (s *AuthService) UpdateUser(ctx context.Context, input UpdateUserInput) (UpdateUserResult, error) {
	user, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return UpdateUserResult{}, userrepo.ErrUserNotFound
		}
		return UpdateUserResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if input.Username != "" {
		user.Username = input.Username
	}

	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return UpdateUserResult{}, commonerrors.ErrInternalError.WithCause(err)
		}
		user.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(input.ID),
			"action":  "update_user_failed",
		}).Errorf("update user failed: %v", err)
		return UpdateUserResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	token, err := s.tokens.IssueAccessToken(updated)
	if err != nil {
		return UpdateUserResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(updated.ID),
		"action":  "update_user_success",
	}).Info("update user success")

	return UpdateUserResult{User: updated.Public(), Token: token}, nil
}
