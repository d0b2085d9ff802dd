// Package services contains the server-side business logic. This file
// implements IdentityService, which orchestrates registration, login, token
// refresh, password reset, and token-based authentication on top of the
// validator, the hashing primitives, and the repositories.
//
// Every mutating flow runs inside one transaction: either all of its writes
// commit or none do. Validation and conflict checks never short-circuit, so
// a caller sees every defect of a payload in a single response. Raw store
// errors are logged with full detail and surfaced only as the opaque
// database-error resource.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mpetrovs/authcore/internal/common"
	"github.com/mpetrovs/authcore/internal/dbx"
	"github.com/mpetrovs/authcore/internal/logging"
	"github.com/mpetrovs/authcore/internal/server/config"
	"github.com/mpetrovs/authcore/internal/server/hashing"
	"github.com/mpetrovs/authcore/internal/server/models"
	"github.com/mpetrovs/authcore/internal/server/repositories/repomanager"
	"github.com/mpetrovs/authcore/internal/server/resources"
	"github.com/mpetrovs/authcore/internal/server/validation"
)

// errAbort signals WithTx to roll back after the flow has already recorded
// its error resources.
var errAbort = errors.New("flow aborted")

// IdentityService provides the identity workflows:
//   - Register: create a user with credentials and a first token pair
//   - PasswordLogin: verify a credential+password and mint a token pair
//   - Authenticate: resolve (user id, auth token) to a user
//   - RefreshAuthToken: mint a new auth token for an existing row
//   - ResetPassword / ForceResetPassword: replace the stored hash and salt
//   - GetCredentials: list a caller's credentials after authentication
type IdentityService struct {
	db           *sql.DB
	repos        repomanager.RepositoryManager
	logger       logging.Logger
	authTokenTTL time.Duration
}

// NewIdentityService constructs an IdentityService using repositories and
// server config.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *IdentityService {
	return &IdentityService{
		db:           db,
		repos:        m,
		logger:       logger,
		authTokenTTL: cfg.AuthTokenTTL,
	}
}

// flowLogger returns a child logger tagged with the flow name and a fresh
// correlation id, so every line of one flow run can be grepped together.
func (s *IdentityService) flowLogger(flow string) logging.Logger {
	return s.logger.With("flow", flow, "flow_id", uuid.NewString())
}

// Register validates the payload, rejects duplicate or excess credentials,
// and then, in one transaction, creates the user row, one credential row per
// supplied credential, and a first token pair. Any validation or conflict
// error aborts before the first write; the full list of defects is returned.
func (s *IdentityService) Register(ctx context.Context, payload *models.RegisterPayload) (*models.Token, resources.List) {
	log := s.flowLogger("register")

	errs := validation.ValidateRegistration(payload)

	if len(payload.Credentials) > resources.MaxCredentialsPerUser {
		errs = append(errs, resources.ErrTooManyCredentials)
	}

	var token *models.Token
	txErr := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		credRepo := s.repos.Credentials(tx)

		// Pre-check every supplied value so the caller learns about all
		// conflicts at once. The unique constraint in the store remains the
		// source of truth under concurrent registration.
		for _, c := range payload.Credentials {
			_, err := credRepo.GetByValue(ctx, c.Value)
			switch {
			case err == nil:
				errs = append(errs, resources.ErrUserAlreadyExists)
			case errors.Is(err, common.ErrorNotFound):
				// value unclaimed
			default:
				log.Error(ctx, "credential lookup failed", "error", err)
				errs = append(errs, resources.ErrDatabase)
			}
		}

		if len(errs) > 0 {
			return errAbort
		}

		hash, err := hashing.HashPassword(payload.Password)
		if err != nil {
			log.Error(ctx, "password hashing failed", "error", err)
			errs = append(errs, resources.ErrGeneration)
			return errAbort
		}

		user, err := s.repos.Users(tx).Insert(ctx, payload.Name, hash.Hash, hash.Salt)
		if err != nil {
			log.Error(ctx, "user insert failed", "error", err)
			errs = append(errs, resources.ErrDatabase)
			return errAbort
		}

		for _, c := range payload.Credentials {
			if _, err := credRepo.Insert(ctx, user.ID, c.Type, c.Value); err != nil {
				log.Error(ctx, "credential insert failed", "error", err, "credential_type", c.Type)
				errs = append(errs, resources.ErrDatabase)
				return errAbort
			}
		}

		tok, res := s.issueTokenPair(ctx, tx, user.ID, log)
		if res != nil {
			errs = append(errs, res)
			return errAbort
		}
		token = tok

		log.Info(ctx, "user registered", "user_id", user.ID, "credentials", len(payload.Credentials))
		return nil
	})

	if txErr != nil && len(errs) == 0 {
		// begin or commit failed; fn itself reported nothing
		log.Error(ctx, "transaction failed", "error", txErr)
		errs = append(errs, resources.ErrDatabase)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return token, nil
}

// PasswordLogin verifies the supplied credential and password and, on match,
// issues a new token pair for the credential's owner. Existing token rows
// are untouched: a user may hold any number of concurrent sessions.
func (s *IdentityService) PasswordLogin(ctx context.Context, payload *models.LoginPayload) (*models.Token, resources.List) {
	log := s.flowLogger("password_login")

	errs := validation.ValidateLogin(payload)
	if len(errs) > 0 {
		return nil, errs
	}

	var token *models.Token
	txErr := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cred, err := s.repos.Credentials(tx).GetByValue(ctx, payload.Credential.Value)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				errs = append(errs, resources.ErrCredentialDoesNotExist)
				return errAbort
			}
			log.Error(ctx, "credential lookup failed", "error", err)
			errs = append(errs, resources.ErrDatabase)
			return errAbort
		}

		user, err := s.repos.Users(tx).Get(ctx, cred.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				// A credential pointing at a nonexistent user is an internal
				// integrity bug, never a caller mistake. Surface it exactly
				// like a store failure so it is not actionable externally.
				log.Error(ctx, "critical inconsistency: credential references missing user",
					"user_id", cred.UserID, "credential_type", cred.Type)
				errs = append(errs, resources.ErrDatabase)
				return errAbort
			}
			log.Error(ctx, "user lookup failed", "error", err)
			errs = append(errs, resources.ErrDatabase)
			return errAbort
		}

		if !hashing.Verify(payload.Password, user.Salt, user.PasswordHash) {
			errs = append(errs, resources.ErrPasswordIncorrect)
			return errAbort
		}

		tok, res := s.issueTokenPair(ctx, tx, user.ID, log)
		if res != nil {
			errs = append(errs, res)
			return errAbort
		}
		token = tok

		log.Info(ctx, "login succeeded", "user_id", user.ID)
		return nil
	})

	if txErr != nil && len(errs) == 0 {
		log.Error(ctx, "transaction failed", "error", txErr)
		errs = append(errs, resources.ErrDatabase)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return token, nil
}

// Authenticate resolves (userID, authToken) to the owning user. Expiry is
// evaluated here lazily against the token row's last update; nothing sweeps
// expired rows in the background.
func (s *IdentityService) Authenticate(ctx context.Context, userID int64, authToken string) (*models.User, resources.List) {
	log := s.flowLogger("authenticate")

	user, err := s.repos.Users(s.db).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, resources.List{resources.ErrUserDoesNotExist}
		}
		log.Error(ctx, "user lookup failed", "error", err)
		return nil, resources.List{resources.ErrDatabase}
	}

	token, err := s.repos.Tokens(s.db).Find(ctx, userID, authToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, resources.List{resources.ErrIncorrectToken}
		}
		log.Error(ctx, "token lookup failed", "error", err)
		return nil, resources.List{resources.ErrDatabase}
	}

	if time.Since(token.UpdatedAt) > s.authTokenTTL {
		log.Debug(ctx, "expired token", "user_id", userID, "token_id", token.ID)
		return nil, resources.List{resources.ErrExpiredToken}
	}

	return user, nil
}

// RefreshAuthToken mints a new auth token for the row matching (userID,
// refreshToken). The refresh token itself never rotates; when no row
// matches, nothing is issued.
func (s *IdentityService) RefreshAuthToken(ctx context.Context, userID int64, refreshToken string) (*models.Token, resources.List) {
	log := s.flowLogger("refresh")

	if _, err := s.repos.Users(s.db).Get(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, resources.List{resources.ErrUserDoesNotExist}
		}
		log.Error(ctx, "user lookup failed", "error", err)
		return nil, resources.List{resources.ErrDatabase}
	}

	generated, err := hashing.GenerateTokens(ctx, 1)
	if err != nil {
		log.Error(ctx, "token generation failed", "error", err)
		return nil, resources.List{resources.ErrGeneration}
	}
	if len(generated) < 1 {
		log.Error(ctx, "token was not created")
		return nil, resources.List{resources.ErrTokenNotCreated}
	}

	var token *models.Token
	var errs resources.List
	txErr := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		updated, err := s.repos.Tokens(tx).UpdateByRefresh(ctx, userID, refreshToken, generated[0])
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				errs = append(errs, resources.ErrIncorrectToken)
				return errAbort
			}
			log.Error(ctx, "token update failed", "error", err)
			errs = append(errs, resources.ErrDatabase)
			return errAbort
		}
		token = updated
		return nil
	})

	if txErr != nil && len(errs) == 0 {
		log.Error(ctx, "transaction failed", "error", txErr)
		errs = append(errs, resources.ErrDatabase)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return token, nil
}

// ResetPassword replaces the user's hash and salt after re-verifying the old
// password with the same derive-and-compare logic as login.
func (s *IdentityService) ResetPassword(ctx context.Context, userID int64, oldPassword, newPassword string) resources.List {
	log := s.flowLogger("reset_password")
	return s.resetPassword(ctx, log, userID, &oldPassword, newPassword)
}

// ForceResetPassword overwrites the user's hash and salt without any
// password verification. Privileged and internal only: it must never be
// reachable from an unauthenticated or end-user surface.
func (s *IdentityService) ForceResetPassword(ctx context.Context, userID int64, newPassword string) resources.List {
	log := s.flowLogger("force_reset_password")
	return s.resetPassword(ctx, log, userID, nil, newPassword)
}

// resetPassword implements both reset variants; oldPassword == nil skips
// verification entirely.
func (s *IdentityService) resetPassword(ctx context.Context, log logging.Logger, userID int64, oldPassword *string, newPassword string) resources.List {
	var errs resources.List
	txErr := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		userRepo := s.repos.Users(tx)

		user, err := userRepo.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				errs = append(errs, resources.ErrUserDoesNotExist)
				return errAbort
			}
			log.Error(ctx, "user lookup failed", "error", err)
			errs = append(errs, resources.ErrDatabase)
			return errAbort
		}

		if oldPassword != nil && !hashing.Verify(*oldPassword, user.Salt, user.PasswordHash) {
			errs = append(errs, resources.ErrPasswordIncorrect)
			return errAbort
		}

		hash, err := hashing.HashPassword(newPassword)
		if err != nil {
			log.Error(ctx, "password hashing failed", "error", err)
			errs = append(errs, resources.ErrGeneration)
			return errAbort
		}

		user.PasswordHash = hash.Hash
		user.Salt = hash.Salt
		if _, err := userRepo.Update(ctx, user); err != nil {
			log.Error(ctx, "user update failed", "error", err)
			errs = append(errs, resources.ErrDatabase)
			return errAbort
		}

		log.Info(ctx, "password reset", "user_id", userID)
		return nil
	})

	if txErr != nil && len(errs) == 0 {
		log.Error(ctx, "transaction failed", "error", txErr)
		errs = append(errs, resources.ErrDatabase)
	}
	return errs
}

// GetCredentials authenticates the caller and lists every credential row
// bound to the user.
func (s *IdentityService) GetCredentials(ctx context.Context, userID int64, authToken string) ([]*models.Credential, resources.List) {
	log := s.flowLogger("get_credentials")

	user, errs := s.Authenticate(ctx, userID, authToken)
	if len(errs) > 0 {
		return nil, errs
	}

	creds, err := s.repos.Credentials(s.db).ListByUser(ctx, user.ID)
	if err != nil {
		log.Error(ctx, "credential listing failed", "error", err)
		return nil, resources.List{resources.ErrDatabase}
	}

	return creds, nil
}

// issueTokenPair generates a fresh (auth, refresh) pair and inserts a new
// token row for the user inside the caller's transaction. The two draws run
// concurrently; a missing element in the result is reported as
// token-not-created.
func (s *IdentityService) issueTokenPair(ctx context.Context, tx dbx.DBTX, userID int64, log logging.Logger) (*models.Token, *resources.Resource) {
	generated, err := hashing.GenerateTokens(ctx, 2)
	if err != nil {
		log.Error(ctx, "token generation failed", "error", err)
		return nil, resources.ErrGeneration
	}
	if len(generated) < 2 {
		log.Error(ctx, "token pair was not created", "generated", len(generated))
		return nil, resources.ErrTokenNotCreated
	}

	token, err := s.repos.Tokens(tx).Insert(ctx, userID, generated[0], generated[1])
	if err != nil {
		log.Error(ctx, "token insert failed", "error", err)
		return nil, resources.ErrDatabase
	}
	return token, nil
}
