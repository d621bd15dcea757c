package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

// signupTokenTTL bounds the window between the identity-check step and
// the completed registration.
const signupTokenTTL = 10 * time.Minute

// authService is the concrete implementation of AuthService.
// It handles the two-step signup bridge, credential verification and the
// JWT session token lifecycle, using a UserRepository for persistence and
// HMAC-SHA256 for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// ephemeralTokens signs and verifies the stateless signup bridge tokens.
	ephemeralTokens crypto.EphemeralTokens

	// hashKey is the HMAC secret used when hashing user passwords before
	// storage or comparison. Must match the value used at registration time.
	hashKey string

	// tokenSignKey is the HMAC secret used to sign and verify session JWTs.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, ephemeralTokens crypto.EphemeralTokens, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		ephemeralTokens: ephemeralTokens,
		hashKey:         cfg.PasswordHashKey,
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		logger:          logger,
	}
}

// CheckIdentity mints the signup bridge token for the given mobile number.
// Nothing is persisted; the token itself carries the mobile across the
// untrusted client hop to the registration call.
func (a *authService) CheckIdentity(ctx context.Context, mobile string) (string, error) {
	log := logger.FromContext(ctx)

	if mobile == "" {
		return "", ErrInvalidDataProvided
	}

	token, err := a.ephemeralTokens.Issue(map[string]string{"mobile": mobile}, signupTokenTTL)
	if err != nil {
		log.Err(err).Str("func", "*authService.CheckIdentity").Msg("error issuing signup token")
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// RegisterUser creates a new user account after verifying the signup token
// from the identity-check step.
//
// It validates that Login and Password are non-empty, hashes the password
// with the configured HMAC key, and delegates persistence to the
// UserRepository. The mobile number bound to the token overrides whatever
// the client sent.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrTokenIsExpiredOrInvalid if the signup token does not verify.
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. login
//     already taken — see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, signupToken string, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	payload := a.ephemeralTokens.Verify(signupToken)
	if payload == nil {
		log.Warn().Str("func", "*authService.RegisterUser").Msg("signup token rejected")
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	user.Mobile = payload["mobile"]
	a.hashPassword(&user)

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It validates that both Login and Password are non-empty, hashes the
// supplied password, looks up the account by login, and compares the
// hashed passwords.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found — see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the hashed passwords do not match.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	a.hashPassword(&user)

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if foundUser.PasswordHash != user.PasswordHash {
		log.Warn().
			Int64("id", foundUser.UserID).
			Str("login", foundUser.Login).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed session JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw session JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised
// to ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// hashPassword replaces the plain-text Password in user with its
// HMAC-SHA256 hash computed using the service's hashKey.
func (a *authService) hashPassword(user *models.User) {
	user.PasswordHash = utils.HashString(user.Password, a.hashKey)
	user.Password = ""
}
