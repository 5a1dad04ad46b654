package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pollbox/config"
	"pollbox/internal/domain/user"
	"pollbox/internal/repository"
	pollbox_errors "pollbox/pkg/errors"
)

type AuthService struct {
	userRepo   repository.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(cfg.JWTSecret),
		accessTTL:  time.Duration(cfg.JWTExpiryMin) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshExpiry) * 24 * time.Hour,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type RefreshInput struct {
	SessionID    string
	RefreshToken string
}

type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	ExpiresIn    int64    `json:"expires_in"`
	SessionID    string   `json:"session_id"`
	User         UserInfo `json:"user"`
}

type UserInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

type AccessClaims struct {
	UserID    string `json:"sub"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	if err := validateRegister(in); err != nil {
		return AuthResponse{}, err
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, in.Email); err == nil {
		return AuthResponse{}, pollbox_errors.ErrAlreadyExists
	} else if !errors.Is(err, pollbox_errors.ErrNotFound) {
		return AuthResponse{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return AuthResponse{}, err
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: hash,
		DisplayName:  in.Name,
		Role:         user.RoleUser,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return AuthResponse{}, err
	}

	return s.openSession(ctx, *newUser)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	if in.Email == "" || in.Password == "" {
		return AuthResponse{}, pollbox_errors.ErrInvalidInput
	}

	u, err := s.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, pollbox_errors.ErrNotFound) {
			return AuthResponse{}, pollbox_errors.ErrUnauthorized
		}
		return AuthResponse{}, err
	}

	if !u.IsActive {
		return AuthResponse{}, pollbox_errors.ErrForbidden
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return AuthResponse{}, pollbox_errors.ErrUnauthorized
	}

	return s.openSession(ctx, u)
}

// openSession issues a refresh token, stores its hash and returns the
// access/refresh token pair for the user.
func (s *AuthService) openSession(ctx context.Context, u user.User) (AuthResponse, error) {
	refreshToken, err := generateToken(32)
	if err != nil {
		return AuthResponse{}, err
	}

	createdAt := time.Now()
	session := &user.UserSession{
		ID:               uuid.New(),
		UserID:           u.ID,
		RefreshTokenHash: s.hashRefreshToken(refreshToken),
		ExpiresAt:        createdAt.Add(s.refreshTTL),
		CreatedAt:        createdAt,
	}

	if err := s.userRepo.CreateSession(ctx, session); err != nil {
		return AuthResponse{}, err
	}

	accessToken, expiresIn, err := s.newAccessToken(u.ID, session.ID)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		SessionID:    session.ID.String(),
		User:         toUserInfo(u),
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, in RefreshInput) (AuthResponse, error) {
	if in.SessionID == "" || in.RefreshToken == "" {
		return AuthResponse{}, pollbox_errors.ErrInvalidInput
	}

	sessionID, err := uuid.Parse(in.SessionID)
	if err != nil {
		return AuthResponse{}, pollbox_errors.ErrInvalidInput
	}

	session, err := s.userRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return AuthResponse{}, err
	}

	if session.IsRevoked || time.Now().After(session.ExpiresAt) {
		return AuthResponse{}, pollbox_errors.ErrUnauthorized
	}

	if !s.compareRefreshToken(session.RefreshTokenHash, in.RefreshToken) {
		_ = s.userRepo.RevokeSession(ctx, session.ID)
		return AuthResponse{}, pollbox_errors.ErrUnauthorized
	}

	newRefresh, err := generateToken(32)
	if err != nil {
		return AuthResponse{}, err
	}

	session.RefreshTokenHash = s.hashRefreshToken(newRefresh)
	session.ExpiresAt = time.Now().Add(s.refreshTTL)

	if err := s.userRepo.UpdateSession(ctx, session); err != nil {
		return AuthResponse{}, err
	}

	accessToken, expiresIn, err := s.newAccessToken(session.UserID, session.ID)
	if err != nil {
		return AuthResponse{}, err
	}

	u, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    expiresIn,
		SessionID:    session.ID.String(),
		User:         toUserInfo(u),
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pollbox_errors.ErrInvalidInput
	}
	parsedID, err := uuid.Parse(sessionID)
	if err != nil {
		return pollbox_errors.ErrInvalidInput
	}
	return s.userRepo.RevokeSession(ctx, parsedID)
}

func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.RevokeAllUserSessions(ctx, userID)
}

// CurrentUser returns the authenticated user's profile.
func (s *AuthService) CurrentUser(ctx context.Context) (UserInfo, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return UserInfo{}, pollbox_errors.ErrUnauthorized
	}
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return UserInfo{}, err
	}
	return toUserInfo(u), nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, pollbox_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, pollbox_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, pollbox_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, pollbox_errors.ErrUnauthorized
	}

	return *claims, nil
}

func (s *AuthService) ValidateSession(ctx context.Context, sessionID uuid.UUID, userID uuid.UUID) (user.UserSession, error) {
	session, err := s.userRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return user.UserSession{}, err
	}
	if session.UserID != userID {
		return user.UserSession{}, pollbox_errors.ErrUnauthorized
	}
	if session.IsRevoked || time.Now().After(session.ExpiresAt) {
		return user.UserSession{}, pollbox_errors.ErrUnauthorized
	}
	return session, nil
}

func (s *AuthService) newAccessToken(userID, sessionID uuid.UUID) (string, int64, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:    userID.String(),
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.accessTTL.Seconds()), nil
}

func (s *AuthService) hashRefreshToken(token string) string {
	sum := sha256.Sum256(append([]byte(token), s.jwtSecret...))
	return hex.EncodeToString(sum[:])
}

func (s *AuthService) compareRefreshToken(hash, token string) bool {
	expected := s.hashRefreshToken(token)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(expected)) == 1
}

func validateRegister(in RegisterInput) error {
	if in.Name == "" || in.Email == "" {
		return pollbox_errors.ErrInvalidInput
	}
	if !strings.Contains(in.Email, "@") {
		return pollbox_errors.ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return pollbox_errors.ErrInvalidInput
	}
	return nil
}

func toUserInfo(u user.User) UserInfo {
	return UserInfo{
		ID:          u.ID.String(),
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func generateToken(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, pollbox_errors.ErrInvalidInput),
		errors.Is(err, pollbox_errors.ErrEmptyQuestion),
		errors.Is(err, pollbox_errors.ErrQuestionTooLong),
		errors.Is(err, pollbox_errors.ErrTooFewOptions),
		errors.Is(err, pollbox_errors.ErrTooManyOptions),
		errors.Is(err, pollbox_errors.ErrOptionTooLong),
		errors.Is(err, pollbox_errors.ErrInvalidOption):
		return 400
	case errors.Is(err, pollbox_errors.ErrUnauthorized):
		return 401
	case errors.Is(err, pollbox_errors.ErrForbidden):
		return 403
	case errors.Is(err, pollbox_errors.ErrNotFound):
		return 404
	case errors.Is(err, pollbox_errors.ErrAlreadyExists),
		errors.Is(err, pollbox_errors.ErrConflict),
		errors.Is(err, pollbox_errors.ErrAlreadyVoted):
		return 409
	case errors.Is(err, pollbox_errors.ErrMalformedData):
		return 422
	default:
		return 500
	}
}

type ctxKey string

var userIDKey ctxKey = "user_id"
var sessionIDKey ctxKey = "session_id"

func WithUserSessionContext(ctx context.Context, userID, sessionID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, sessionIDKey, sessionID)
	return ctx
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(sessionIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	sessionID, ok := value.(uuid.UUID)
	return sessionID, ok
}
