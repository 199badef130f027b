package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"app-vet/internal/ports/auth"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotClinicUser      = errors.New("user does not have the clinic role")
	ErrIssuerDisabled     = errors.New("token issuing disabled")
)

const minPasswordLen = 6

type Service struct {
	repo   Repository
	issuer auth.TokenIssuer
	cost   int
	now    func() time.Time
}

// NewService: issuer puede ser nil (modo dev sin login).
func NewService(repo Repository, issuer auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

type CreateInput struct {
	Username string
	Password string
	Role     auth.Role
	ClinicID string
	Contact  string
}

// Register es el alta pública: siempre crea tutores.
func (s *Service) Register(ctx context.Context, username, password, contact string) (User, error) {
	return s.Create(ctx, CreateInput{
		Username: username,
		Password: password,
		Role:     auth.RoleTutor,
		Contact:  contact,
	})
}

// Create se usa también desde vetctl para provisionar clínicas y admins.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < minPasswordLen {
		return User{}, ErrInvalidInput
	}
	role, ok := auth.ParseRole(string(in.Role))
	if !ok {
		return User{}, ErrInvalidInput
	}
	clinicID := strings.TrimSpace(in.ClinicID)
	if clinicID != "" && role != auth.RoleClinic {
		return User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, err
	}

	now := s.now().UTC()
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		ClinicID:     clinicID,
		Contact:      strings.TrimSpace(in.Contact),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate compara con bcrypt. Usuario inexistente y password incorrecto dan el mismo error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

type Session struct {
	Token     string
	ExpiresIn time.Duration
	User      User
}

func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	if s.issuer == nil {
		return Session{}, ErrIssuerDisabled
	}
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	token, ttl, err := s.issuer.Issue(ClaimsOf(u))
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresIn: ttl, User: u}, nil
}

func ClaimsOf(u User) auth.Claims {
	return auth.Claims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		ClinicID: u.ClinicID,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// ContactOf lo usa el ciclo de vida de animales para avisar al tutor.
func (s *Service) ContactOf(ctx context.Context, userID string) (string, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Contact, nil
}

// ClinicOf devuelve el clinic_id guardado del usuario. found=false si no existe.
func (s *Service) ClinicOf(ctx context.Context, userID string) (string, bool, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return u.ClinicID, true, nil
}

// LinkClinic fija user.clinic_id. Solo para usuarios con rol clinic.
func (s *Service) LinkClinic(ctx context.Context, userID, clinicID string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Role != auth.RoleClinic {
		return ErrNotClinicUser
	}
	if u.ClinicID == clinicID {
		return nil
	}
	u.ClinicID = clinicID
	u.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, u)
}

func (s *Service) UnlinkClinic(ctx context.Context, userID string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if u.ClinicID == "" {
		return nil
	}
	u.ClinicID = ""
	u.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, u)
}
