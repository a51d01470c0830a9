package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/evilazio/barbershop-booking/internal/domain"
	userRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/user"
	"github.com/evilazio/barbershop-booking/internal/service/users/models"
)

// Service учетные записи: регистрация, вход, профиль
type Service struct {
	userRepo      UserRepository
	hasher        PasswordHasher
	calendar      Calendar
	adminUsername string
	logger        Logger
}

// NewService создает сервис пользователей.
// adminUsername зарезервирован и недоступен для регистрации
func NewService(
	userRepo UserRepository,
	hasher PasswordHasher,
	calendar Calendar,
	adminUsername string,
	logger Logger,
) *Service {
	return &Service{
		userRepo:      userRepo,
		hasher:        hasher,
		calendar:      calendar,
		adminUsername: strings.ToLower(strings.TrimSpace(adminUsername)),
		logger:        logger,
	}
}

// Register создает пользователя с ролью user и без плана
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	displayName := strings.TrimSpace(req.DisplayName)
	phone := strings.TrimSpace(req.Phone)

	if username == "" || displayName == "" || phone == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(req.Password) < domain.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if utf8.RuneCountInString(username) > domain.MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}
	if utf8.RuneCountInString(phone) > domain.MaxPhoneLength {
		return nil, ErrPhoneTooLong
	}
	if username == s.adminUsername {
		s.logger.Warn("Register: attempt to register reserved username")
		return nil, ErrUsernameReserved
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Username:     username,
		DisplayName:  displayName,
		Phone:        phone,
		Role:         domain.RoleUser,
		PasswordHash: hash,
		Plan:         domain.Plan{Type: domain.PlanNone},
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("Register: repository error for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: user id=%d registered", user.ID)
	return models.FromDomainUser(user, s.calendar.CurrentMonthKey()), nil
}

// Login проверяет учетные данные и возвращает пользователя
func (s *Service) Login(ctx context.Context, username, password string) (*models.UserResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		s.logger.Warn("Login: invalid password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	return models.FromDomainUser(user, s.calendar.CurrentMonthKey()), nil
}

// GetByID возвращает пользователя с эффективным планом
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainUser(user, s.calendar.CurrentMonthKey()), nil
}

// GetDomainUser возвращает доменную модель (для middleware авторизации)
func (s *Service) GetDomainUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.getUser(ctx, "GetDomainUser", id)
}

// UpdateProfile меняет имя, телефон и, если передан, пароль
func (s *Service) UpdateProfile(ctx context.Context, id int64, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	displayName := strings.TrimSpace(req.DisplayName)
	phone := strings.TrimSpace(req.Phone)

	if displayName == "" {
		return nil, ErrDisplayNameRequired
	}
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	if utf8.RuneCountInString(phone) > domain.MaxPhoneLength {
		return nil, ErrPhoneTooLong
	}
	if req.Password != "" && utf8.RuneCountInString(req.Password) < domain.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	var hash string
	if req.Password != "" {
		var err error
		hash, err = s.hasher.Hash(req.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: UpdateProfile - hash password: %v", ErrInternal, err)
		}
	}

	now := s.calendar.Now()

	if err := s.userRepo.UpdateProfile(ctx, id, displayName, phone, now); err != nil {
		return nil, s.mapRepoError("UpdateProfile", id, err)
	}

	if hash != "" {
		if err := s.userRepo.UpdatePassword(ctx, id, hash, now); err != nil {
			return nil, s.mapRepoError("UpdateProfile", id, err)
		}
	}

	s.logger.Info("UpdateProfile: user id=%d updated", id)
	return s.GetByID(ctx, id)
}

// EnsureAdmin создает или обновляет учетную запись администратора.
// Пустой пароль отключает создание
func (s *Service) EnsureAdmin(ctx context.Context, displayName, password string) error {
	if password == "" {
		s.logger.Warn("EnsureAdmin: admin password is empty, admin account not seeded")
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("%w: EnsureAdmin - hash password: %v", ErrInternal, err)
	}

	admin, err := s.userRepo.UpsertAdmin(ctx, s.adminUsername, displayName, hash)
	if err != nil {
		return fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureAdmin: admin account ready id=%d", admin.ID)
	return nil
}

func (s *Service) getUser(ctx context.Context, op string, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return user, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Warn("%s: user id=%d not found", op, id)
		return ErrUserNotFound
	}
	s.logger.Error("%s: repository error for user id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
