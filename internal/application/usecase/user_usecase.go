package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/tu-usuario/railparts-api/internal/application/auth"
	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/domain"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios (solo admin). Las altas/bajas quedan en auditoría.
type UserUseCase struct {
	repo      repository.UserRepository
	auditRepo repository.AuditRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, auditRepo repository.AuditRepository) *UserUseCase {
	return &UserUseCase{repo: repo, auditRepo: auditRepo}
}

// Create registra un usuario con password hasheado con bcrypt.
func (uc *UserUseCase) Create(actor string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, _ := uc.repo.GetByUsername(in.Username)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	uc.audit(actor, entity.AuditUserCreate, user.ID, "alta de usuario "+user.Username+" con rol "+user.Role)
	return appauth.ToUserResponse(user), nil
}

// Update modifica nombre, rol, estado o password de un usuario.
func (uc *UserUseCase) Update(actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	action := entity.AuditUserUpdate
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Status != nil {
		user.Status = *in.Status
		if *in.Status == entity.UserStatusInactive {
			action = entity.AuditUserDisable
		}
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	uc.audit(actor, action, user.ID, "actualización de usuario "+user.Username)
	return appauth.ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return appauth.ToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	users, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.UserListResponse{
		Users: make([]dto.UserResponse, 0, len(users)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, u := range users {
		resp.Users = append(resp.Users, *appauth.ToUserResponse(u))
	}
	return resp, nil
}

// audit registra la acción; un fallo de auditoría no revierte la gestión de usuarios.
func (uc *UserUseCase) audit(actor, action, resource, detail string) {
	_ = uc.auditRepo.Create(&entity.AuditEntry{
		ID:        uuid.New().String(),
		Actor:     actor,
		Action:    action,
		Resource:  resource,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
}
