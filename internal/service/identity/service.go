package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stafftrack/hrms-backend-go/internal/domain/identity"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type IdentityServiceImpl struct {
	identityRepo identity.Repository
}

func NewIdentityService(identityRepo identity.Repository) identity.Service {
	return &IdentityServiceImpl{
		identityRepo: identityRepo,
	}
}

// Create implements identity.Service.
func (s *IdentityServiceImpl) Create(ctx context.Context, req identity.CreateIdentityRequest) (identity.IdentityResponse, error) {
	if err := req.Validate(); err != nil {
		return identity.IdentityResponse{}, err
	}

	if req.SupervisorID != nil {
		sup, err := s.identityRepo.GetByID(ctx, *req.SupervisorID)
		if err != nil {
			return identity.IdentityResponse{}, identity.ErrNotASupervisor
		}
		if sup.Role != identity.RoleSupervisor || !sup.IsActive {
			return identity.IdentityResponse{}, identity.ErrNotASupervisor
		}
	}

	ident := identity.Identity{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		EmpID:        req.EmpID,
		Designation:  req.Designation,
		Department:   req.Department,
		Role:         identity.Role(req.Role),
		ShiftStart:   req.ShiftStart,
		ShiftEnd:     req.ShiftEnd,
		SupervisorID: req.SupervisorID,
		IsActive:     true,
		EPF:          identity.FlagNo,
		ESIC:         identity.FlagNo,
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return identity.IdentityResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)
		ident.PasswordHash = &hashStr
	}

	if req.BasicSalary != nil {
		ident.BasicSalary = *req.BasicSalary
	}
	if req.SpecialAllowance != nil {
		ident.SpecialAllowance = *req.SpecialAllowance
	}
	if req.Conveyance != nil {
		ident.Conveyance = *req.Conveyance
	}
	if req.EPF != nil {
		ident.EPF = identity.StatutoryFlag(*req.EPF)
	}
	if req.ESIC != nil {
		ident.ESIC = identity.StatutoryFlag(*req.ESIC)
	}
	if req.PaidLeaves != nil {
		ident.PaidLeaves = *req.PaidLeaves
	}

	created, err := s.identityRepo.Create(ctx, ident)
	if err != nil {
		return identity.IdentityResponse{}, err
	}

	return identity.ToResponse(created), nil
}

// Get implements identity.Service.
func (s *IdentityServiceImpl) Get(ctx context.Context, id string) (identity.IdentityResponse, error) {
	ident, err := s.identityRepo.GetByID(ctx, id)
	if err != nil {
		return identity.IdentityResponse{}, err
	}
	return identity.ToResponse(ident), nil
}

// List implements identity.Service.
func (s *IdentityServiceImpl) List(ctx context.Context, filter identity.Filter) ([]identity.IdentityResponse, error) {
	if filter.Role != nil && !identity.IsValidRole(*filter.Role) {
		return nil, validator.ValidationErrors{{
			Field:   "role",
			Message: "role must be one of admin, hr, supervisor, employee",
		}}
	}

	idents, err := s.identityRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]identity.IdentityResponse, 0, len(idents))
	for _, ident := range idents {
		responses = append(responses, identity.ToResponse(ident))
	}
	return responses, nil
}

// Deactivate implements identity.Service.
func (s *IdentityServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.identityRepo.Deactivate(ctx, id)
}
