package usecase

import (
	"context"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
	"sort"
)

// ITechnicianUseCase lists the people a job can be assigned to.
type ITechnicianUseCase interface {
	List(ctx context.Context, actorID string) ([]entities.User, error)
}

type TechnicianUseCase struct {
	roles IRoleAuthority
	users interfaces.IUserRepository
}

var _ ITechnicianUseCase = (*TechnicianUseCase)(nil)

func NewTechnicianUseCase(roles IRoleAuthority, users interfaces.IUserRepository) *TechnicianUseCase {
	return &TechnicianUseCase{roles: roles, users: users}
}

func (u *TechnicianUseCase) List(ctx context.Context, actorID string) ([]entities.User, error) {
	role, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !canAssign(role) {
		return nil, ErrForbidden
	}
	techs, err := u.users.ListByRole(ctx, entities.RoleTechnician)
	if err != nil {
		return nil, storageFailure(err)
	}
	sort.SliceStable(techs, func(i, j int) bool { return techs[i].Name < techs[j].Name })
	return techs, nil
}
