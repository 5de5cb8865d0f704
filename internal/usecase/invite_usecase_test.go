package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
	mock_interfaces "repairdesk/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestInviteUseCase(t *testing.T) {
	ctx := context.Background()
	newUC := func(f *fixture) *InviteUseCase {
		return NewInviteUseCase(f.roles, f.invites, f.users, time.Hour)
	}

	t.Run("admin invites and the invitee accepts", func(t *testing.T) {
		f := newFixture(t)
		uc := newUC(f)

		inv, err := uc.Create(ctx, "admin-1", "  New.Tech@Shop.in ", entities.RoleTechnician)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if inv.Email != "new.tech@shop.in" || inv.Token == "" || inv.Used {
			t.Fatalf("unexpected invite: %+v", inv)
		}

		user, err := uc.Accept(ctx, Identity{ID: "idp-42", Email: "NEW.TECH@shop.in", Name: "Nina"}, inv.Token)
		if err != nil {
			t.Fatalf("accept: %v", err)
		}
		if user.Role != entities.RoleTechnician || user.ID != "idp-42" {
			t.Fatalf("unexpected user: %+v", user)
		}
		role, err := f.roles.RoleOf(ctx, "idp-42")
		if err != nil || role != entities.RoleTechnician {
			t.Fatalf("expected technician role, got %q %v", role, err)
		}

		if _, err := uc.Accept(ctx, Identity{ID: "idp-42", Email: "new.tech@shop.in"}, inv.Token); !errors.Is(err, ErrInviteNotActive) {
			t.Fatalf("second accept: expected ErrInviteNotActive, got %v", err)
		}
	})

	t.Run("semiadmin cannot invite admins", func(t *testing.T) {
		f := newFixture(t)
		uc := newUC(f)
		for _, role := range []entities.Role{entities.RoleAdmin, entities.RoleSemiAdmin} {
			if _, err := uc.Create(ctx, "semi-1", "x@y.in", role); !errors.Is(err, ErrForbidden) {
				t.Fatalf("%s: expected ErrForbidden, got %v", role, err)
			}
		}
		if _, err := uc.Create(ctx, "semi-1", "x@y.in", entities.RoleViewer); err != nil {
			t.Fatalf("viewer invite: %v", err)
		}
	})

	t.Run("technicians and viewers cannot invite", func(t *testing.T) {
		f := newFixture(t)
		uc := newUC(f)
		if _, err := uc.Create(ctx, "tech-1", "x@y.in", entities.RoleViewer); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("one active invite per email", func(t *testing.T) {
		f := newFixture(t)
		uc := newUC(f)
		if _, err := uc.Create(ctx, "admin-1", "dup@y.in", entities.RoleViewer); err != nil {
			t.Fatalf("first: %v", err)
		}
		if _, err := uc.Create(ctx, "admin-1", "DUP@y.in", entities.RoleTechnician); !errors.Is(err, ErrInviteAlreadyExists) {
			t.Fatalf("expected ErrInviteAlreadyExists, got %v", err)
		}
	})

	t.Run("invalid role and email", func(t *testing.T) {
		f := newFixture(t)
		uc := newUC(f)
		if _, err := uc.Create(ctx, "admin-1", "x@y.in", "owner"); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("expected ErrInvalidPayload for role, got %v", err)
		}
		if _, err := uc.Create(ctx, "admin-1", "not-an-email", entities.RoleViewer); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("expected ErrInvalidPayload for email, got %v", err)
		}
	})

	t.Run("expired invite", func(t *testing.T) {
		f := newFixture(t)
		uc := newUC(f)
		inv, _ := uc.Create(ctx, "admin-1", "late@y.in", entities.RoleViewer)
		uc.now = func() time.Time { return inv.ExpiresAt.Add(time.Second) }
		if _, err := uc.Accept(ctx, Identity{ID: "idp-1", Email: "late@y.in"}, inv.Token); !errors.Is(err, ErrInviteNotActive) {
			t.Fatalf("expected ErrInviteNotActive, got %v", err)
		}
	})

	t.Run("email must match", func(t *testing.T) {
		f := newFixture(t)
		uc := newUC(f)
		inv, _ := uc.Create(ctx, "admin-1", "owner@y.in", entities.RoleViewer)
		if _, err := uc.Accept(ctx, Identity{ID: "idp-1", Email: "thief@y.in"}, inv.Token); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newFixture(t)
		uc := newUC(f)
		if _, err := uc.Accept(ctx, Identity{ID: "idp-1", Email: "a@b.in"}, "nope"); !errors.Is(err, ErrInviteNotFound) {
			t.Fatalf("expected ErrInviteNotFound, got %v", err)
		}
	})

	t.Run("existing member cannot be demoted by an invite", func(t *testing.T) {
		f := newFixture(t)
		uc := newUC(f)
		inv, err := uc.Create(ctx, "admin-1", "admin@shop.in", entities.RoleViewer)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := uc.Accept(ctx, Identity{ID: "admin-1", Email: "admin@shop.in"}, inv.Token); !errors.Is(err, ErrAlreadyMember) {
			t.Fatalf("expected ErrAlreadyMember, got %v", err)
		}
		if role, _ := f.roles.RoleOf(ctx, "admin-1"); role != entities.RoleAdmin {
			t.Fatalf("expected admin role kept, got %q", role)
		}
		stored, _ := f.invites.GetByToken(ctx, inv.Token)
		if stored.Used {
			t.Fatalf("refused accept must not consume the invite")
		}
	})

	t.Run("failed redeem binds nothing and can be retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		invites := mock_interfaces.NewMockIInviteRepository(ctrl)
		uc := NewInviteUseCase(NewRoleAuthority(users), invites, users, 0)
		now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		uc.now = func() time.Time { return now }

		inv := entities.Invite{ID: "inv-1", Email: "new@shop.in", Role: entities.RoleTechnician, Token: "tok", ExpiresAt: now.Add(time.Hour)}
		bound := entities.User{ID: "idp-7", Email: "new@shop.in", Name: "new@shop.in", Role: entities.RoleTechnician, CreatedAt: now}
		invites.EXPECT().GetByToken(gomock.Any(), "tok").Return(inv, nil).Times(2)
		users.EXPECT().GetByID(gomock.Any(), "idp-7").Return(entities.User{}, nil).Times(2)
		gomock.InOrder(
			invites.EXPECT().Redeem(gomock.Any(), "inv-1", bound).Return(entities.User{}, errors.New("transaction aborted")),
			invites.EXPECT().Redeem(gomock.Any(), "inv-1", bound).Return(bound, nil),
		)

		user, err := uc.Accept(ctx, Identity{ID: "idp-7", Email: "new@shop.in"}, "tok")
		if !errors.Is(err, ErrStorageFailure) {
			t.Fatalf("expected ErrStorageFailure, got %v", err)
		}
		if user.Role != "" {
			t.Fatalf("expected no role on failure, got %+v", user)
		}

		user, err = uc.Accept(ctx, Identity{ID: "idp-7", Email: "new@shop.in"}, "tok")
		if err != nil {
			t.Fatalf("retry: %v", err)
		}
		if user.Role != entities.RoleTechnician {
			t.Fatalf("expected technician on retry, got %+v", user)
		}
	})

	t.Run("redeem race maps to inactive invite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		invites := mock_interfaces.NewMockIInviteRepository(ctrl)
		uc := NewInviteUseCase(NewRoleAuthority(users), invites, users, 0)

		inv := entities.Invite{ID: "inv-1", Email: "new@shop.in", Role: entities.RoleViewer, Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
		invites.EXPECT().GetByToken(gomock.Any(), "tok").Return(inv, nil)
		users.EXPECT().GetByID(gomock.Any(), "idp-7").Return(entities.User{}, nil)
		invites.EXPECT().Redeem(gomock.Any(), "inv-1", gomock.Any()).Return(entities.User{}, interfaces.ErrConditionFailed)

		if _, err := uc.Accept(ctx, Identity{ID: "idp-7", Email: "new@shop.in"}, "tok"); !errors.Is(err, ErrInviteNotActive) {
			t.Fatalf("expected ErrInviteNotActive, got %v", err)
		}
	})

	t.Run("lookup failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		invites := mock_interfaces.NewMockIInviteRepository(ctrl)
		uc := NewInviteUseCase(NewRoleAuthority(users), invites, users, 0)

		users.EXPECT().GetByID(gomock.Any(), "admin-1").Return(entities.User{ID: "admin-1", Role: entities.RoleAdmin}, nil)
		invites.EXPECT().FindActiveByEmail(gomock.Any(), "a@b.in", gomock.Any()).Return(entities.Invite{}, errors.New("db"))

		if _, err := uc.Create(ctx, "admin-1", "a@b.in", entities.RoleViewer); !errors.Is(err, ErrStorageFailure) {
			t.Fatalf("expected ErrStorageFailure, got %v", err)
		}
	})
}

func TestRoleAuthority(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown role fails closed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		users.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.User{ID: "u-1", Role: "superuser"}, nil)

		if _, err := NewRoleAuthority(users).RoleOf(ctx, "u-1"); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("empty identity", func(t *testing.T) {
		if _, err := NewRoleAuthority(nil).RoleOf(ctx, " "); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		users.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.User{}, errors.New("db"))

		if _, err := NewRoleAuthority(users).RoleOf(ctx, "u-1"); !errors.Is(err, ErrStorageFailure) {
			t.Fatalf("expected ErrStorageFailure, got %v", err)
		}
	})
}

func TestTechnicianUseCase_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewTechnicianUseCase(f.roles, f.users)

	techs, err := uc.List(ctx, "semi-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(techs) != 2 || techs[0].Name != "Tara" || techs[1].Name != "Tomas" {
		t.Fatalf("unexpected technicians: %+v", techs)
	}
	if _, err := uc.List(ctx, "viewer-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
