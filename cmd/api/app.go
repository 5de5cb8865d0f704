package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"repairdesk/internal/adapter/http/dto/request"
	"repairdesk/internal/adapter/http/handlers"
	"repairdesk/internal/adapter/http/routes"
	"repairdesk/internal/adapter/persistence/memory"
	"repairdesk/internal/adapter/persistence/postgres"
	"repairdesk/internal/adapter/persistence/repository"
	"repairdesk/internal/config"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/infrastructure/database"
	"repairdesk/internal/infrastructure/notify"
	"repairdesk/internal/infrastructure/observability"
	"repairdesk/internal/usecase"
	"repairdesk/internal/usecase/interfaces"
)

const serviceName = "repairdesk"

type stores struct {
	jobs    interfaces.IJobRepository
	history interfaces.IHistoryRepository
	users   interfaces.IUserRepository
	invites interfaces.IInviteRepository
	close   func() error
}

type eventBus interface {
	interfaces.IJobNotifier
	interfaces.IJobEventSubscriber
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(os.Stdout, serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	metrics := observability.NewMetrics()
	metrics.SetAppInfo(serviceName, cfg.AppVersion)

	shutdownTracing, err := observability.InitTracing(serviceName, cfg.AppVersion, cfg.OTELEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			slog.Warn("closing store failed", "error", err)
		}
	}()

	bus, closeBus, err := openEventBus(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBus()

	if err := bootstrapAdmin(ctx, cfg, st.users); err != nil {
		return err
	}

	if err := request.RegisterValidators(); err != nil {
		return fmt.Errorf("registering validators: %w", err)
	}

	roles := usecase.NewRoleAuthority(st.users)
	jobUC := usecase.NewJobUseCase(roles, st.jobs, st.history, bus).WithSubscriber(bus)
	transitionUC := usecase.NewTransitionUseCase(roles, st.jobs, bus).WithObserver(metrics)
	assignmentUC := usecase.NewAssignmentUseCase(roles, st.users, st.jobs, bus).WithObserver(metrics)
	technicianUC := usecase.NewTechnicianUseCase(roles, st.users)
	inviteUC := usecase.NewInviteUseCase(roles, st.invites, st.users, cfg.InviteTTL)

	router := routes.NewRouter(routes.Handlers{
		Jobs:   handlers.NewJobHandler(jobUC, transitionUC, assignmentUC),
		Users:  handlers.NewUserHandler(roles, technicianUC, inviteUC),
		Events: handlers.NewEventsHandler(jobUC, metrics),
	}, routes.Options{
		JWTSecret: []byte(cfg.JWTSecret),
		Metrics:   metrics,
	})

	slog.Info("starting repairdesk", "backend", cfg.StoreBackend, "version", cfg.AppVersion)
	return routes.Run(ctx, fmt.Sprintf(":%d", cfg.Port), serviceName, router)
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return stores{}, err
		}
		if err := postgres.Migrate(db.DB); err != nil {
			_ = db.Close()
			return stores{}, err
		}
		jobs := postgres.NewJobRepository(db)
		return stores{
			jobs:    jobs,
			history: jobs,
			users:   postgres.NewUserRepository(db),
			invites: postgres.NewInviteRepository(db),
			close:   db.Close,
		}, nil

	case config.BackendMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		jobs := memory.NewJobStore()
		users := memory.NewUserStore()
		return stores{
			jobs:    jobs,
			history: jobs,
			users:   users,
			invites: memory.NewInviteStore(users),
			close:   func() error { return nil },
		}, nil

	default:
		client, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return stores{}, err
		}
		jobs := repository.NewJobDynamoRepository(client, cfg.JobsTable, cfg.HistoryTable)
		return stores{
			jobs:    jobs,
			history: jobs,
			users:   repository.NewUserDynamoRepository(client, cfg.UsersTable),
			invites: repository.NewInviteDynamoRepository(client, cfg.InvitesTable, cfg.UsersTable),
			close:   func() error { return nil },
		}, nil
	}
}

// openEventBus uses Redis Pub/Sub when configured so every replica sees
// every change; otherwise events stay inside this process.
func openEventBus(ctx context.Context, cfg config.Config) (eventBus, func(), error) {
	if cfg.RedisAddr == "" {
		return notify.NewBroker(), func() {}, nil
	}
	client, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, nil, err
	}
	return notify.NewRedisNotifier(client, cfg.RedisChannel), func() { _ = client.Close() }, nil
}

func bootstrapAdmin(ctx context.Context, cfg config.Config, users interfaces.IUserRepository) error {
	id := strings.TrimSpace(cfg.BootstrapAdminID)
	if id == "" {
		return nil
	}
	existing, err := users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("bootstrap admin lookup: %w", err)
	}
	if existing.Role == entities.RoleAdmin {
		return nil
	}
	if _, err := users.Upsert(ctx, entities.User{
		ID:    id,
		Email: strings.ToLower(strings.TrimSpace(cfg.BootstrapAdminEmail)),
		Name:  existing.Name,
		Role:  entities.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("bootstrap admin upsert: %w", err)
	}
	slog.Info("bootstrap admin ensured", "user_id", id)
	return nil
}
