package router

import (
	"github.com/mindstack/mindstack/internal/application"
	"github.com/mindstack/mindstack/internal/container"
	pginfra "github.com/mindstack/mindstack/internal/infrastructure/postgres"
	handlers "github.com/mindstack/mindstack/internal/interface/http"
	"github.com/mindstack/mindstack/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	tokens := container.GetTokens()

	users := pginfra.NewUserRepository(pool)
	thoughts := pginfra.NewThoughtRepository(pool)
	todos := pginfra.NewTodoRepository(pool)
	habits := pginfra.NewHabitRepository(pool)

	authSvc := application.NewAuthService(users, tokens, container.GetRabbitPub(), container.GetGCS(), cfg.GCSBucket, logger)
	thoughtSvc := application.NewThoughtService(thoughts, container.GetES(), cfg.ESThoughtsIndex, logger)
	todoSvc := application.NewTodoService(todos)
	habitSvc := application.NewHabitService(habits, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), tokens))
	r.Add(modules.NewThoughtModule(handlers.NewThoughtHandler(thoughtSvc, logger), tokens))
	r.Add(modules.NewTodoModule(handlers.NewTodoHandler(todoSvc, logger), tokens))
	r.Add(modules.NewHabitModule(handlers.NewHabitHandler(habitSvc, logger), tokens))
}
