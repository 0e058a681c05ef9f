package router

import (
	"github.com/coslynx/fitness-tracker/internal/application"
	"github.com/coslynx/fitness-tracker/internal/container"
	"github.com/coslynx/fitness-tracker/internal/domain/entity"
	pginfra "github.com/coslynx/fitness-tracker/internal/infrastructure/postgres"
	"github.com/coslynx/fitness-tracker/internal/infrastructure/search"
	handlers "github.com/coslynx/fitness-tracker/internal/interface/http"
	"github.com/coslynx/fitness-tracker/internal/interface/middleware"
	"github.com/coslynx/fitness-tracker/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// and registers every feature module. Called once during startup.
func InitModules(r *Registry, c *container.Container) {
	auth := middleware.Auth(c.JWT, c.Redis)

	users := buildUserService(c)
	userHandler := handlers.NewUserHandler(users)
	authHandler := handlers.NewAuthHandler(users, c.Cookies)

	oauth := application.NewOAuthService(users, application.OAuthConfig{
		GoogleClientID:       c.Cfg.GoogleClientID,
		GoogleClientSecret:   c.Cfg.GoogleClientSecret,
		FacebookClientID:     c.Cfg.FacebookClientID,
		FacebookClientSecret: c.Cfg.FacebookClientSecret,
		RedirectBase:         c.Cfg.OAuthRedirectBase,
	})
	oauthHandler := handlers.NewOAuthHandler(oauth, c.Cookies, c.Cfg.PostLoginRedirectURL)

	goalSvc := application.NewResource[*entity.Goal, entity.GoalPatch](
		"Goal",
		pginfra.NewGoalRepository(c.PGPool),
		search.NewESIndex(c.ES, c.Cfg.ESGoalsIndex, []string{"title^2", "description"}, c.Logger),
		c.Logger,
	)
	workoutSvc := application.NewResource[*entity.Workout, entity.WorkoutPatch](
		"Workout",
		pginfra.NewWorkoutRepository(c.PGPool),
		search.NewESIndex(c.ES, c.Cfg.ESWorkoutsIndex, []string{"type^2", "intensity"}, c.Logger),
		c.Logger,
	)

	r.Add(modules.NewAuthModule(authHandler, oauthHandler, auth))
	r.Add(modules.NewUserModule(userHandler, auth))
	r.Add(modules.NewGoalModule(handlers.NewGoalHandler(goalSvc), auth))
	r.Add(modules.NewWorkoutModule(handlers.NewWorkoutHandler(workoutSvc), auth))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

func buildUserService(c *container.Container) *application.UserService {
	return &application.UserService{
		Repo:        pginfra.NewUserRepository(c.PGPool),
		JWT:         c.JWT,
		Redis:       c.Redis,
		GCS:         c.GCS,
		GCSBucket:   c.Cfg.GCSBucket,
		Pub:         c.RabbitPub,
		Logger:      c.Logger,
		BcryptCost:  c.Cfg.BcryptCost,
		MailEnabled: c.Cfg.MailSendEnabled,
	}
}
