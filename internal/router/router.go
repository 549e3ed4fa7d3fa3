package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"petstore-client/internal/adapters/auth/password"
	mem "petstore-client/internal/adapters/storage/memory"
	pg "petstore-client/internal/adapters/storage/postgres"
	"petstore-client/internal/backend/accounts"
	"petstore-client/internal/backend/catalog"
	"petstore-client/internal/backend/orders"
	"petstore-client/internal/middleware"
	"petstore-client/internal/platform/logger"
	"petstore-client/internal/ports/auth"
	_ "petstore-client/internal/router/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Tokens es lo que el router necesita del emisor de JWT.
type Tokens interface {
	auth.AuthVerifier
	auth.TokenIssuer
}

type Options struct {
	Tokens Tokens

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: default bcrypt con DefaultCost.
	Hasher accounts.PasswordHasher

	// Seed carga el catálogo de ejemplo.
	Seed bool

	Log logger.Logger
}

// NewRouter arma el backend de desarrollo: API bajo /api, /health y /swagger.
func NewRouter(ctx context.Context, opts Options) (http.Handler, error) {
	if opts.Tokens == nil {
		return nil, fmt.Errorf("router: tokens required")
	}
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	hasher := opts.Hasher
	if hasher == nil {
		hasher = password.NewHasher(0)
	}

	var (
		catalogRepo catalog.Repository
		userRepo    accounts.Repository
		orderRepo   orders.Repository
	)
	if opts.DB != nil {
		if err := pg.MigrateBackend(ctx, opts.DB); err != nil {
			return nil, err
		}
		catalogRepo = pg.NewCatalogRepo(opts.DB)
		userRepo = pg.NewUsersRepo(opts.DB)
		orderRepo = pg.NewOrdersRepo(opts.DB)
	} else {
		catalogRepo = mem.NewCatalogRepo()
		userRepo = mem.NewUserRepo()
		orderRepo = mem.NewOrderRepo()
	}

	// Services por módulo
	catalogSvc := catalog.NewService(catalogRepo)
	accountsSvc := accounts.NewService(userRepo, hasher, opts.Tokens)
	ordersSvc := orders.NewService(orderRepo, catalogSvc, log)

	if opts.Seed {
		if err := seedIfEmpty(ctx, catalogSvc); err != nil {
			return nil, fmt.Errorf("router: seed catalog: %w", err)
		}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.AuthContext(opts.Tokens))

		// Rutas por módulo
		accounts.RegisterRoutes(api, accountsSvc)
		catalog.RegisterRoutes(api, catalogSvc)
		orders.RegisterRoutes(api, ordersSvc)
	})

	log.Info("router ready", map[string]any{"postgres": opts.DB != nil, "seed": opts.Seed})
	return r, nil
}

// seedIfEmpty evita duplicar el catálogo cuando Postgres ya tiene datos.
func seedIfEmpty(ctx context.Context, svc *catalog.Service) error {
	cats, err := svc.Categories(ctx)
	if err != nil {
		return err
	}
	if len(cats) > 0 {
		return nil
	}
	return svc.Seed(ctx)
}
