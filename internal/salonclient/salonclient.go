package salonclient

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/salonware/salon-manager/internal/backend/gormstore"
	"github.com/salonware/salon-manager/internal/backend/rest"
	"github.com/salonware/salon-manager/internal/cache"
	"github.com/salonware/salon-manager/internal/config"
	"github.com/salonware/salon-manager/internal/models"
	"github.com/salonware/salon-manager/internal/resource"
)

// Accessors is the full set of entity accessors a front end works against.
// Which backend serves them (REST API or direct database) and which cache
// store backs them is decided here, once, and nowhere else.
type Accessors struct {
	Clients       *resource.Accessor[models.Client]
	Products      *resource.Accessor[models.Product]
	Services      *resource.Accessor[models.Service]
	Professionals *resource.Accessor[models.Professional]
	Appointments  *resource.Accessor[models.Appointment]
	Financial     *resource.Accessor[models.FinancialEntry]
}

type Options struct {
	Store  cache.Store       // nil -> in-process memory store
	Notify resource.Notifier // nil -> no user notifications
	Logger zerolog.Logger
	TTL    time.Duration // zero -> fresh until invalidated
}

func (o *Options) store() cache.Store {
	if o.Store != nil {
		return o.Store
	}
	return cache.NewMemoryStore()
}

// StoreFromConfig picks the cache store: redis when REDIS_URL is set,
// in-process memory otherwise.
func StoreFromConfig(cfg *config.Config) (cache.Store, error) {
	if cfg.RedisURL == "" {
		return cache.NewMemoryStore(), nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return cache.NewRedisStore(redis.NewClient(opts), "salon-cache"), nil
}

// NewREST builds accessors over the HTTP API.
func NewREST(client *rest.Client, opts Options) *Accessors {
	store := opts.store()

	return &Accessors{
		Clients:       build[models.Client]("clients", rest.NewResource[models.Client](client, "/api/clients"), store, opts),
		Products:      build[models.Product]("products", rest.NewResource[models.Product](client, "/api/products"), store, opts),
		Services:      build[models.Service]("services", rest.NewResource[models.Service](client, "/api/services"), store, opts),
		Professionals: build[models.Professional]("professionals", rest.NewResource[models.Professional](client, "/api/professionals"), store, opts),
		Appointments:  build[models.Appointment]("appointments", rest.NewResource[models.Appointment](client, "/api/appointments"), store, opts),
		Financial:     build[models.FinancialEntry]("financial-entries", rest.NewResource[models.FinancialEntry](client, "/api/financial-entries"), store, opts),
	}
}

// NewDirect builds accessors over the database itself, scoped to one salon.
func NewDirect(db *gorm.DB, salonID uint, opts Options) *Accessors {
	store := opts.store()

	return &Accessors{
		Clients:       build[models.Client]("clients", gormstore.New[models.Client](db).Scoped("salon_id", salonID), store, opts),
		Products:      build[models.Product]("products", gormstore.New[models.Product](db).Scoped("salon_id", salonID), store, opts),
		Services:      build[models.Service]("services", gormstore.New[models.Service](db).Scoped("salon_id", salonID), store, opts),
		Professionals: build[models.Professional]("professionals", gormstore.New[models.Professional](db).Scoped("salon_id", salonID), store, opts),
		Appointments:  build[models.Appointment]("appointments", gormstore.New[models.Appointment](db).Scoped("salon_id", salonID), store, opts),
		Financial:     build[models.FinancialEntry]("financial-entries", gormstore.New[models.FinancialEntry](db).Scoped("salon_id", salonID), store, opts),
	}
}

func build[T any](name string, backend resource.Backend[T], store cache.Store, opts Options) *resource.Accessor[T] {
	return resource.New(name, backend, store, opts.Notify,
		resource.WithTTL[T](opts.TTL),
		resource.WithLogger[T](opts.Logger),
	)
}
