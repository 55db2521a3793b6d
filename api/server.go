package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/models"
	"github.com/CardHaven/CardHaven-Backend/providers"
	"github.com/CardHaven/CardHaven-Backend/providers/fiat"
	"github.com/CardHaven/CardHaven-Backend/providers/storage"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	notification_service "github.com/CardHaven/CardHaven-Backend/services/notification"
	redis_service "github.com/CardHaven/CardHaven-Backend/services/redis"
	"github.com/CardHaven/CardHaven-Backend/services/settings"
	user_service "github.com/CardHaven/CardHaven-Backend/services/user"
	"github.com/CardHaven/CardHaven-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// / If there's a better place to access this
// / TODO, I feel the config should be the one accessible like this
var TokenController *utils.JWTToken

type Server struct {
	router   *gin.Engine
	store    *store.Store
	config   *utils.Config
	logger   *logging.Logger
	provider *providers.ProviderService
	redis    *redis_service.RedisService
	refs     *utils.ReferenceGenerator
	users    *user_service.UserService
	settings *settings.SettingsService
	notifier *notification_service.NotificationService
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	m, err := migrate.New(
		"file://db/migrations",
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	s := store.NewStore(conn)
	g := gin.Default()
	l := logging.NewLogger(c)
	p := providers.NewProviderService()

	// Payment and storage providers
	p.AddProvider(fiat.NewFiatProvider(l))

	r, err := redis_service.NewRedisService(&redis_service.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
	})
	if err != nil {
		l.Error(fmt.Sprintf("redis unavailable, catalog caching disabled: %v", err))
		r = nil
	}

	refs, err := utils.NewReferenceGenerator(c.SigningKey)
	if err != nil {
		panic(fmt.Sprintf("Could not initialise reference generator: %v", err))
	}

	push := notification_service.NewPushNotificationService(l)
	mail := notification_service.NewPlunk(c)
	notifier := notification_service.NewNotificationService(s, l, push, mail)

	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	TokenController = utils.NewJWTToken(c)

	return &Server{
		router:   g,
		store:    s,
		config:   c,
		logger:   l,
		provider: p,
		redis:    r,
		refs:     refs,
		users:    user_service.NewUserService(s, l),
		settings: settings.NewSettingsService(s, l),
		notifier: notifier,
	}
}

// paystack returns the registered checkout provider, nil when it was never
// configured.
func (s *Server) paystack() *fiat.PaystackProvider {
	p, exists := s.provider.GetProvider(providers.Paystack)
	if !exists {
		return nil
	}
	pp, ok := p.(*fiat.PaystackProvider)
	if !ok {
		return nil
	}
	return pp
}

func (s *Server) proofStorage() *storage.ObjectStorage {
	o, err := storage.NewObjectStorage(s.config, s.logger)
	if err != nil {
		s.logger.Error(fmt.Sprintf("object storage unavailable: %v", err))
		return nil
	}
	return o
}

func (s *Server) Start() {

	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to CardHaven!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Auth{}.router(s)
	Wallet{}.router(s)
	Catalog{}.router(s)
	GiftCard{}.router(s)
	Transactions{}.router(s)
	Withdrawals{}.router(s)
	Notifications{}.router(s)
	Admin{}.router(s)

	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}
