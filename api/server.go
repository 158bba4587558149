// Package api wires the marketplace's HTTP surface: server-rendered pages,
// form handlers, sessions and metrics on top of the auction domain service.
package api

import (
	"context"
	"fmt"

	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	redisAdapter "gavel/adapters/redis"
	internalS3 "gavel/adapters/s3"
	"gavel/adapters/session"
	"gavel/auction"
	"gavel/models"
)

type ServerImpl struct {
	db           *gorm.DB
	svc          *auction.Service
	s3Operator   *internalS3.Operator
	sessionStore session.IStore

	config ServerConfig
}

func NewServer(config ServerConfig) (*ServerImpl, error) {
	const op = "NewServer"

	// Database connection; TranslateError maps driver unique-violation
	// errors onto gorm.ErrDuplicatedKey, which the register flow relies on.
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s",
		config.DB.User, config.DB.Password, config.DB.Host, config.DB.Port, config.DB.Database, config.DB.Schema)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: config.DB.Schema + ".",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to connect to database, err=%w", op, err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Listing{},
		&models.Bid{},
		&models.Comment{},
		&models.Image{},
	); err != nil {
		return nil, fmt.Errorf("[%s] Fail to migrate schema, err=%w", op, err)
	}

	// Image storage is optional: without a bucket the create form simply
	// stores listings without images.
	var s3Operator *internalS3.Operator
	if config.S3.Bucket != "" {
		s3Config, err := awsCfg.LoadDefaultConfig(
			context.Background(),
			awsCfg.WithBaseEndpoint(config.S3.Endpoint),
			awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(config.S3.AccessKeyID, config.S3.SecretAccessKey, "")),
			awsCfg.WithRegion("auto"),
		)
		if err != nil {
			return nil, fmt.Errorf("[%s] Fail to load AWS config, err=%w", op, err)
		}
		s3Operator, err = internalS3.NewOperator(s3.NewFromConfig(s3Config), config.S3.Bucket, config.S3.PublicBaseURL)
		if err != nil {
			return nil, fmt.Errorf("[%s] Fail to create S3 operator, err=%w", op, err)
		}
	}

	// Sessions live in Redis when an address is configured, otherwise in
	// process memory (single-instance deployments and development).
	var sessionStore session.IStore
	if config.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		sessionStore = redisAdapter.NewStore(
			redisClient,
			redisAdapter.WithStorePrefix(config.Redis.KeyPrefix+"session:"),
		)
	} else {
		sessionStore = session.NewMemoryStore()
	}

	return NewServerWithDB(db, sessionStore, s3Operator, config), nil
}

// NewServerWithDB assembles a server around an existing database handle.
// Tests use it with an in-memory sqlite database and a memory session store.
func NewServerWithDB(db *gorm.DB, store session.IStore, s3Operator *internalS3.Operator, config ServerConfig) *ServerImpl {
	return &ServerImpl{
		db:           db,
		svc:          auction.NewService(db),
		s3Operator:   s3Operator,
		sessionStore: store,
		config:       config,
	}
}

// Service exposes the domain layer, mainly for tests that seed data.
func (impl *ServerImpl) Service() *auction.Service {
	return impl.svc
}

// RegisterRoutes attaches the session middleware and every page handler to
// the router. The caller is expected to have loaded the HTML templates.
func (impl *ServerImpl) RegisterRoutes(router *gin.Engine) {
	router.Use(impl.sessionMiddleware())

	router.GET("/", impl.index)
	router.GET("/login", impl.showLogin)
	router.POST("/login", impl.login)
	router.GET("/logout", impl.logout)
	router.POST("/logout", impl.logout)
	router.GET("/register", impl.showRegister)
	router.POST("/register", impl.register)

	router.GET("/create", impl.showCreateListing)
	router.POST("/create", impl.createListing)
	router.GET("/listing/:id", impl.showListing)
	router.POST("/listing/:id", impl.showListing)
	router.POST("/listing/:id/close", impl.closeListing)
	router.POST("/listing/:id/comment", impl.addComment)
	router.POST("/listing/:id/bid", impl.placeBid)

	router.GET("/categories", impl.listCategories)
	router.GET("/categories/:id", impl.showCategory)
	router.GET("/watchlist", impl.watchlist)

	router.GET("/healthz", impl.healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (impl *ServerImpl) healthz(c *gin.Context) {
	sqlDB, err := impl.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(503, gin.H{"status": "degraded"})
		return
	}
	c.JSON(200, gin.H{"status": "ok"})
}
