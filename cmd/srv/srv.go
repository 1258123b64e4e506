package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sfdsa-platform/backend/config"
	"github.com/sfdsa-platform/backend/internal/common"
	"github.com/sfdsa-platform/backend/internal/domain"
	"github.com/sfdsa-platform/backend/internal/domain/gamification"
	"github.com/sfdsa-platform/backend/internal/domain/statistic"
	"github.com/sfdsa-platform/backend/internal/repository"
	"github.com/sfdsa-platform/backend/migration"
	"github.com/sfdsa-platform/backend/pkg/kafka"
	"github.com/sfdsa-platform/backend/pkg/logger"
	"github.com/sfdsa-platform/backend/pkg/pubsub"
	"github.com/sfdsa-platform/backend/pkg/router"
	"github.com/sfdsa-platform/backend/pkg/storage"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"github.com/sfdsa-platform/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	configs *config.Configs
	logger  logger.Logger

	userRepo        repository.UserRepository
	pointsLogRepo   repository.PointsLogRepository
	badgeRepo       repository.BadgeRepository
	nftRepo         repository.NFTAwardRepository
	donationRepo    repository.DonationRepository
	referralRepo    repository.ReferralRepository
	briefingRepo    repository.BriefingRepository
	applicationRepo repository.ApplicationRepository

	leaderboard statistic.Leaderboard
	engine      gamification.Engine

	userDomain         domain.UserDomain
	statisticDomain    domain.StatisticDomain
	gamificationDomain domain.GamificationDomain
	donationDomain     domain.DonationDomain
	referralDomain     domain.ReferralDomain
	briefingDomain     domain.BriefingDomain
	applicationDomain  domain.ApplicationDomain
	adminDomain        domain.AdminDomain

	redisClient xredis.Client
	storage     storage.Storage
	publisher   pubsub.Publisher
	subscriber  pubsub.Subscriber

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	// Missing .env is fine, real deployments inject the environment
	// directly.
	godotenv.Load()

	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "sfdsa"),
			Password: getEnv("MYSQL_PASSWORD", "sfdsa"),
			Database: getEnv("MYSQL_DATABASE", "sfdsa"),
		},
		ApiServer: config.ServerConfigs{
			Host:           getEnv("HOST", ""),
			Port:           getEnv("PORT", "8080"),
			Cert:           getEnv("SERVER_CERT", ""),
			Key:            getEnv("SERVER_KEY", ""),
			DefaultLimit:   getEnvAsInt("API_DEFAULT_LIMIT", 20),
			MaxLimit:       getEnvAsInt("API_MAX_LIMIT", 50),
			AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvAsDuration("ACCESS_TOKEN_DURATION", 24*time.Hour),
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("SESSION_SECRET", "session_secret"),
			Name:   "auth_session",
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDR", "localhost:9092"),
		},
		Storage: config.S3Configs{
			Region:         getEnv("STORAGE_REGION", "us-west-1"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:         getEnv("STORAGE_BUCKET", "sfdsa"),
			SSLDisabled:    getEnvAsBool("STORAGE_SSL_DISABLED", true),
		},
		Email: config.EmailConfigs{
			Topic:    getEnv("EMAIL_TOPIC", "send-mail"),
			SMTPHost: getEnv("SMTP_HOST", "localhost"),
			SMTPPort: getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("EMAIL_FROM", "noreply@sfdeputysheriff.org"),
		},
		Admin: config.AdminConfigs{
			RecoveryCodeHash: getEnv("ADMIN_RECOVERY_CODE_HASH", ""),
		},
		File: config.FileConfigs{
			MaxSize:   int64(getEnvAsInt("MAX_UPLOAD_SIZE", 2*1024*1024)),
			MaxMemory: int64(getEnvAsInt("MAX_UPLOAD_MEMORY", 2*1024*1024)),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), *s.configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) newDatabase() *gorm.DB {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher("sfdsa-api", []string{s.configs.Kafka.Addr})
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.pointsLogRepo = repository.NewPointsLogRepository()
	s.badgeRepo = repository.NewBadgeRepository()
	s.nftRepo = repository.NewNFTAwardRepository()
	s.donationRepo = repository.NewDonationRepository()
	s.referralRepo = repository.NewReferralRepository()
	s.briefingRepo = repository.NewBriefingRepository()
	s.applicationRepo = repository.NewApplicationRepository()
}

func (s *srv) loadEngine() {
	s.leaderboard = statistic.New(s.userRepo, s.redisClient)
	s.engine = gamification.NewEngine(
		s.userRepo, s.pointsLogRepo, s.badgeRepo, s.nftRepo, s.leaderboard, s.publisher)
}

func (s *srv) loadDomains() {
	roleVerifier := common.NewGlobalRoleVerifier(s.userRepo)

	s.userDomain = domain.NewUserDomain(
		s.userRepo, s.pointsLogRepo, s.badgeRepo, s.nftRepo, s.engine)
	s.statisticDomain = domain.NewStatisticDomain(s.userRepo, s.leaderboard)
	s.gamificationDomain = domain.NewGamificationDomain(s.engine, s.userRepo, roleVerifier)
	s.donationDomain = domain.NewDonationDomain(
		s.donationRepo, s.userRepo, s.engine, roleVerifier)
	s.referralDomain = domain.NewReferralDomain(
		s.referralRepo, s.userRepo, s.pointsLogRepo, s.badgeRepo, s.nftRepo,
		s.engine, roleVerifier, s.publisher)
	s.briefingDomain = domain.NewBriefingDomain(s.briefingRepo, s.engine)
	s.applicationDomain = domain.NewApplicationDomain(
		s.applicationRepo, s.userRepo, s.engine, s.storage)
	s.adminDomain = domain.NewAdminDomain(s.userRepo, s.badgeRepo, s.nftRepo, roleVerifier)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}

	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}

	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}

	return value
}
