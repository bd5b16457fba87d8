package main

import (
	"os"
	"time"

	"menucraft/internal/config"
	"menucraft/internal/domain/model"
	"menucraft/internal/handler"
	"menucraft/internal/infra/db"
	infraRepo "menucraft/internal/infra/repository"
	"menucraft/internal/middleware"
	"menucraft/internal/realtime"
	"menucraft/internal/server"
	"menucraft/internal/usecase"
	"menucraft/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

// キッチン/管理者トークン（24h）
func newJWTIssuer(cfg config.Config) *jwtIssuer {
	return &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 24 * time.Hour,
	}
}

func (i *jwtIssuer) Issue(userID int64, restaurantID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":           userID,
		"restaurant_id": restaurantID,
		"role":          string(role),
		"iat":           now.Unix(),
		"exp":           expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無ければ無いでいい（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//ログ設定（devはconsole / prodはJSON）
	var log zerolog.Logger
	if cfg.GoEnv == "dev" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.Restaurant{},
		&model.User{},
		&model.Menu{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	//Repository（GORM実装）生成
	restaurantRepo := infraRepo.NewRestaurantGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuGormRepository(gormDB)
	menuItemRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := newJWTIssuer(cfg)

	//リアルタイム配信
	hub := realtime.NewHub(log.With().Str("component", "hub").Logger())
	publisher := realtime.NewOrderPublisher(hub)
	tokenVerifier := middleware.NewTokenVerifierJWT(cfg)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(restaurantRepo, userRepo, verifier, issuer, clock)
	restaurantUC := usecase.NewRestaurantUsecase(
		txManager, restaurantRepo, menuRepo, menuItemRepo, hasher, clock,
		cfg.OrderingBaseURL, cfg.KitchenBaseURL,
	)
	menuUC := usecase.NewMenuUsecase(txManager, restaurantRepo, clock)
	orderUC := usecase.NewOrderUsecase(
		txManager, restaurantRepo, validator.NewOrderValidator(), publisher, clock,
	)

	//Handler生成＋ルート登録
	e := server.New(log)
	handler.NewAuthHandler(authUC).RegisterRoutes(e)
	handler.NewRestaurantHandler(restaurantUC).RegisterRoutes(e)
	handler.NewMenuHandler(menuUC).RegisterRoutes(e, cfg)
	handler.NewOrderHandler(orderUC).RegisterRoutes(e, cfg)
	handler.NewWSHandler(hub, tokenVerifier, log.With().Str("component", "ws").Logger()).RegisterRoutes(e)

	//Server起動
	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
