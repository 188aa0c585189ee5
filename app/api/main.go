package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/database/mongoclient"
	"github.com/mintmarket/goapi/base/database/redisclient"
	"github.com/mintmarket/goapi/base/log"
	"github.com/mintmarket/goapi/base/metrics"
	bValidator "github.com/mintmarket/goapi/base/validator"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/token"
	mmiddleware "github.com/mintmarket/goapi/middleware"
	"github.com/mintmarket/goapi/service/pinata"
	"github.com/mintmarket/goapi/service/query"
	"github.com/mintmarket/goapi/service/redis"
	auth_delivery "github.com/mintmarket/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/mintmarket/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/mintmarket/goapi/stores/auth/usecase"
	bank_delivery "github.com/mintmarket/goapi/stores/bank/delivery/http"
	bank_repository "github.com/mintmarket/goapi/stores/bank/repository"
	bank_usecase "github.com/mintmarket/goapi/stores/bank/usecase"
	event_delivery "github.com/mintmarket/goapi/stores/event/delivery/http"
	event_repository "github.com/mintmarket/goapi/stores/event/repository"
	event_usecase "github.com/mintmarket/goapi/stores/event/usecase"
	file_delivery "github.com/mintmarket/goapi/stores/file/delivery/http"
	file_usecase "github.com/mintmarket/goapi/stores/file/usecase"
	hc_delivery "github.com/mintmarket/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/mintmarket/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/mintmarket/goapi/stores/healthcheck/usecase"
	market_delivery "github.com/mintmarket/goapi/stores/market/delivery/http"
	market_repository "github.com/mintmarket/goapi/stores/market/repository"
	market_usecase "github.com/mintmarket/goapi/stores/market/usecase"
	registry_delivery "github.com/mintmarket/goapi/stores/registry/delivery/http"
	registry_repository "github.com/mintmarket/goapi/stores/registry/repository"
	registry_usecase "github.com/mintmarket/goapi/stores/registry/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	pinataService := pinata.New(viper.GetString("pinata.apiKey"), viper.GetString("pinata.apiSecret"))

	gatewayUri := viper.GetString("ipfsUri")

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	tokenRepo := registry_repository.NewTokenRepo(q)
	listingRepo := market_repository.NewListingRepo(q)
	marketConfigRepo := market_repository.NewConfigRepo(q)
	bankRepo := bank_repository.NewBankRepo(q)
	eventRepo := event_repository.NewEventRepo(q)

	hc := hc_usecase.New(hcRepo)
	file := file_usecase.New(pinataService)
	bank := bank_usecase.NewBankUsecase(bankRepo)
	event := event_usecase.NewEventUsecase(eventRepo)

	// each configured contract gets its own registry usecase sharing the
	// token repository
	registries := viper.Sub("registries")
	registryUsecases := make(map[domain.Address]token.Usecase)
	marketRegistries := make(map[domain.Address]token.Registry)
	for k := range registries.AllSettings() {
		contract := domain.Address(registries.GetString(fmt.Sprintf("%s.contract", k))).ToLower()
		owner := domain.Address(registries.GetString(fmt.Sprintf("%s.owner", k))).ToLower()
		reg := registry_usecase.NewTokenUsecase(registry_usecase.RegistryCfg{
			Contract:   contract,
			Owner:      owner,
			GatewayUri: gatewayUri,
		}, tokenRepo, eventRepo, q)
		registryUsecases[contract] = reg
		marketRegistries[contract] = reg
	}

	market := market_usecase.NewMarketUsecase(market_usecase.MarketCfg{
		Owner:         domain.Address(viper.GetString("market.owner")),
		MarketAddress: domain.Address(viper.GetString("market.address")),
	}, marketRegistries, listingRepo, marketConfigRepo, bankRepo, eventRepo, q)

	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	authMiddleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	registry_delivery.New(e, registryUsecases, authMiddleware)
	market_delivery.New(e, market, authMiddleware)
	bank_delivery.New(e, bank, authMiddleware)
	event_delivery.New(e, event)
	file_delivery.New(e, file, authMiddleware)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, authMiddleware.Auth())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
