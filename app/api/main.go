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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/database/mongoclient"
	"github.com/x-xyz/gosale/base/database/redisclient"
	"github.com/x-xyz/gosale/base/log"
	"github.com/x-xyz/gosale/base/metrics"
	bValidator "github.com/x-xyz/gosale/base/validator"
	"github.com/x-xyz/gosale/domain/listing"
	mmiddleware "github.com/x-xyz/gosale/middleware"
	rediscache "github.com/x-xyz/gosale/service/cache/provider/redis"
	"github.com/x-xyz/gosale/service/chain"
	"github.com/x-xyz/gosale/service/chain/contract"
	"github.com/x-xyz/gosale/service/notifier"
	"github.com/x-xyz/gosale/service/query"
	"github.com/x-xyz/gosale/service/redis"
	auth_delivery "github.com/x-xyz/gosale/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/gosale/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/gosale/stores/auth/usecase"
	escrow_delivery "github.com/x-xyz/gosale/stores/escrow/delivery/http"
	escrow_repository "github.com/x-xyz/gosale/stores/escrow/repository"
	escrow_usecase "github.com/x-xyz/gosale/stores/escrow/usecase"
	hc_delivery "github.com/x-xyz/gosale/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/gosale/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/gosale/stores/healthcheck/usecase"
	listing_delivery "github.com/x-xyz/gosale/stores/listing/delivery/http"
	listing_repository "github.com/x-xyz/gosale/stores/listing/repository"
	listing_usecase "github.com/x-xyz/gosale/stores/listing/usecase"
	marketplace_delivery "github.com/x-xyz/gosale/stores/marketplace/delivery/http"
	marketplace_repository "github.com/x-xyz/gosale/stores/marketplace/repository"
	marketplace_usecase "github.com/x-xyz/gosale/stores/marketplace/usecase"
	paytoken_repository "github.com/x-xyz/gosale/stores/paytoken/repository"
	settlement_usecase "github.com/x-xyz/gosale/stores/settlement/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
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
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	// init chain service
	networks := viper.Sub("networks")
	netKeys := networks.AllSettings()
	rpcs := make(map[int32]string)
	for k := range netKeys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		rpcs[chainId] = rpcUrl
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:   rpcs,
		SignerKey: viper.GetString("vault.signerKey"),
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}

	primaryChainId := viper.GetInt32("vault.chainId")
	asset := contract.NewVaultTransfer(chainService)
	payment := contract.NewErc20Payment(chainService, primaryChainId)
	royalty := contract.NewEip2981Royalty(chainService, rediscache.NewRedis(redisCache))
	registry := contract.NewSellerRegistry(chainService, primaryChainId)
	verifier := contract.NewIdentityVerifier(chainService, primaryChainId)
	oracle := contract.NewPriceOracle(chainService, primaryChainId, viper.GetString("vault.priceOracle"))
	deliverer := contract.NewLazyDeliverer(chainService)

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	listingRepo := listing_repository.NewListingRepo(q)
	offerRepo := listing_repository.NewOfferRepo(q)
	activityRepo := listing_repository.NewActivityRepo(q)
	escrowRepo := escrow_repository.NewEscrowRepo(q)
	marketplaceRepo := marketplace_repository.NewMarketplaceRepo(q)
	paytokenRepo := paytoken_repository.NewPayTokenRepo(q)

	hc := hc_usecase.New(hcRepo)
	escrow := escrow_usecase.New(&escrow_usecase.EscrowUseCaseCfg{
		EscrowRepo:   escrowRepo,
		Payment:      payment,
		ActivityRepo: activityRepo,
	})
	marketplace := marketplace_usecase.New(&marketplace_usecase.MarketplaceUseCaseCfg{
		MarketplaceRepo: marketplaceRepo,
		Payment:         payment,
	})
	settlement := settlement_usecase.New(&settlement_usecase.SettlementUseCaseCfg{
		Payment:       payment,
		Royalty:       royalty,
		EscrowUC:      escrow,
		MarketplaceUC: marketplace,
	})

	var notify listing.Notifier
	if botKey := viper.GetString("discord.botKey"); botKey != "" {
		notify, err = notifier.NewDiscordNotifier(notifier.DiscordNotifierCfg{
			BotKey:    botKey,
			ChannelId: viper.GetString("discord.channelId"),
			Paytoken:  paytokenRepo,
		})
		if err != nil {
			context.WithField("err", err).Warn("discord notifier disabled")
			notify = nil
		}
	}

	listingUC := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo:   listingRepo,
		OfferRepo:     offerRepo,
		ActivityRepo:  activityRepo,
		PayTokenRepo:  paytokenRepo,
		MarketplaceUC: marketplace,
		SettlementUC:  settlement,
		EscrowUC:      escrow,
		Asset:         asset,
		Payment:       payment,
		Registry:      registry,
		Verifier:      verifier,
		Oracle:        oracle,
		Deliverer:     deliverer,
		Notifier:      notify,
	})

	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetDuration("auth.tokenTtl"))
	adminAddresses := viper.GetStringSlice("admin.addresses")
	authMiddleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	listing_delivery.New(e, listingUC, authMiddleware)
	escrow_delivery.New(e, escrow, authMiddleware)
	marketplace_delivery.New(e, marketplace, authMiddleware)

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
