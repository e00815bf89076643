package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"assetVerse/internal/config"
	"assetVerse/internal/handlers"
	"assetVerse/internal/repositories"
	"assetVerse/internal/services"
	"assetVerse/utils"
)

type application struct {
	errorLog           *log.Logger
	infoLog            *log.Logger
	db                 *sql.DB
	verifier           services.TokenVerifier
	limiter            *rateLimiter
	wsManager          *WebSocketManager
	userHandler        *handlers.UserHandler
	assetHandler       *handlers.AssetHandler
	requestHandler     *handlers.RequestHandler
	assignmentHandler  *handlers.AssignmentHandler
	affiliationHandler *handlers.AffiliationHandler
	paymentHandler     *handlers.PaymentHandler
}

func initializeApp(cfg config.Config, db *sql.DB, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	assetRepo := repositories.AssetRepository{DB: db}
	requestRepo := repositories.RequestRepository{DB: db}
	assignmentRepo := repositories.AssignmentRepository{DB: db}
	affiliationRepo := repositories.AffiliationRepository{DB: db}
	paymentRepo := repositories.PaymentRepository{DB: db}
	packageRepo := repositories.PackageRepository{DB: db}

	// Services
	userService := &services.UserService{UserRepo: &userRepo}
	assetService := &services.AssetService{AssetRepo: &assetRepo, UserRepo: &userRepo}
	requestService := &services.RequestService{RequestRepo: &requestRepo, AssetRepo: &assetRepo, UserRepo: &userRepo}
	affiliationService := &services.AffiliationService{AffiliationRepo: &affiliationRepo, UserRepo: &userRepo}
	approvalService := &services.ApprovalService{
		DB:              db,
		UserRepo:        &userRepo,
		AssetRepo:       &assetRepo,
		RequestRepo:     &requestRepo,
		AssignmentRepo:  &assignmentRepo,
		AffiliationRepo: &affiliationRepo,
	}
	checkoutService := &services.CheckoutService{
		MerchantLogin: cfg.Checkout.MerchantLogin,
		Password1:     cfg.Checkout.Password1,
		Password2:     cfg.Checkout.Password2,
		BaseURL:       cfg.Checkout.BaseURL,
		IsTest:        cfg.Checkout.IsTest,
	}
	paymentService := &services.PaymentService{
		Checkout:    checkoutService,
		PaymentRepo: &paymentRepo,
		PackageRepo: &packageRepo,
		UserRepo:    &userRepo,
	}

	wsManager := NewWebSocketManager()

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	assetHandler := &handlers.AssetHandler{Service: assetService}
	requestHandler := &handlers.RequestHandler{Service: requestService, Approval: approvalService, Notifier: wsManager}
	assignmentHandler := &handlers.AssignmentHandler{AssignmentRepo: &assignmentRepo, UserRepo: &userRepo}
	affiliationHandler := &handlers.AffiliationHandler{Service: affiliationService}
	paymentHandler := &handlers.PaymentHandler{Service: paymentService}

	return &application{
		errorLog:           errorLog,
		infoLog:            infoLog,
		db:                 db,
		verifier:           buildVerifier(cfg, errorLog),
		limiter:            newRateLimiter(rate.Limit(20), 40),
		wsManager:          wsManager,
		userHandler:        userHandler,
		assetHandler:       assetHandler,
		requestHandler:     requestHandler,
		assignmentHandler:  assignmentHandler,
		affiliationHandler: affiliationHandler,
		paymentHandler:     paymentHandler,
	}
}

// buildVerifier picks the identity backend. Firebase is the production path;
// the local JWT manager covers environments without Firebase credentials.
// When Redis is configured, verified tokens are cached in front of either.
func buildVerifier(cfg config.Config, errorLog *log.Logger) services.TokenVerifier {
	var verifier services.TokenVerifier

	if cfg.Auth.FirebaseCredentials != "" {
		fv, err := services.NewFirebaseVerifier(context.Background(), cfg.Auth.FirebaseCredentials)
		if err != nil {
			errorLog.Fatalf("firebase init: %v", err)
		}
		verifier = fv
	} else {
		manager, err := utils.NewManager(cfg.Auth.SigningKey)
		if err != nil {
			errorLog.Fatalf("token manager init: %v", err)
		}
		verifier = &services.LocalVerifier{Manager: manager}
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		verifier = &services.CachedVerifier{Next: verifier, Redis: client, TTL: 5 * time.Minute}
	}
	return verifier
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}
