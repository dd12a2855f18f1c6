package main

import (
	"DataKeeper/internal/config"
	"DataKeeper/internal/crypto"
	"DataKeeper/internal/handlers"
	"DataKeeper/internal/middleware"
	"DataKeeper/internal/repo"
	"DataKeeper/internal/service"
	"net/http"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	// Ключевой материал: без валидного ключа сервер не стартует.
	cipher, err := buildCipher(cfg, sugar)
	if err != nil {
		sugar.Fatalw("encryption key rejected", "error", err)
	}

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	hasher := crypto.NewHasher()

	credentialRepo := repo.NewCredentialRepository(gormDB)
	contactRepo := repo.NewContactRepository(gormDB)
	noteRepo := repo.NewNoteRepository(gormDB)
	taskRepo := repo.NewTaskRepository(gormDB)
	rateRepo := repo.NewRateLimitRepository(gormDB)

	credentialService := service.NewCredentialService(credentialRepo, cipher, hasher, sugar)
	contactService := service.NewContactService(contactRepo, sugar)
	noteService := service.NewNoteService(noteRepo, sugar)
	taskService := service.NewTaskService(taskRepo, sugar)

	limiter := middleware.NewRateLimiter(
		rateRepo,
		cfg.RateLimit,
		time.Duration(cfg.RateWindowSeconds)*time.Second,
	)

	h := handlers.NewHandler(
		credentialService,
		contactService,
		noteService,
		taskService,
		limiter,
		sugar,
		cfg,
	)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"DatabaseDSN", cfg.DatabaseDSN,
		"RateLimit", cfg.RateLimit,
		"RateWindowSeconds", cfg.RateWindowSeconds,
		"Debug", cfg.Debug,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}

// buildCipher собирает шифратор из ключа конфигурации. В обычном режиме ключ
// обязан быть ровно 32 байта; режим совместимости выравнивает ключ и
// предупреждает в логе.
func buildCipher(cfg *config.Config, sugar *zap.SugaredLogger) (*crypto.Cipher, error) {
	if cfg.EncryptionKeyCompat {
		sugar.Warnw("encryption key compat mode: key will be padded or truncated to 32 bytes")
		return crypto.NewCipherCompat([]byte(cfg.EncryptionKey))
	}
	return crypto.NewCipher([]byte(cfg.EncryptionKey))
}
