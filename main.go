package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"journey-map/api"
	"journey-map/config"
	"journey-map/journey"
	"journey-map/storage"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	ingestDB := &storage.MongoIngestStore{Log: logger}
	if err := ingestDB.Connect(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection); err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer ingestDB.Close()

	archive, err := storage.OpenJourneyArchive(cfg.ArchivePath)
	if err != nil {
		logger.Fatal("failed to open journey archive", zap.Error(err))
	}
	defer archive.Close()

	var photoStorage storage.PhotoStorage
	switch cfg.StorageBackend {
	case "minio":
		photoStorage, err = storage.NewMinioPhotoStorage(
			cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey,
			cfg.Minio.Bucket, cfg.Minio.UseSSL, logger)
		if err != nil {
			logger.Fatal("failed to initialize MinIO storage", zap.Error(err))
		}
	default:
		photoStorage = &storage.LocalPhotoStorage{Directory: cfg.LocalDirectory, Log: logger}
	}

	handlers := &api.JourneyHandlers{
		Session:        &journey.Session{},
		Policy:         journey.NewYearPolicy(cfg.AcceptedYears...),
		Storage:        photoStorage,
		Ingest:         ingestDB,
		Archive:        archive,
		Log:            logger,
		SecretKey:      cfg.JWTSecret,
		PasswordHash:   cfg.PasswordHash,
		MaxUploadBytes: cfg.MaxUploadMB * 1024 * 1024,
	}

	router := mux.NewRouter()
	handlers.Register(router)

	logger.Info("starting server", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
