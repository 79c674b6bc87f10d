package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/resistor-color/api/api"
	"github.com/resistor-color/api/datastore"
	"github.com/resistor-color/api/migrations"
	"github.com/resistor-color/api/scheduler"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := api.Config{
		HTTPPort:             getEnv("HTTP_PORT", ":8080"),
		StoreType:            getEnv("STORE_TYPE", "memory"),
		DatabaseUser:         getEnv("DB_USER", "postgres"),
		DatabasePassword:     getEnv("DB_PASSWORD", ""),
		DatabaseName:         getEnv("DB_NAME", "resistor"),
		DatabaseHost:         getEnv("DB_HOST", "localhost"),
		SSLMode:              getEnv("SSL_MODE", "disable"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisUsername:        getEnv("REDIS_USERNAME", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		JwtSecret:            getEnv("JWT_SECRET", "your-secret-key-change-this"),
		JwtAccessDuration:    getEnvInt("JWT_ACCESS_DURATION", 3600), // 1 hour
		OperatorPasswordHash: getEnv("OPERATOR_PASSWORD_HASH", ""),
		AllowedOrigins:       getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		DevMode:              getEnvBool("DEV_MODE", true),
		SnapshotHour:         getEnvInt("SNAPSHOT_HOUR", 0),
	}

	store, closer, err := openStore(config)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", config.StoreType, err)
	}
	if closer != nil {
		defer closer.Close()
	}

	customColorRepo, err := datastore.NewCustomColorDatabase(store)
	if err != nil {
		log.Fatalf("Failed to create custom color repository: %v", err)
	}

	app := api.NewApplication(config, customColorRepo)
	if config.OperatorPasswordHash == "" {
		log.Println("OPERATOR_PASSWORD_HASH is empty, learn endpoints are open")
	}

	// Daily snapshot of the learned colors
	snapshotScheduler := scheduler.NewScheduler(customColorRepo, config.SnapshotHour)
	if store != nil {
		snapshotScheduler.Start()
	}

	mux := http.NewServeMux()

	log.Println("Resistor Color API Starting...")
	if err := app.Serve(mux, snapshotScheduler.Stop); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// openStore returns the KV store selected by STORE_TYPE and whatever must be closed on exit
func openStore(config api.Config) (datastore.KVStore, io.Closer, error) {
	switch strings.ToLower(config.StoreType) {
	case "", "memory":
		log.Println("Using in-memory custom color store, learned colors are lost on restart")
		return datastore.NewMemoryKV(), nil, nil

	case "none":
		log.Println("No custom color store configured, learning is disabled")
		return nil, nil, nil

	case "postgres":
		connStr := datastore.BuildDBConnStr(
			config.DatabasePassword,
			config.DatabaseUser,
			config.DatabaseHost,
			config.DatabaseName,
			config.SSLMode,
		)
		dbConn, err := datastore.NewDB("postgres", connStr)
		if err != nil {
			return nil, nil, err
		}

		log.Println("Running database migrations...")
		if err := migrations.RunMigrations(dbConn); err != nil {
			dbConn.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %v", err)
		}

		kv, err := datastore.NewPostgresKV(dbConn)
		if err != nil {
			dbConn.Close()
			return nil, nil, err
		}
		return kv, dbConn, nil

	case "redis":
		kv := datastore.NewRedisKV(datastore.RedisParameters{
			Addr:     config.RedisAddr,
			Username: config.RedisUsername,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := kv.Ping(ctx); err != nil {
			kv.Close()
			return nil, nil, err
		}
		return kv, kv, nil
	}

	return nil, nil, fmt.Errorf("unknown STORE_TYPE %q", config.StoreType)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

func getEnvSlice(key, defaultValue string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return strings.Split(value, ",")
}
