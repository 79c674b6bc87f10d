package api

import (
	"github.com/resistor-color/api/datastore"
	"github.com/resistor-color/api/resistor"
)

type Config struct {
	HTTPPort             string
	StoreType            string
	DatabaseUser         string
	DatabasePassword     string
	DatabaseName         string
	DatabaseHost         string
	SSLMode              string
	RedisAddr            string
	RedisUsername        string
	RedisPassword        string
	RedisDB              int
	JwtSecret            string
	JwtAccessDuration    int // seconds
	OperatorPasswordHash string
	AllowedOrigins       []string
	DevMode              bool
	SnapshotHour         int
}

type Application struct {
	Config          Config
	CustomColorRepo datastore.CustomColorRepository
	Classifier      resistor.Classifier
	Metrics         *Metrics
}

func NewApplication(config Config, repo datastore.CustomColorRepository) *Application {
	return &Application{
		Config:          config,
		CustomColorRepo: repo,
		Classifier:      resistor.DefaultClassifier,
		Metrics:         NewMetrics(repo),
	}
}

func (app *Application) catalog() *resistor.Catalog {
	if app.Classifier.Catalog == nil {
		return resistor.StandardCatalog
	}
	return app.Classifier.Catalog
}
