package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/resistor-color/api/datastore"
	"github.com/resistor-color/api/resistor"
)

type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	bandsDetected   prometheus.Histogram
	classifications *prometheus.CounterVec
	decodes         *prometheus.CounterVec
	learnedColors   prometheus.Counter
}

// CustomColorCollector reports the size of the learned color list at scrape time
type CustomColorCollector struct {
	countDesc *prometheus.Desc
	repo      datastore.CustomColorRepository
}

func (c *CustomColorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.countDesc
}

func (c *CustomColorCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	colors, err := c.repo.GetAll(ctx)
	if err != nil {
		log.Println(err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.countDesc, prometheus.GaugeValue, float64(len(colors)))
}

func NewCustomColorCollector(repo datastore.CustomColorRepository) *CustomColorCollector {
	return &CustomColorCollector{
		countDesc: prometheus.NewDesc("resistor_custom_colors", "Number of learned custom colors in the store", nil, nil),
		repo:      repo,
	}
}

// NewMetrics builds the metric set on its own registry so several applications can coexist in tests
func NewMetrics(repo datastore.CustomColorRepository) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resistor_requests_total",
			Help: "HTTP requests by endpoint and status code",
		}, []string{"endpoint", "code"}),
		bandsDetected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "resistor_bands_detected",
			Help:    "Bands found per edge detection request",
			Buckets: prometheus.LinearBuckets(0, 1, 9),
		}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resistor_classifications_total",
			Help: "Detected bands by color name",
		}, []string{"color"}),
		decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resistor_decode_total",
			Help: "Band sequence decodes by outcome",
		}, []string{"outcome"}),
		learnedColors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resistor_learned_colors_total",
			Help: "Custom colors taught through the learn endpoint",
		}),
	}

	m.registry.MustRegister(m.requests, m.bandsDetected, m.classifications, m.decodes, m.learnedColors)
	if repo != nil {
		m.registry.MustRegister(NewCustomColorCollector(repo))
	}
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(endpoint string, code int) {
	m.requests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}

// customColorLabel stands in for taught names outside the catalog so the color label stays bounded
const customColorLabel = "custom"

func (m *Metrics) observeBands(cat *resistor.Catalog, names []string) {
	m.bandsDetected.Observe(float64(len(names)))
	for _, name := range names {
		label := customColorLabel
		if ref, ok := cat.Lookup(name); ok {
			label = ref.Name
		}
		m.classifications.WithLabelValues(label).Inc()
	}
}

// observeDecode records "ok", "too_few" or "invalid"
func (m *Metrics) observeDecode(outcome string) {
	m.decodes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeLearned() {
	m.learnedColors.Inc()
}
