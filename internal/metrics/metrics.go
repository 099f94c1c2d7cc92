package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "scouting_http_requests_total", Help: "HTTP requests by method and status"},
		[]string{"method", "status"},
	)
	TeamsRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "scouting_teams_registered_total", Help: "Teams registered"},
	)
	MatchesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "scouting_matches_recorded_total", Help: "Match records created"},
	)
	SessionsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "scouting_sessions_purged_total", Help: "Expired sessions removed by the cleanup job"},
	)
)

func Register() {
	prometheus.MustRegister(RequestsTotal, TeamsRegistered, MatchesRecorded, SessionsPurged)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
