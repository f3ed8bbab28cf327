package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotel_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hotel_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	reservationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotel_reservation_transitions_total",
		Help: "Reservation lifecycle transitions by resulting status",
	}, []string{"status"})

	bookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotel_booking_conflicts_total",
		Help: "Reservation attempts rejected because the room was not bookable",
	})

	roomAvailabilityChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotel_room_availability_changes_total",
		Help: "Room availability changes by target state",
	}, []string{"availability"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveReservation counts a reservation entering status.
func ObserveReservation(status string) {
	reservationTransitions.WithLabelValues(status).Inc()
}

func ObserveBookingConflict() {
	bookingConflicts.Inc()
}

func ObserveRoomAvailability(availability string) {
	roomAvailabilityChanges.WithLabelValues(availability).Inc()
}
