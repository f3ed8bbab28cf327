package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotel-reservation/controllers"
	"hotel-reservation/metrics"
	"hotel-reservation/middleware"
)

type Options struct {
	CORSOrigins []string
	APIKeyHash  string
}

func SetupRouter(
	rc *controllers.RoomController,
	gc *controllers.GuestController,
	resc *controllers.ReservationController,
	opts Options,
) *gin.Engine {
	controllers.RegisterValidation()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), metrics.HTTPMetricsMiddleware())

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.APIKeyHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", middleware.RequireAPIKey(opts.APIKeyHash))
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PATCH("/:id/availability", rc.ChangeAvailability)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", gc.GetGuests)
			// must stay ahead of /:id
			guests.GET("/cpf/:cpf", gc.GetGuestByCPF)
			guests.GET("/:id", gc.GetGuestByID)
			guests.POST("", gc.CreateGuest)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.PATCH("/:id", gc.UpdateGuest)
			guests.DELETE("/:id", gc.DeleteGuest)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", resc.GetReservations)
			reservations.POST("", resc.CreateReservation)
			reservations.GET("/:id", resc.GetReservation)
			reservations.PUT("/:id", resc.UpdateReservation)
			reservations.PATCH("/:id", resc.UpdateReservation)
			reservations.POST("/:id/confirm", resc.ConfirmReservation)
			reservations.POST("/:id/check-in", resc.CheckIn)
			reservations.POST("/:id/check-out", resc.CheckOut)
			reservations.DELETE("/:id", resc.CancelReservation)
		}
	}

	return r
}
