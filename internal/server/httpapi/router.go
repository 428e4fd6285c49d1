package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	usersGroup := api.Group("/users")
	usersGroup.GET("", s.listUsers)
	usersGroup.POST("/signup", s.signup)
	usersGroup.POST("/login", s.login)
	usersGroup.GET("/:uid/places", s.listUserPlaces)

	placesGroup := api.Group("/places")
	placesGroup.GET("/:pid", s.getPlace)

	authed := api.Group("")
	authed.Use(s.requireAuth())
	authed.POST("/places", s.createPlace)
	authed.PATCH("/places/:pid", s.updatePlace)
	authed.DELETE("/places/:pid", s.deletePlace)
	authed.POST("/uploads", s.presignUpload)

	return r
}
