package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourplaces/backend/internal/server/services"
)

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c)
		return
	}

	user, token, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Image)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{UserID: user.ID, Email: user.Email, Token: token})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c)
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{UserID: user.ID, Email: user.Email, Token: token})
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (s *Server) getPlace(c *gin.Context) {
	place, err := s.places.GetByID(c.Request.Context(), c.Param("pid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"place": toPlaceDTO(place)})
}

func (s *Server) listUserPlaces(c *gin.Context) {
	places, err := s.places.ListByUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]placeDTO, 0, len(places))
	for _, p := range places {
		out = append(out, toPlaceDTO(p))
	}
	c.JSON(http.StatusOK, gin.H{"places": out})
}

func (s *Server) createPlace(c *gin.Context) {
	var req createPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c)
		return
	}

	place, err := s.places.Create(c.Request.Context(), c.GetString(userIDKey), services.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		ImageKey:    req.Image,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"place": toPlaceDTO(place)})
}

func (s *Server) updatePlace(c *gin.Context) {
	var req updatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c)
		return
	}

	place, err := s.places.Update(c.Request.Context(), c.GetString(userIDKey), c.Param("pid"), req.Title, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"place": toPlaceDTO(place)})
}

func (s *Server) deletePlace(c *gin.Context) {
	if err := s.places.Delete(c.Request.Context(), c.GetString(userIDKey), c.Param("pid")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted place."})
}

// presignUpload hands the client a short-lived PUT URL; the image bytes never
// pass through this server.
func (s *Server) presignUpload(c *gin.Context) {
	key, url, err := s.images.PresignPutURL(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}
