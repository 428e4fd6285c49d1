package httpapi

import "github.com/yourplaces/backend/internal/server/models"

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Image    string `json:"image"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createPlaceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required,min=5"`
	Address     string `json:"address" binding:"required"`
	Image       string `json:"image"`
}

type updatePlaceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required,min=5"`
}

type authResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type locationDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type userDTO struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Image  string   `json:"image,omitempty"`
	Places []string `json:"places"`
}

type placeDTO struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Address     string      `json:"address"`
	Location    locationDTO `json:"location"`
	Image       string      `json:"image,omitempty"`
	Creator     string      `json:"creator"`
}

func toUserDTO(u *models.User) userDTO {
	places := u.PlaceIDs
	if places == nil {
		places = []string{}
	}
	return userDTO{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Image:  u.ImageKey,
		Places: places,
	}
}

func toPlaceDTO(p *models.Place) placeDTO {
	return placeDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		Location:    locationDTO{Lat: p.Lat, Lng: p.Lng},
		Image:       p.ImageKey,
		Creator:     p.CreatorID,
	}
}
