package handler

import (
	"time"

	"github.com/tastecraft/menu-studio/internal/core/domain"
	"github.com/tastecraft/menu-studio/internal/core/ports"
)

func toCreateMenuInput(req createMenuRequest) ports.CreateMenuInput {
	in := ports.CreateMenuInput{
		Title:       req.Title,
		Description: req.Description,
	}
	for _, d := range req.Dishes {
		in.Dishes = append(in.Dishes, ports.DishInput{
			Name:        d.Name,
			Description: d.Description,
			Section:     d.Section,
			Bitter:      d.Bitter,
			Salty:       d.Salty,
			Sour:        d.Sour,
			Sweet:       d.Sweet,
			Umami:       d.Umami,
			Fat:         d.Fat,
			Piquant:     d.Piquant,
			Temperature: d.Temperature,
			Colors:      d.Colors,
			EmotionIDs:  d.EmotionIDs,
			TextureIDs:  d.TextureIDs,
			ShapeIDs:    d.ShapeIDs,
		})
	}
	return in
}

func toMenuResponse(m domain.Menu) menuResponse {
	return menuResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      string(m.Status),
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toMenuResponses(menus []domain.Menu) []menuResponse {
	out := make([]menuResponse, 0, len(menus))
	for _, m := range menus {
		out = append(out, toMenuResponse(m))
	}
	return out
}

func toMenuDetailResponse(detail *ports.MenuDetail) menuDetailResponse {
	resp := menuDetailResponse{
		menuResponse: toMenuResponse(detail.Menu),
		Dishes:       make([]dishResponse, 0, len(detail.Dishes)),
	}
	for _, d := range detail.Dishes {
		resp.Dishes = append(resp.Dishes, toDishResponse(d))
	}
	return resp
}

func toDishResponse(d domain.Dish) dishResponse {
	var colors []string
	for _, c := range []string{d.Color1, d.Color2, d.Color3} {
		if c != "" {
			colors = append(colors, c)
		}
	}
	return dishResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Section:     d.Section,
		Bitter:      d.Bitter,
		Salty:       d.Salty,
		Sour:        d.Sour,
		Sweet:       d.Sweet,
		Umami:       d.Umami,
		Fat:         d.Fat,
		Piquant:     d.Piquant,
		Temperature: d.Temperature,
		Colors:      colors,
		EmotionIDs:  d.EmotionIDs,
		TextureIDs:  d.TextureIDs,
		ShapeIDs:    d.ShapeIDs,
	}
}
