// Package http provides http transport for the food library
package http

import (
	stdhttp "net/http"

	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/platform/net/http/bind"
	"babyfood/internal/services/api/foods/domain"
	svc "babyfood/internal/services/api/foods/service"
)

// Register mounts food endpoints under a baby-scoped router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Post("/", httpkit.JSON(h.create))
	r.Get("/", httpkit.Call(h.list))
	r.Delete("/{foodID}", httpkit.Call(h.remove))
	r.Put("/{foodID}/dismissed", httpkit.JSON(h.dismiss))
}

type handlers struct{ svc svc.Service }

// @Summary Add a food to the library
// @Tags Foods
// @Accept json
// @Produce json
// @Param babyID path string true "Baby id"
// @Param payload body domain.CreateInput true "Food"
// @Success 201 {object} domain.Food "created"
// @Failure 409 {object} httpkit.Envelope "name taken"
// @Router /babies/{babyID}/foods [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	f, err := h.svc.Create(r.Context(), httpkit.Baby(r), uid, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(f), nil
}

// @Summary List the food library
// @Tags Foods
// @Produce json
// @Param babyID path string true "Baby id"
// @Param category query string false "Only foods in this category"
// @Success 200 {array} domain.Food "ok"
// @Router /babies/{babyID}/foods [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	in := domain.ListInput{Category: httpkit.Query(r, "category")}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), httpkit.Baby(r), uid, in)
}

// @Summary Delete a food and its logs
// @Tags Foods
// @Param babyID path string true "Baby id"
// @Param foodID path string true "Food id"
// @Success 204 "deleted"
// @Router /babies/{babyID}/foods/{foodID} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.UUIDParam(r, "foodID")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), httpkit.Baby(r), uid, id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// @Summary Hide or restore a food in statistics
// @Tags Foods
// @Accept json
// @Param babyID path string true "Baby id"
// @Param foodID path string true "Food id"
// @Param payload body domain.DismissInput true "Flag"
// @Success 204 "updated"
// @Router /babies/{babyID}/foods/{foodID}/dismissed [put]
func (h *handlers) dismiss(r *stdhttp.Request, in domain.DismissInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.UUIDParam(r, "foodID")
	if err != nil {
		return nil, err
	}
	if err := h.svc.SetDismissed(r.Context(), httpkit.Baby(r), uid, id, in.Dismissed); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
