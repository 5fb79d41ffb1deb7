// Package http provides http transport for feeding logs
package http

import (
	stdhttp "net/http"
	"strings"

	"babyfood/internal/modkit/httpkit"
	perr "babyfood/internal/platform/errors"
	"babyfood/internal/services/api/foodlogs/domain"
	svc "babyfood/internal/services/api/foodlogs/service"
)

// Register mounts log endpoints under a baby-scoped router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Post("/", httpkit.JSON(h.create))
	r.Get("/", httpkit.Call(h.list))
	r.Patch("/{logID}", httpkit.JSON(h.update))
	r.Delete("/{logID}", httpkit.Call(h.remove))
}

type handlers struct{ svc svc.Service }

// @Summary Record a feeding
// @Tags Logs
// @Accept json
// @Produce json
// @Param babyID path string true "Baby id"
// @Param payload body domain.CreateInput true "Feeding"
// @Success 201 {object} domain.Log "created"
// @Router /babies/{babyID}/logs [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	l, err := h.svc.Create(r.Context(), httpkit.Baby(r), uid, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(l), nil
}

// @Summary List feedings in a range
// @Tags Logs
// @Produce json
// @Param babyID path string true "Baby id"
// @Param start query string true "Inclusive RFC 3339 start"
// @Param end query string true "Inclusive RFC 3339 end"
// @Param food_id query string false "Only this food"
// @Param reaction query string false "Comma separated reactions; none matches logs without one"
// @Success 200 {array} domain.Log "ok"
// @Router /babies/{babyID}/logs [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	f, err := filterFrom(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), httpkit.Baby(r), uid, f)
}

func filterFrom(r *stdhttp.Request) (domain.Filter, error) {
	var f domain.Filter
	start, err := httpkit.QueryTime(r, "start")
	if err != nil {
		return f, err
	}
	end, err := httpkit.QueryTime(r, "end")
	if err != nil {
		return f, err
	}
	if start != nil {
		f.Start = *start
	}
	if end != nil {
		f.End = *end
	}
	if f.FoodID, err = httpkit.QueryUUID(r, "food_id"); err != nil {
		return f, err
	}
	for _, s := range httpkit.QueryCSV(r, "reaction") {
		if strings.EqualFold(s, string(domain.NoReaction)) {
			f.Reactions = append(f.Reactions, domain.NoReaction)
			continue
		}
		rx, ok := domain.ParseReaction(s)
		if !ok {
			return f, perr.WithField(perr.InvalidArgf("unknown reaction %q", s), "reaction")
		}
		f.Reactions = append(f.Reactions, rx)
	}
	return f, nil
}

// @Summary Edit a feeding
// @Tags Logs
// @Accept json
// @Produce json
// @Param babyID path string true "Baby id"
// @Param logID path string true "Log id"
// @Param payload body domain.UpdateInput true "Changes"
// @Success 200 {object} domain.Log "ok"
// @Router /babies/{babyID}/logs/{logID} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.UUIDParam(r, "logID")
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), httpkit.Baby(r), uid, id, in)
}

// @Summary Delete a feeding
// @Tags Logs
// @Param babyID path string true "Baby id"
// @Param logID path string true "Log id"
// @Success 204 "deleted"
// @Router /babies/{babyID}/logs/{logID} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.UUIDParam(r, "logID")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), httpkit.Baby(r), uid, id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
