// Package http provides http transport for babies and members
package http

import (
	stdhttp "net/http"

	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/services/api/babies/domain"
	svc "babyfood/internal/services/api/babies/service"
)

// Register mounts baby endpoints; callers wrap r with auth
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Post("/", httpkit.JSON(h.create))
	r.Get("/", httpkit.Call(h.list))

	r.Route("/{"+httpkit.BabyParam+"}", func(br httpkit.Router) {
		br.Use(httpkit.ScopeBaby)

		br.Get("/", httpkit.Call(h.get))
		br.Patch("/", httpkit.JSON(h.update))
		br.Delete("/", httpkit.Call(h.remove))

		br.Get("/members", httpkit.Call(h.members))
		br.Delete("/members/{userID}", httpkit.Call(h.removeMember))
		br.Post("/leave", httpkit.Call(h.leave))
	})
}

type handlers struct{ svc svc.Service }

// @Summary Create a baby
// @Tags Babies
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Baby"
// @Success 201 {object} domain.Baby "created"
// @Router /babies [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	b, err := h.svc.Create(r.Context(), uid, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(b), nil
}

// @Summary List the caller's babies
// @Tags Babies
// @Produce json
// @Success 200 {array} domain.Baby "ok"
// @Router /babies [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), uid)
}

// @Summary Get a baby
// @Tags Babies
// @Produce json
// @Param babyID path string true "Baby id"
// @Success 200 {object} domain.Baby "ok"
// @Router /babies/{babyID} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), httpkit.Baby(r), uid)
}

// @Summary Rename a baby or change its zone
// @Tags Babies
// @Accept json
// @Produce json
// @Param babyID path string true "Baby id"
// @Param payload body domain.UpdateInput true "Changes"
// @Success 200 {object} domain.Baby "ok"
// @Router /babies/{babyID} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), httpkit.Baby(r), uid, in)
}

// @Summary Delete a baby
// @Tags Babies
// @Param babyID path string true "Baby id"
// @Success 204 "deleted"
// @Router /babies/{babyID} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), httpkit.Baby(r), uid); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// @Summary List caregivers
// @Tags Babies
// @Produce json
// @Param babyID path string true "Baby id"
// @Success 200 {array} domain.Member "ok"
// @Router /babies/{babyID}/members [get]
func (h *handlers) members(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Members(r.Context(), httpkit.Baby(r), uid)
}

// @Summary Remove a caregiver
// @Tags Babies
// @Param babyID path string true "Baby id"
// @Param userID path string true "Member user id"
// @Success 204 "removed"
// @Router /babies/{babyID}/members/{userID} [delete]
func (h *handlers) removeMember(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	memberID, err := httpkit.UUIDParam(r, "userID")
	if err != nil {
		return nil, err
	}
	if err := h.svc.RemoveMember(r.Context(), httpkit.Baby(r), uid, memberID); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// @Summary Leave a baby
// @Tags Babies
// @Param babyID path string true "Baby id"
// @Success 204 "left"
// @Router /babies/{babyID}/leave [post]
func (h *handlers) leave(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Leave(r.Context(), httpkit.Baby(r), uid); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
