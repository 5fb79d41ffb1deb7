// Package http provides http transport for invitations
package http

import (
	stdhttp "net/http"

	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/platform/net/middleware"
	"babyfood/internal/services/api/invites/domain"
	svc "babyfood/internal/services/api/invites/service"
)

// RegisterBaby mounts the owner endpoints under /babies/{babyID}/invitations
func RegisterBaby(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Use(httpkit.ScopeBaby)
	r.Post("/", httpkit.JSON(h.create))
	r.Get("/", httpkit.Call(h.list))
	r.Delete("/{invitationID}", httpkit.Call(h.revoke))
}

// RegisterToken mounts the invitee endpoints under /invitations; only accept needs auth
func RegisterToken(r httpkit.Router, s svc.Service, auth middleware.AuthPort) {
	h := &handlers{svc: s}

	r.Get("/{token}", httpkit.Call(h.lookup))
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		pr.Post("/{token}/accept", httpkit.Call(h.accept))
	})
}

type handlers struct{ svc svc.Service }

// @Summary Invite a caregiver by email
// @Tags Invitations
// @Accept json
// @Produce json
// @Param babyID path string true "Baby id"
// @Param payload body domain.CreateInput true "Invitee"
// @Success 201 {object} domain.Invitation "created"
// @Failure 409 {object} httpkit.Envelope "pending invitation exists"
// @Router /babies/{babyID}/invitations [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	inv, err := h.svc.Create(r.Context(), httpkit.Baby(r), uid, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(inv), nil
}

// @Summary List pending invitations
// @Tags Invitations
// @Produce json
// @Param babyID path string true "Baby id"
// @Success 200 {array} domain.Invitation "ok"
// @Router /babies/{babyID}/invitations [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), httpkit.Baby(r), uid)
}

// @Summary Revoke a pending invitation
// @Tags Invitations
// @Param babyID path string true "Baby id"
// @Param invitationID path string true "Invitation id"
// @Success 204 "revoked"
// @Router /babies/{babyID}/invitations/{invitationID} [delete]
func (h *handlers) revoke(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.UUIDParam(r, "invitationID")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Revoke(r.Context(), httpkit.Baby(r), uid, id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// @Summary Preview an invitation
// @Tags Invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} domain.Preview "ok"
// @Failure 410 {object} httpkit.Envelope "expired"
// @Router /invitations/{token} [get]
func (h *handlers) lookup(r *stdhttp.Request) (any, error) {
	token, err := httpkit.UUIDParam(r, "token")
	if err != nil {
		return nil, err
	}
	return h.svc.Lookup(r.Context(), token)
}

// @Summary Accept an invitation
// @Tags Invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} domain.Accepted "joined"
// @Failure 410 {object} httpkit.Envelope "no longer pending"
// @Router /invitations/{token}/accept [post]
func (h *handlers) accept(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	token, err := httpkit.UUIDParam(r, "token")
	if err != nil {
		return nil, err
	}
	return h.svc.Accept(r.Context(), token, uid)
}
