package handlers

import (
	"net/http"

	request "repairdesk/internal/adapter/http/dto/request"
	response "repairdesk/internal/adapter/http/dto/response"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

// UserHandler serves identity lookups, the technicians list and invites.
type UserHandler struct {
	roles       usecase.IRoleAuthority
	technicians usecase.ITechnicianUseCase
	invites     usecase.IInviteUseCase
}

func NewUserHandler(roles usecase.IRoleAuthority, technicians usecase.ITechnicianUseCase, invites usecase.IInviteUseCase) *UserHandler {
	return &UserHandler{roles: roles, technicians: technicians, invites: invites}
}

// Me godoc
// @Summary      The caller's identity and role
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.UserResponse
// @Failure      401  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /me [get]
func (h *UserHandler) Me(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	user, err := h.roles.Identity(c.Request.Context(), who.ID)
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

// ListTechnicians godoc
// @Summary      Technicians available for assignment
// @Tags         users
// @Produce      json
// @Success      200  {array}  response.UserResponse
// @Security     Bearer
// @Router       /technicians [get]
func (h *UserHandler) ListTechnicians(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	techs, err := h.technicians.List(c.Request.Context(), who.ID)
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUsers(techs))
}

// CreateInvite godoc
// @Summary      Invite an e-mail address to a role
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateInviteRequest  true  "Invite"
// @Success      201   {object}  response.InviteResponse
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /invites [post]
func (h *UserHandler) CreateInvite(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	var payload request.CreateInviteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, err)
		return
	}

	inv, err := h.invites.Create(c.Request.Context(), who.ID, payload.Email, entities.Role(payload.Role))
	if err != nil {
		writeError(c, mapInviteError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromInvite(inv))
}

// AcceptInvite godoc
// @Summary      Bind the caller to an invite's role
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        body  body      request.AcceptInviteRequest  true  "Token"
// @Success      200   {object}  response.UserResponse
// @Failure      403   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /invites/accept [post]
func (h *UserHandler) AcceptInvite(c *gin.Context) {
	who, ok := actor(c)
	if !ok {
		return
	}
	var payload request.AcceptInviteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.invites.Accept(c.Request.Context(), who, payload.Token)
	if err != nil {
		writeError(c, mapInviteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}
