package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealdesk/deal_workflow_app/internal/dto"
)

// registerRoleRoutes registers the role directory route.
func registerRoleRoutes(rg *gin.RouterGroup) {
	rg.GET("/roles", listRoles)
}

// listRoles godoc
// @Summary List the workflow roles
// @Description Returns every role in the system with its display name and whether it sits on the escalation chain.
// @Tags roles
// @Produce json
// @Success 200 {array} dto.RoleResponse
// @Security BearerAuth
// @Router /roles [get]
func listRoles(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToRoleResponses())
}
