package handlers

import (
	"net/http"

	staffRepo "zmina/database/repository/staff"
	"zmina/models"
	"zmina/services/timechange"
	"zmina/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler manages staff records and apartment assignments.
type AdminHandler struct {
	Staff staffRepo.StaffRepository
	Guard *timechange.PermissionGuard
}

func NewAdminHandler(staff staffRepo.StaffRepository, guard *timechange.PermissionGuard) *AdminHandler {
	return &AdminHandler{Staff: staff, Guard: guard}
}

// SetAssignmentsHandler replaces a cleaner's apartment list and drops the
// cached permission scope so the change takes effect immediately.
func (h *AdminHandler) SetAssignmentsHandler(c *gin.Context) {
	var req struct {
		UserID       string   `json:"userId" binding:"required"`
		ApartmentIDs []string `json:"apartmentIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid assignment payload", err.Error())
		return
	}

	ctx := c.Request.Context()
	if err := h.Staff.SetAssignments(ctx, req.UserID, req.ApartmentIDs); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save assignments", "")
		return
	}
	h.Guard.InvalidateScope(ctx, req.UserID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UpsertStaffHandler creates or updates a staff record.
func (h *AdminHandler) UpsertStaffHandler(c *gin.Context) {
	var req struct {
		ID       string `json:"id" binding:"required"`
		Name     string `json:"name"`
		Role     string `json:"role" binding:"required"`
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid staff payload", err.Error())
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleCleaner {
		utils.JSONError(c, http.StatusBadRequest, "Unknown role", req.Role)
		return
	}

	u := &models.StaffUser{
		ID:       req.ID,
		Name:     req.Name,
		Role:     req.Role,
		FCMToken: req.FCMToken,
	}
	if err := h.Staff.UpsertUser(c.Request.Context(), u); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save staff user", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
