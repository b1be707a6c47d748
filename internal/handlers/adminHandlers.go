package handlers

import (
	"encoding/json"
	"net/http"

	"jobdesk/internal/models"
	"jobdesk/internal/services"
	"jobdesk/internal/utils"
)

type AdminHandler struct {
	authFlow     *services.AuthFlow
	profiles     services.AdminProfileService
	adminService services.AdminService
}

func NewAdminHandler(authFlow *services.AuthFlow, profiles services.AdminProfileService, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{authFlow: authFlow, profiles: profiles, adminService: adminService}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.SendJSONError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	result, err := h.authFlow.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	if result.ChallengeRequired {
		utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success":            true,
			"message":            "2FA is enabled. OTP sent to email.",
			"token":              result.Token,
			"isTwoFactorEnabled": true,
		})
		return
	}

	summary, err := h.adminSummary(r, result.Actor)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"token":   result.Token,
		"admin":   summary,
	})
}

func (h *AdminHandler) VerifyLoginOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Token == "" || req.OTP == "" {
		utils.SendJSONError(w, "token and otp are required", http.StatusBadRequest)
		return
	}

	sessionToken, actor, err := h.authFlow.VerifyLoginOTP(r.Context(), req.Token, req.OTP)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	summary, err := h.adminSummary(r, actor)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"token":   sessionToken,
		"admin":   summary,
	})
}

func (h *AdminHandler) Toggle2FA(w http.ResponseWriter, r *http.Request) {
	adminID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	var req toggle2FARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Enable2FA == nil {
		utils.SendJSONError(w, "enable2FA is required and must be a boolean", http.StatusBadRequest)
		return
	}

	enabled, err := h.authFlow.ToggleTwoFactor(r.Context(), adminID, *req.Enable2FA)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	message := "2FA has been disabled successfully"
	if enabled {
		message = "2FA has been enabled successfully"
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"message":            message,
		"isTwoFactorEnabled": enabled,
	})
}

func (h *AdminHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	adminID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	admin, err := h.profiles.Get(r.Context(), adminID)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Admin profile details fetched successfully",
		"admin":   admin,
	})
}

func (h *AdminHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	page, limit := paginationQuery(r)
	query := r.URL.Query()

	companies, pagination, err := h.adminService.ListCompanies(r.Context(), services.CompanyListParams{
		Page:      page,
		Limit:     limit,
		Search:    query.Get("search"),
		StartDate: parseDateQuery(query.Get("startDate")),
		EndDate:   parseDateQuery(query.Get("endDate")),
	})
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"pagination": pagination,
		"data":       companies,
	})
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.adminService.Dashboard(r.Context())
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"dashboard": dashboard,
	})
}

func (h *AdminHandler) adminSummary(r *http.Request, actor *models.Actor) (*models.AdminSummary, error) {
	admin, err := h.profiles.Get(r.Context(), actor.ID)
	if err != nil {
		return nil, err
	}
	return &models.AdminSummary{
		ID:       admin.ID,
		Name:     admin.Name,
		Username: admin.Username,
		Email:    admin.Email,
	}, nil
}
