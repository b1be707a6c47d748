package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobdesk/internal/models"
	"jobdesk/internal/services"
	"jobdesk/internal/utils"
)

type CompanyHandler struct {
	authFlow   *services.AuthFlow
	profiles   services.CompanyProfileService
	jobService services.JobService
}

func NewCompanyHandler(authFlow *services.AuthFlow, profiles services.CompanyProfileService, jobService services.JobService) *CompanyHandler {
	return &CompanyHandler{authFlow: authFlow, profiles: profiles, jobService: jobService}
}

type companyRegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	IndustryType string `json:"industryType"`
	Location     string `json:"location"`
	CompanyType  string `json:"companyType"`
	Website      string `json:"website"`
	Description  string `json:"description"`
}

func (h *CompanyHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req companyRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	required := []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"password", req.Password},
		{"industryType", req.IndustryType},
		{"location", req.Location},
	}
	for _, field := range required {
		if field.value == "" {
			utils.SendJSONError(w, field.name+" is required", http.StatusBadRequest)
			return
		}
	}
	if !utils.IsValidEmail(req.Email) {
		utils.SendJSONError(w, "Invalid email format", http.StatusBadRequest)
		return
	}

	fields := bson.M{
		"name":          req.Name,
		"industry_type": req.IndustryType,
		"location":      req.Location,
	}
	if req.CompanyType != "" {
		fields["company_type"] = req.CompanyType
	}
	if req.Website != "" {
		fields["website"] = req.Website
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}

	token, err := h.authFlow.Register(r.Context(), req.Email, req.Password, fields)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "OTP sent to your email",
		"token":   token,
	})
}

func (h *CompanyHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Token == "" || req.OTP == "" {
		utils.SendJSONError(w, "token and otp are required", http.StatusBadRequest)
		return
	}

	if err := h.authFlow.VerifyRegistration(r.Context(), req.Token, req.OTP); err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Email verified successfully. You can now log in.",
	})
}

func (h *CompanyHandler) Login(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.companySummary(r, result.Actor.ID)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"token":   result.Token,
		"company": summary,
	})
}

func (h *CompanyHandler) VerifyLoginOTP(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.companySummary(r, actor.ID)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"token":   sessionToken,
		"company": summary,
	})
}

type toggle2FARequest struct {
	Enable2FA *bool `json:"enable2FA"`
}

func (h *CompanyHandler) Toggle2FA(w http.ResponseWriter, r *http.Request) {
	companyID, ok := actorIDFromRequest(w, r)
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

	enabled, err := h.authFlow.ToggleTwoFactor(r.Context(), companyID, *req.Enable2FA)
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

func (h *CompanyHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	companyID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	company, err := h.profiles.Get(r.Context(), companyID)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Company profile details fetched successfully",
		"company": company,
	})
}

func (h *CompanyHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	companyID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	var update models.CompanyProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	company, err := h.profiles.Update(r.Context(), companyID, &update)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated successfully",
		"company": company,
	})
}

func (h *CompanyHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	companyID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	dashboard, err := h.jobService.Dashboard(r.Context(), companyID)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"dashboard": dashboard,
	})
}

func (h *CompanyHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	companyID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.jobService.CreateJob(r.Context(), companyID, &job)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Job posted successfully",
		"job":     created,
	})
}

func (h *CompanyHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	companyID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	page, limit := paginationQuery(r)
	jobs, pagination, err := h.jobService.ListCompanyJobs(r.Context(), companyID, page, limit)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"pagination": pagination,
		"data":       jobs,
	})
}

func (h *CompanyHandler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	companyID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	jobID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.SendJSONError(w, "Invalid job ID", http.StatusBadRequest)
		return
	}

	page, limit := paginationQuery(r)
	applications, pagination, err := h.jobService.ListJobApplications(r.Context(), companyID, jobID, page, limit)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"pagination": pagination,
		"data":       applications,
	})
}

type updateApplicationStatusRequest struct {
	Status string `json:"status"`
}

func (h *CompanyHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	applicationID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.SendJSONError(w, "Invalid application ID", http.StatusBadRequest)
		return
	}

	var req updateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	application, err := h.jobService.UpdateApplicationStatus(r.Context(), companyID, applicationID, req.Status)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Application status updated successfully",
		"application": application,
	})
}

func (h *CompanyHandler) companySummary(r *http.Request, companyID primitive.ObjectID) (*models.CompanySummary, error) {
	company, err := h.profiles.Get(r.Context(), companyID)
	if err != nil {
		return nil, err
	}
	return &models.CompanySummary{
		ID:                 company.ID,
		Name:               company.Name,
		Email:              company.Email,
		IndustryType:       company.IndustryType,
		Location:           company.Location,
		IsTwoFactorEnabled: company.IsTwoFactorEnabled,
	}, nil
}
