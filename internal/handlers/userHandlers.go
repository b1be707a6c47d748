package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobdesk/internal/models"
	"jobdesk/internal/services"
	"jobdesk/internal/utils"
)

type UserHandler struct {
	authFlow   *services.AuthFlow
	profiles   services.UserProfileService
	jobService services.JobService
}

func NewUserHandler(authFlow *services.AuthFlow, profiles services.UserProfileService, jobService services.JobService) *UserHandler {
	return &UserHandler{authFlow: authFlow, profiles: profiles, jobService: jobService}
}

type userRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PhoneNo  string `json:"phoneNo"`
	Country  string `json:"country"`
	State    string `json:"state"`
	City     string `json:"city"`
	Address  string `json:"address"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req userRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	required := []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"password", req.Password},
		{"phoneNo", req.PhoneNo},
		{"country", req.Country},
		{"state", req.State},
		{"city", req.City},
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
	if !utils.IsValidPhone(req.PhoneNo) {
		utils.SendJSONError(w, "Phone number must be exactly 10 digits", http.StatusBadRequest)
		return
	}

	fields := bson.M{
		"name":     req.Name,
		"phone_no": req.PhoneNo,
		"country":  req.Country,
		"state":    req.State,
		"city":     req.City,
	}
	if req.Address != "" {
		fields["address"] = req.Address
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

type verifyOTPRequest struct {
	Token string `json:"token"`
	OTP   string `json:"otp"`
}

func (h *UserHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
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

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
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

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"token":   result.Token,
	})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	user, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User profile details fetched successfully",
		"user":    user,
	})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	var update models.UserProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.profiles.Update(r.Context(), userID, &update)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) ListOpenJobs(w http.ResponseWriter, r *http.Request) {
	page, limit := paginationQuery(r)
	search := r.URL.Query().Get("search")

	jobs, pagination, err := h.jobService.ListOpenJobs(r.Context(), page, limit, search)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list open jobs")
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"pagination": pagination,
		"data":       jobs,
	})
}

type applyRequest struct {
	Resume      string `json:"resume"`
	CoverLetter string `json:"coverLetter"`
}

func (h *UserHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	jobID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.SendJSONError(w, "Invalid job ID", http.StatusBadRequest)
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	application, err := h.jobService.Apply(r.Context(), userID, jobID, req.Resume, req.CoverLetter)
	if err != nil {
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"message":     "Application submitted successfully",
		"application": application,
	})
}

func (h *UserHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorIDFromRequest(w, r)
	if !ok {
		return
	}

	page, limit := paginationQuery(r)
	applications, pagination, err := h.jobService.ListUserApplications(r.Context(), userID, page, limit)
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
