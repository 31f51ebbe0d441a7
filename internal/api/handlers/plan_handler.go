package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/coachplan/internal/application/services"
	"github.com/zatekoja/coachplan/internal/domain/entities"
)

// PlanGenerator starts background plan generation
type PlanGenerator interface {
	DispatchWorkoutGeneration(ctx context.Context, weekID int64, gc entities.GenerationContext) (entities.PlanStatus, error)
	DispatchDietGeneration(ctx context.Context, weekID int64, gc entities.GenerationContext) (entities.PlanStatus, error)
}

// ManualPlanSubmitter stores coach authored plans
type ManualPlanSubmitter interface {
	SubmitWorkout(ctx context.Context, weekID int64, in services.ManualWorkoutInput) (*entities.Workout, error)
	SubmitDiet(ctx context.Context, weekID int64, content string) (*entities.Diet, error)
}

// PlanStatusReader reads the plan state of a week
type PlanStatusReader interface {
	WeekStatus(ctx context.Context, weekID int64) (*services.WeekPlanView, error)
}

// PlanHandler handles workout and diet plan requests
type PlanHandler struct {
	generator PlanGenerator
	manual    ManualPlanSubmitter
	status    PlanStatusReader
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(generator PlanGenerator, manual ManualPlanSubmitter, status PlanStatusReader) *PlanHandler {
	return &PlanHandler{
		generator: generator,
		manual:    manual,
		status:    status,
	}
}

type workoutGenerationRequest struct {
	WeekID      int64                   `json:"week_id"`
	Profile     entities.StudentProfile `json:"profile"`
	FocusMuscle string                  `json:"focus_muscle"`
	DaysPerWeek *int                    `json:"days_per_week"`
	Notes       string                  `json:"ai_notes"`
}

type dietGenerationRequest struct {
	WeekID   int64                   `json:"week_id"`
	Profile  entities.StudentProfile `json:"profile"`
	Notes    string                  `json:"notes"`
	Calories *int                    `json:"calories"`
}

type manualWorkoutRequest struct {
	WeekID int64 `json:"week_id"`
	services.ManualWorkoutInput
}

type manualDietRequest struct {
	WeekID  int64  `json:"week_id"`
	Content string `json:"content"`
}

type generationResponse struct {
	Message string              `json:"message"`
	Status  entities.PlanStatus `json:"status"`
}

// weekStatusResponse flattens the week and adds the stored plan content
type weekStatusResponse struct {
	*entities.Week
	WorkoutContent *string               `json:"workout_content"`
	WorkoutPlan    []entities.WorkoutDay `json:"workout_plan"`
	DietContent    *string               `json:"diet_content"`
}

// GenerateWorkout handles POST /api/plans/workout/ai
func (h *PlanHandler) GenerateWorkout(w http.ResponseWriter, r *http.Request) {
	var req workoutGenerationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.WeekID <= 0 {
		respondWithError(w, http.StatusBadRequest, "week_id is required")
		return
	}

	status, err := h.generator.DispatchWorkoutGeneration(r.Context(), req.WeekID, entities.GenerationContext{
		Profile:     req.Profile,
		FocusMuscle: req.FocusMuscle,
		DaysPerWeek: req.DaysPerWeek,
		Notes:       req.Notes,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusAccepted, generationResponse{Message: "workout generation started", Status: status})
}

// GenerateDiet handles POST /api/plans/diet/ai
func (h *PlanHandler) GenerateDiet(w http.ResponseWriter, r *http.Request) {
	var req dietGenerationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.WeekID <= 0 {
		respondWithError(w, http.StatusBadRequest, "week_id is required")
		return
	}

	status, err := h.generator.DispatchDietGeneration(r.Context(), req.WeekID, entities.GenerationContext{
		Profile:      req.Profile,
		DietNotes:    req.Notes,
		DietCalories: req.Calories,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if status == entities.PlanStatusReady {
		respondWithJSON(w, http.StatusOK, generationResponse{Message: "diet already exists", Status: status})
		return
	}
	respondWithJSON(w, http.StatusAccepted, generationResponse{Message: "diet generation started", Status: status})
}

// CreateWorkout handles POST /api/plans/workout
func (h *PlanHandler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req manualWorkoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.WeekID <= 0 {
		respondWithError(w, http.StatusBadRequest, "week_id is required")
		return
	}

	workout, err := h.manual.SubmitWorkout(r.Context(), req.WeekID, req.ManualWorkoutInput)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, workout)
}

// CreateDiet handles POST /api/plans/diet
func (h *PlanHandler) CreateDiet(w http.ResponseWriter, r *http.Request) {
	var req manualDietRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.WeekID <= 0 {
		respondWithError(w, http.StatusBadRequest, "week_id is required")
		return
	}

	diet, err := h.manual.SubmitDiet(r.Context(), req.WeekID, req.Content)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, diet)
}

// GetStatus handles GET /api/plans/status?week_id=
func (h *PlanHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	weekID, ok := parseWeekID(r.URL.Query().Get("week_id"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, "week_id must be a positive integer")
		return
	}

	view, err := h.status.WeekStatus(r.Context(), weekID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	resp := weekStatusResponse{Week: view.Week, WorkoutPlan: []entities.WorkoutDay{}}
	if view.Workout != nil {
		resp.WorkoutContent = &view.Workout.Content
		resp.WorkoutPlan = view.Workout.Days
	}
	if view.Diet != nil {
		resp.DietContent = &view.Diet.Content
	}

	respondWithJSON(w, http.StatusOK, resp)
}
