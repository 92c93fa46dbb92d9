package handlers

import (
	"encoding/json"
	"goal-tracker/db"
	"goal-tracker/models"
	"net/http"
	"strings"
)

type planRequest struct {
	Content   *string `json:"content"`
	Completed *bool   `json:"completed"`
}

// Plans carry no owner of their own; every check walks plan -> goal -> user.
func loadPlanForOwner(planID, userID int) (*models.Plan, error) {
	var p models.Plan
	err := db.DB.QueryRow(
		"SELECT p.id, p.goal_id, p.content, p.completed, p.created_at FROM plans p JOIN goals g ON p.goal_id = g.id WHERE p.id = ? AND g.user_id = ?",
		planID, userID,
	).Scan(&p.ID, &p.GoalID, &p.Content, &p.Completed, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func GetPlans(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	goalID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}
	if err := goalOwnedBy(goalID, userID); err != nil {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}

	rows, err := db.DB.Query("SELECT id, goal_id, content, completed, created_at FROM plans WHERE goal_id = ?", goalID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not list plans")
		return
	}
	plans := []models.Plan{}
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.GoalID, &p.Content, &p.Completed, &p.CreatedAt); err != nil {
			rows.Close()
			writeError(w, http.StatusInternalServerError, "Could not list plans")
			return
		}
		plans = append(plans, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not list plans")
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func CreatePlan(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	goalID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}
	if err := goalOwnedBy(goalID, userID); err != nil {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == nil || strings.TrimSpace(*req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}

	res, err := db.DB.Exec("INSERT INTO plans (goal_id, content) VALUES (?, ?)", goalID, *req.Content)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create plan")
		return
	}
	lastID, _ := res.LastInsertId()

	plan, err := loadPlanForOwner(int(lastID), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load plan")
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func UpdatePlan(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	planID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, msgPlanNotFound)
		return
	}

	plan, err := loadPlanForOwner(planID, userID)
	if err != nil {
		writeError(w, http.StatusNotFound, msgPlanNotFound)
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			writeError(w, http.StatusBadRequest, "Content is required")
			return
		}
		plan.Content = *req.Content
	}
	if req.Completed != nil {
		plan.Completed = *req.Completed
	}

	_, err = db.DB.Exec("UPDATE plans SET content = ?, completed = ? WHERE id = ?", plan.Content, plan.Completed, planID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not update plan")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func DeletePlan(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	planID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, msgPlanNotFound)
		return
	}

	res, err := db.DB.Exec(
		"DELETE p FROM plans p JOIN goals g ON p.goal_id = g.id WHERE p.id = ? AND g.user_id = ?",
		planID, userID,
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not delete plan")
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		writeError(w, http.StatusNotFound, msgPlanNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
