package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"goal-tracker/db"
	"goal-tracker/models"
	"goal-tracker/progress"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func getUserID(r *http.Request) int {
	return r.Context().Value("userID").(int)
}

func urlID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

type goalRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	TargetValue *float64 `json:"target_value"`
	Deadline    *string  `json:"deadline"`
}

type progressRequest struct {
	CurrentValue *float64 `json:"current_value"`
	Increment    *float64 `json:"increment"`
}

func parseDeadline(s string) (*time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid deadline")
}

// loadGoal fetches a goal owned by userID with its plans, tips and derived
// percent. Absent and not-owned both come back as sql.ErrNoRows.
func loadGoal(goalID, userID int) (*models.Goal, error) {
	var g models.Goal
	err := db.DB.QueryRow(
		"SELECT id, user_id, title, description, target_value, current_value, deadline, created_at, updated_at FROM goals WHERE id = ? AND user_id = ?",
		goalID, userID,
	).Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.TargetValue, &g.CurrentValue, &g.Deadline, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.Percent = progress.Percent(g.CurrentValue, g.TargetValue)
	if err := attachChildren(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

func attachChildren(g *models.Goal) error {
	g.Plans = []models.Plan{}
	rows, err := db.DB.Query("SELECT id, goal_id, content, completed, created_at FROM plans WHERE goal_id = ?", g.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.GoalID, &p.Content, &p.Completed, &p.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		g.Plans = append(g.Plans, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	g.Tips = []models.Tip{}
	rows, err = db.DB.Query("SELECT id, goal_id, advice, source, created_at FROM tips WHERE goal_id = ?", g.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var t models.Tip
		if err := rows.Scan(&t.ID, &t.GoalID, &t.Advice, &t.Source, &t.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		g.Tips = append(g.Tips, t)
	}
	rows.Close()
	return rows.Err()
}

// goalOwnedBy confirms the goal exists and belongs to userID. This is the
// single ownership check plans and tips route through as well.
func goalOwnedBy(goalID, userID int) error {
	var id int
	return db.DB.QueryRow("SELECT id FROM goals WHERE id = ? AND user_id = ?", goalID, userID).Scan(&id)
}

func GetGoals(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	rows, err := db.DB.Query("SELECT id FROM goals WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not list goals")
		return
	}
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			writeError(w, http.StatusInternalServerError, "Could not list goals")
			return
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not list goals")
		return
	}

	goals := []models.Goal{}
	for _, id := range ids {
		g, err := loadGoal(id, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Could not list goals")
			return
		}
		goals = append(goals, *g)
	}
	writeJSON(w, http.StatusOK, goals)
}

func CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.TargetValue == nil || *req.TargetValue <= 0 {
		writeError(w, http.StatusBadRequest, "Target value must be positive")
		return
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		var err error
		deadline, err = parseDeadline(*req.Deadline)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid deadline")
			return
		}
	}

	res, err := db.DB.Exec(
		"INSERT INTO goals (user_id, title, description, target_value, deadline) VALUES (?, ?, ?, ?, ?)",
		userID, *req.Title, req.Description, *req.TargetValue, deadline,
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create goal")
		return
	}
	lastID, _ := res.LastInsertId()

	goal, err := loadGoal(int(lastID), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load goal")
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func GetGoal(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	goalID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}
	goal, err := loadGoal(goalID, userID)
	if err != nil {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	goalID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}

	goal, err := loadGoal(goalID, userID)
	if err != nil {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			writeError(w, http.StatusBadRequest, "Title is required")
			return
		}
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = req.Description
	}
	if req.TargetValue != nil {
		if *req.TargetValue <= 0 {
			writeError(w, http.StatusBadRequest, "Target value must be positive")
			return
		}
		goal.TargetValue = *req.TargetValue
	}
	if req.Deadline != nil && *req.Deadline != "" {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid deadline")
			return
		}
		goal.Deadline = deadline
	}

	_, err = db.DB.Exec(
		"UPDATE goals SET title = ?, description = ?, target_value = ?, deadline = ? WHERE id = ?",
		goal.Title, goal.Description, goal.TargetValue, goal.Deadline, goalID,
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not update goal")
		return
	}

	goal, err = loadGoal(goalID, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load goal")
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// DeleteGoal removes the goal and, through the FK cascades, all of its plans
// and tips in one statement, so readers never observe a half-deleted goal.
func DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	goalID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}
	res, err := db.DB.Exec("DELETE FROM goals WHERE id = ? AND user_id = ?", goalID, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not delete goal")
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateProgress applies an absolute set and/or an increment to the goal's
// current value. The read-modify-write runs under SELECT ... FOR UPDATE so
// racing updates serialize instead of losing increments.
func UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	goalID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CurrentValue == nil && req.Increment == nil {
		writeError(w, http.StatusBadRequest, "current_value or increment is required")
		return
	}

	tx, err := db.DB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not update progress")
		return
	}

	var current, target float64
	err = tx.QueryRow("SELECT current_value, target_value FROM goals WHERE id = ? AND user_id = ? FOR UPDATE", goalID, userID).
		Scan(&current, &target)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			writeError(w, http.StatusNotFound, msgGoalNotFound)
		} else {
			writeError(w, http.StatusInternalServerError, "Could not update progress")
		}
		return
	}

	if req.CurrentValue != nil {
		current, _, err = progress.Compute(current, target, progress.ModeAbsolute, *req.CurrentValue, progress.Lenient)
	}
	if err == nil && req.Increment != nil {
		current, _, err = progress.Compute(current, target, progress.ModeIncrement, *req.Increment, progress.Lenient)
	}
	if err != nil {
		tx.Rollback()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err = tx.Exec("UPDATE goals SET current_value = ? WHERE id = ?", current, goalID); err != nil {
		tx.Rollback()
		writeError(w, http.StatusInternalServerError, "Could not update progress")
		return
	}
	if err = tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not update progress")
		return
	}

	goal, err := loadGoal(goalID, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load goal")
		return
	}
	writeJSON(w, http.StatusOK, goal)
}
