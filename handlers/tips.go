package handlers

import (
	"encoding/json"
	"goal-tracker/db"
	"goal-tracker/models"
	"net/http"
	"strings"
)

type tipRequest struct {
	Advice *string `json:"advice"`
	Source *string `json:"source"`
}

func loadTipForOwner(tipID, userID int) (*models.Tip, error) {
	var t models.Tip
	err := db.DB.QueryRow(
		"SELECT t.id, t.goal_id, t.advice, t.source, t.created_at FROM tips t JOIN goals g ON t.goal_id = g.id WHERE t.id = ? AND g.user_id = ?",
		tipID, userID,
	).Scan(&t.ID, &t.GoalID, &t.Advice, &t.Source, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func GetTips(w http.ResponseWriter, r *http.Request) {
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

	rows, err := db.DB.Query("SELECT id, goal_id, advice, source, created_at FROM tips WHERE goal_id = ?", goalID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not list tips")
		return
	}
	tips := []models.Tip{}
	for rows.Next() {
		var t models.Tip
		if err := rows.Scan(&t.ID, &t.GoalID, &t.Advice, &t.Source, &t.CreatedAt); err != nil {
			rows.Close()
			writeError(w, http.StatusInternalServerError, "Could not list tips")
			return
		}
		tips = append(tips, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not list tips")
		return
	}
	writeJSON(w, http.StatusOK, tips)
}

func CreateTip(w http.ResponseWriter, r *http.Request) {
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

	var req tipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Advice == nil || strings.TrimSpace(*req.Advice) == "" {
		writeError(w, http.StatusBadRequest, "Advice is required")
		return
	}

	res, err := db.DB.Exec("INSERT INTO tips (goal_id, advice, source) VALUES (?, ?, ?)", goalID, *req.Advice, req.Source)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create tip")
		return
	}
	lastID, _ := res.LastInsertId()

	tip, err := loadTipForOwner(int(lastID), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load tip")
		return
	}
	writeJSON(w, http.StatusCreated, tip)
}

func UpdateTip(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	tipID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, msgTipNotFound)
		return
	}

	tip, err := loadTipForOwner(tipID, userID)
	if err != nil {
		writeError(w, http.StatusNotFound, msgTipNotFound)
		return
	}

	var req tipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Advice != nil {
		if strings.TrimSpace(*req.Advice) == "" {
			writeError(w, http.StatusBadRequest, "Advice is required")
			return
		}
		tip.Advice = *req.Advice
	}
	if req.Source != nil {
		tip.Source = req.Source
	}

	_, err = db.DB.Exec("UPDATE tips SET advice = ?, source = ? WHERE id = ?", tip.Advice, tip.Source, tipID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not update tip")
		return
	}
	writeJSON(w, http.StatusOK, tip)
}

func DeleteTip(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	tipID, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, msgTipNotFound)
		return
	}

	res, err := db.DB.Exec(
		"DELETE t FROM tips t JOIN goals g ON t.goal_id = g.id WHERE t.id = ? AND g.user_id = ?",
		tipID, userID,
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not delete tip")
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		writeError(w, http.StatusNotFound, msgTipNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
