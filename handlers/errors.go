package handlers

import (
	"encoding/json"
	"net/http"
)

// Not-found and not-owned share one message so goal existence never leaks
// across users.
const msgGoalNotFound = "Goal not found"
const msgPlanNotFound = "Plan not found"
const msgTipNotFound = "Tip not found"

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
