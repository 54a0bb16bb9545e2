package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/veskob/botezscan/internal/service"
	"github.com/veskob/botezscan/internal/store"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db             *store.Database
	gameService    *service.GameService
	playerService  *service.PlayerService
	findingService *service.FindingService
}

// NewHandler creates a new handler
func NewHandler(db *store.Database) *Handler {
	return &Handler{
		db:             db,
		gameService:    service.NewGameService(db),
		playerService:  service.NewPlayerService(db),
		findingService: service.NewFindingService(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "botezscan",
	})
}

// GetPlayers returns the roster
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListPlayers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch players", err)
		return
	}

	respondJSON(w, http.StatusOK, players)
}

// AddPlayer puts a username on the active roster
func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	player, err := h.playerService.AddPlayer(r.Context(), body.Username)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to add player", err)
		return
	}

	respondJSON(w, http.StatusCreated, player)
}

// DeactivatePlayer stops collecting a player's games
func (h *Handler) DeactivatePlayer(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	if err := h.playerService.DeactivatePlayer(r.Context(), username); err != nil {
		respondError(w, http.StatusNotFound, "Failed to deactivate player", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message":  "Player deactivated",
		"username": username,
	})
}

// GetPlayerGames returns a roster member's stored games
func (h *Handler) GetPlayerGames(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	games, err := h.gameService.GetGamesByPlayer(r.Context(), username, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, games)
}

// GetPlayerFindings returns findings from a player's games
func (h *Handler) GetPlayerFindings(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	findings, err := h.findingService.ListFindingsByPlayer(r.Context(), username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch findings", err)
		return
	}

	respondJSON(w, http.StatusOK, findings)
}

// GetGames returns games for an archive month (?archive=YYYY/MM) or a count
func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	if archive := r.URL.Query().Get("archive"); archive != "" {
		games, err := h.gameService.GetGamesByArchive(r.Context(), archive)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
			return
		}
		respondJSON(w, http.StatusOK, games)
		return
	}

	count, err := h.gameService.CountGames(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to count games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"total_games": count})
}

// GetGame returns a single game by database ID
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(mux.Vars(r)["gameID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	game, err := h.gameService.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetFindings returns every recorded finding
func (h *Handler) GetFindings(w http.ResponseWriter, r *http.Request) {
	findings, err := h.findingService.ListFindings(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch findings", err)
		return
	}

	respondJSON(w, http.StatusOK, findings)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
