package chat

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hotelrev/revman/internal/gemini"
)

// ChatRequest is the guest widget's chat payload. History roles are
// "user" and "assistant".
type ChatRequest struct {
	ChatHistory []HistoryItem `json:"chatHistory"`
	UserMessage string        `json:"userMessage"`
	ClientName  string        `json:"clientName"`
}

type HistoryItem struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

func (s *Server) handleLLMChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		clientName = "Guest"
	}

	turns := make([]gemini.Turn, 0, len(req.ChatHistory)+1)
	for _, item := range req.ChatHistory {
		turns = append(turns, gemini.Turn{Role: item.Role, Text: item.Text})
	}
	turns = append(turns, gemini.Turn{Role: "user", Text: req.UserMessage})

	reply, err := s.llm.Converse(r.Context(), systemPrompt(clientName), turns)
	if err != nil {
		s.logger.Error("chat completion failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "chat completion failed")
		return
	}

	respondJSON(w, http.StatusOK, ChatResponse{Response: reply})
}

// handleSaveChat forwards the raw session payload to the Apps Script
// endpoint that appends it to the Clients sheet. The payload is passed
// through untouched so the frontend and the script stay in control of
// the session schema.
func (s *Server) handleSaveChat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]string{"status": "error", "message": err.Error()})
		return
	}
	if !json.Valid(body) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "error", "message": "invalid JSON payload"})
		return
	}

	if s.appsScriptURL == "" {
		respondJSON(w, http.StatusOK, map[string]string{"status": "error", "message": "Apps Script URL not configured"})
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, s.appsScriptURL, bytes.NewReader(body))
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]string{"status": "error", "message": err.Error()})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("apps script forward failed", zap.Error(err))
		respondJSON(w, http.StatusOK, map[string]string{"status": "error", "message": err.Error()})
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]string{"status": "error", "message": err.Error()})
		return
	}

	var scriptResp interface{}
	if err := json.Unmarshal(respBody, &scriptResp); err != nil {
		// The script sometimes answers with plain text instead of JSON.
		s.logger.Warn("apps script response is not JSON",
			zap.String("body", string(respBody)))
		scriptResp = map[string]string{
			"status":  "unknown",
			"message": strings.TrimSpace(string(respBody)),
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":             "success",
		"appsScriptResponse": scriptResp,
	})
}
