package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/evalind/kortkoll/internal/database/repository"
)

type transactionJSON struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	BookedDate     string  `json:"booked_date"`
	Description    string  `json:"description"`
	City           string  `json:"city"`
	Currency       string  `json:"currency"`
	Amount         float64 `json:"amount"`
	CardHolder     string  `json:"card_holder"`
	Category       string  `json:"category"`
	SourceFile     string  `json:"source_file"`
	ManualCategory bool    `json:"manual_category"`
}

func toTransactionJSON(t repository.Transaction) transactionJSON {
	return transactionJSON{
		ID:             t.ID,
		Date:           t.Date,
		BookedDate:     t.BookedDate,
		Description:    t.Description,
		City:           t.City,
		Currency:       t.Currency,
		Amount:         t.Amount.InexactFloat64(),
		CardHolder:     t.CardHolder,
		Category:       t.Category,
		SourceFile:     t.SourceFile,
		ManualCategory: t.ManualCategory,
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	name := strings.ToLower(header.Filename)
	if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
		WriteError(w, http.StatusBadRequest, "only .xlsx files supported")
		return
	}

	res, err := s.ingest.ImportStatement(r.Context(), file, header.Filename)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{
		"inserted":      res.Inserted,
		"total_in_file": res.Total,
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	txs, err := s.transactions.List(r.Context(), repository.TransactionFilters{
		Category:   q.Get("category"),
		CardHolder: q.Get("card_holder"),
		SourceFile: q.Get("source_file"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]transactionJSON, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionJSON(t))
	}
	WriteJSON(w, http.StatusOK, out)
}

func (s *Server) handleOverlaps(w http.ResponseWriter, r *http.Request) {
	pairs, err := s.overlaps.Detect(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	type pairJSON struct {
		A          transactionJSON `json:"a"`
		B          transactionJSON `json:"b"`
		Similarity float64         `json:"similarity"`
	}
	out := make([]pairJSON, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, pairJSON{A: toTransactionJSON(p.A), B: toTransactionJSON(p.B), Similarity: p.Similarity})
	}
	WriteJSON(w, http.StatusOK, out)
}

func (s *Server) handleAssignCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Category) == "" {
		WriteError(w, http.StatusBadRequest, "category is required")
		return
	}
	if err := s.categories.AssignTransaction(r.Context(), id, body.Category); err != nil {
		s.writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"updated": 1})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	names, err := s.categoryRepo.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	WriteJSON(w, http.StatusOK, names)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.categories.Create(r.Context(), body.Name); err != nil {
		s.writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), r.PathValue("name")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.ruleRepo.ListOrdered(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	type ruleJSON struct {
		Keyword  string `json:"keyword"`
		Category string `json:"category"`
	}
	out := make([]ruleJSON, 0, len(rules))
	for _, cr := range rules {
		out = append(out, ruleJSON{Keyword: cr.Keyword, Category: cr.Category})
	}
	WriteJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Keyword  string `json:"keyword"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
		strings.TrimSpace(body.Keyword) == "" || strings.TrimSpace(body.Category) == "" {
		WriteError(w, http.StatusBadRequest, "keyword and category are required")
		return
	}
	updated, err := s.rules.CreateRule(r.Context(), body.Keyword, body.Category)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (s *Server) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	keyword := r.PathValue("keyword")
	var body struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Category) == "" {
		WriteError(w, http.StatusBadRequest, "category is required")
		return
	}
	updated, err := s.rules.UpdateRule(r.Context(), keyword, body.Category)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (s *Server) handleSourceFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.transactions.SourceFiles(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if files == nil {
		files = []string{}
	}
	WriteJSON(w, http.StatusOK, files)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
