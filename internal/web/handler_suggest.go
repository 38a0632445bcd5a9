package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vbonduro/kondate/internal/service"
	"github.com/vbonduro/kondate/internal/session"
	"github.com/vbonduro/kondate/internal/suggest"
)

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	prefs := suggest.Preferences{
		Servings: r.FormValue("servings"),
		Taste:    r.FormValue("taste"),
	}

	sug, err := s.service.Suggest(r.Context(), prefs)
	s.sessions.Update(sess, func(ss *session.Session) {
		switch {
		case errors.Is(err, service.ErrNoItems):
			ss.AddFlash(session.FlashWarning, "The inventory is empty, add some food before asking for a menu.")
			return
		case err != nil:
			ss.AddFlash(session.FlashError, "Could not build a suggestion: "+err.Error())
			return
		}

		ss.Suggestion = sug.Text
		ss.Pending = nil

		switch sug.Source {
		case service.SourcePlaceholder:
			ss.AddFlash(session.FlashWarning, "No AI backend is configured; showing a sample suggestion.")
		case service.SourceFailed:
			ss.AddFlash(session.FlashError, "The suggestion service failed: "+sug.Err.Error())
		}
	})
	if err != nil && !errors.Is(err, service.ErrNoItems) {
		s.logger.Error("suggest failed", "error", err)
	}

	redirectHome(w, r)
}

// handleSelectSuggestion reads the ingredients from the current suggestion
// and opens the delete confirmation.
func (s *Server) handleSelectSuggestion(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	s.sessions.Update(sess, func(ss *session.Session) {
		if ss.Suggestion == "" {
			ss.AddFlash(session.FlashInfo, "Ask for a suggestion first.")
			return
		}

		names, err := s.service.Ingredients(ss.Suggestion)
		if err != nil {
			ss.AddFlash(session.FlashWarning, "Could not identify the ingredients used by this menu.")
			return
		}
		ss.Pending = names
	})

	redirectHome(w, r)
}

func (s *Server) handleConfirmConsume(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var pending []string
	s.sessions.Update(sess, func(ss *session.Session) { pending = ss.Pending })

	if len(pending) == 0 {
		s.sessions.Update(sess, func(ss *session.Session) {
			ss.AddFlash(session.FlashInfo, "Nothing to delete.")
		})
		redirectHome(w, r)
		return
	}

	result, err := s.service.Consume(r.Context(), pending)
	if err != nil {
		s.logger.Error("consume ingredients failed", "error", err)
	}

	s.sessions.Update(sess, func(ss *session.Session) {
		if err != nil {
			ss.AddFlash(session.FlashError, "Could not delete the ingredients: "+err.Error())
			if result != nil && result.Total > 0 {
				ss.AddFlash(session.FlashWarning, "Deleted before the failure: "+formatDeletions(result))
			}
			return
		}
		ss.ClearSuggestion()
		ss.AddFlash(session.FlashSuccess,
			fmt.Sprintf("%d item(s) deleted from the inventory (%s).", result.Total, formatDeletions(result)))
	})

	redirectHome(w, r)
}

func (s *Server) handleCancelConsume(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	s.sessions.Update(sess, func(ss *session.Session) {
		ss.Pending = nil
		ss.AddFlash(session.FlashInfo, "Deletion cancelled.")
	})

	redirectHome(w, r)
}

func formatDeletions(result *service.ConsumeResult) string {
	parts := make([]string, 0, len(result.Deletions))
	for _, d := range result.Deletions {
		parts = append(parts, fmt.Sprintf("%s: %d", d.Name, d.Count))
	}
	return strings.Join(parts, ", ")
}
