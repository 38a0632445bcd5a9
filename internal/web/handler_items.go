package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vbonduro/kondate/internal/domain"
	"github.com/vbonduro/kondate/internal/service"
	"github.com/vbonduro/kondate/internal/session"
)

var indexFiles = []string{
	"base.html", "pages/index.html", "partials/food_table.html", "partials/suggestion.html",
}

type itemForm struct {
	Name         string
	PurchaseDate string
	ExpiryDate   string
	Quantity     string
	Errors       map[string]string
}

type indexPage struct {
	Items      []*domain.FoodItem
	Flashes    []session.Flash
	Form       itemForm
	Suggestion string
	Pending    []service.Match
}

// defaultForm pre-fills today's purchase date and a one-week expiry.
func (s *Server) defaultForm() itemForm {
	now := s.now()
	return itemForm{
		PurchaseDate: now.Format(domain.DateLayout),
		ExpiryDate:   now.AddDate(0, 0, 7).Format(domain.DateLayout),
		Quantity:     "1",
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.renderIndex(w, r, sess, http.StatusOK, s.defaultForm())
}

// renderIndex draws the whole page from the inventory and the session. Store
// failures become messages on the page rather than an error response.
func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, sess *session.Session, status int, form itemForm) {
	ctx := r.Context()

	var page indexPage
	page.Form = form

	items, err := s.service.ListFoods(ctx)
	if err != nil {
		s.logger.Error("list food items failed", "error", err)
		s.sessions.Update(sess, func(ss *session.Session) {
			ss.AddFlash(session.FlashError, "Could not load the inventory: "+err.Error())
		})
		status = http.StatusInternalServerError
	}
	page.Items = items

	var pending []string
	s.sessions.Update(sess, func(ss *session.Session) {
		page.Suggestion = ss.Suggestion
		pending = ss.Pending
	})

	if len(pending) > 0 {
		matches, err := s.service.Preview(ctx, pending)
		if err != nil {
			s.logger.Error("preview consume failed", "error", err)
			s.sessions.Update(sess, func(ss *session.Session) {
				ss.AddFlash(session.FlashError, "Could not look up the ingredients: "+err.Error())
			})
		}
		page.Pending = matches
	}

	s.sessions.Update(sess, func(ss *session.Session) {
		page.Flashes = ss.TakeFlashes()
	})

	if err := s.renderPage(w, status, page, indexFiles...); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	// HTMX partial update: return only the table fragment.
	if r.Header.Get("HX-Request") != "true" {
		s.handleIndex(w, r)
		return
	}

	items, err := s.service.ListFoods(r.Context())
	if err != nil {
		http.Error(w, "failed to list food items", http.StatusInternalServerError)
		s.logger.Error("list food items failed", "error", err)
		return
	}

	if err := s.renderPartial(w, "partials/food_table.html", items); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	form := itemForm{
		Name:         r.FormValue("name"),
		PurchaseDate: r.FormValue("purchase_date"),
		ExpiryDate:   r.FormValue("expiry_date"),
		Quantity:     r.FormValue("quantity"),
	}

	item, err := s.service.AddFood(r.Context(), service.FoodInput{
		Name:         form.Name,
		PurchaseDate: form.PurchaseDate,
		ExpiryDate:   form.ExpiryDate,
		Quantity:     form.Quantity,
	})

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		form.Errors = verr.Fields
		s.sessions.Update(sess, func(ss *session.Session) {
			ss.AddFlash(session.FlashWarning, "Please fix the highlighted fields.")
		})
		s.renderIndex(w, r, sess, http.StatusBadRequest, form)
		return
	case err != nil:
		s.logger.Error("add food item failed", "error", err)
		s.sessions.Update(sess, func(ss *session.Session) {
			ss.AddFlash(session.FlashError, "Could not add the item: "+err.Error())
		})
	default:
		s.sessions.Update(sess, func(ss *session.Session) {
			ss.AddFlash(session.FlashSuccess, fmt.Sprintf("Added %s.", item.Name))
		})
	}

	redirectHome(w, r)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	deleted, err := s.service.Reset(r.Context())
	s.sessions.Update(sess, func(ss *session.Session) {
		if err != nil {
			ss.AddFlash(session.FlashError, "Could not reset the inventory: "+err.Error())
			return
		}
		ss.Pending = nil
		ss.AddFlash(session.FlashSuccess, fmt.Sprintf("Inventory reset: %d item(s) deleted.", deleted))
	})
	if err != nil {
		s.logger.Error("reset inventory failed", "error", err)
	}

	redirectHome(w, r)
}
