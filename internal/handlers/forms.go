package handlers

import (
	"net/http"

	"github.com/go-kit/log/level"

	"github.com/AnshRaj112/dhrms-backend/internal/models"
	"github.com/AnshRaj112/dhrms-backend/internal/services"
)

// FormPage renders a record-entry page prefilled with its last submission.
func (h *Handler) FormPage(page models.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.enter(w, r, page)
		if !ok {
			return
		}
		blob, err := h.repo.FormBlob(r.Context(), req.profile, page)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		h.views.render(w, http.StatusOK, "form", h.formData(r, req, page, blob), h.logger)
	}
}

// SaveForm validates and stores the page's blob, then moves on to the next
// page of the sequence. The last page returns to itself.
func (h *Handler) SaveForm(page models.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.enter(w, r, page)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		blob, err := services.ValidateForm(page, r.PostForm)
		if err != nil {
			if !services.IsValidation(err) {
				h.serverError(w, r, err)
				return
			}
			submitted := make(models.FormBlob, len(r.PostForm))
			for k := range r.PostForm {
				submitted[k] = r.PostForm.Get(k)
			}
			data := h.formData(r, req, page, submitted)
			data.Error = errorMessage(err)
			data.ErrorField = errorField(err)
			h.views.render(w, http.StatusBadRequest, "form", data, h.logger)
			return
		}

		if err := h.repo.SaveFormBlob(r.Context(), req.profile, page, blob); err != nil {
			h.serverError(w, r, err)
			return
		}
		level.Info(h.logger).Log("msg", "form saved", "profile", req.profile, "page", page.Name)

		if next, ok := services.NextPage(page.File); ok {
			redirect(w, r, next.Path(), NoticeSaved)
			return
		}
		redirect(w, r, page.Path(), NoticeSaved)
	}
}

func (h *Handler) formData(r *http.Request, req request, page models.Page, values models.FormBlob) *pageData {
	data := h.pageData(r, req, page)
	data.Fields = models.FormFields[page.Name]
	data.Values = values
	data.Next, _ = services.NextPage(page.File)
	return data
}
