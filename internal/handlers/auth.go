package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-kit/log/level"

	"github.com/AnshRaj112/dhrms-backend/internal/models"
	"github.com/AnshRaj112/dhrms-backend/internal/services"
)

// Home renders the landing page for signed-out visitors.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	req, ok := h.enter(w, r, models.PageHome)
	if !ok {
		return
	}
	data := h.pageData(r, req, models.PageHome)
	if next := safeNext(r.URL.Query().Get("next")); next != "" {
		data.Actions = withReturnTo(data.Actions, next)
	}
	h.views.render(w, http.StatusOK, "index", data, h.logger)
}

// withReturnTo points the sign-in action back at the page the visitor wanted.
func withReturnTo(actions []services.QuickAction, next string) []services.QuickAction {
	out := make([]services.QuickAction, len(actions))
	for i, a := range actions {
		if a.Target == models.PageSignIn.Path() {
			a.Target += "?next=" + url.QueryEscape(next)
		}
		out[i] = a
	}
	return out
}

func (h *Handler) SignInPage(w http.ResponseWriter, r *http.Request) {
	req, ok := h.enter(w, r, models.PageSignIn)
	if !ok {
		return
	}
	data := h.pageData(r, req, models.PageSignIn)
	data.Values = map[string]string{"field": string(services.FieldEmail), "next": safeNext(r.URL.Query().Get("next"))}
	h.views.render(w, http.StatusOK, "signin", data, h.logger)
}

// SignIn authenticates against the administrator and the profile's users.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	req, ok := h.enter(w, r, models.PageSignIn)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	values := map[string]string{
		"field":      r.PostForm.Get("field"),
		"identifier": strings.TrimSpace(r.PostForm.Get("identifier")),
		"next":       safeNext(r.PostForm.Get("next")),
	}
	field, valid := services.ParseIdentifierField(values["field"])
	if !valid {
		h.signInFailed(w, r, req, values, services.NewValidationError("field", "choose email, phone, username or ID"))
		return
	}

	user, err := h.sessions.SignIn(r.Context(), req.profile, services.Credentials{
		Field:    field,
		Value:    values["identifier"],
		Password: r.PostForm.Get("password"),
	})
	if err != nil {
		h.signInFailed(w, r, req, values, err)
		return
	}
	h.metrics.AuthEvent("signin", "ok")

	if services.IsAdmin(&user) {
		redirect(w, r, models.PageDashboard.Path(), NoticeAdminSignedIn)
		return
	}
	target := services.FirstFormPage().Path()
	if values["next"] != "" {
		target = values["next"]
	}
	redirect(w, r, target, NoticeSignedIn)
}

func (h *Handler) signInFailed(w http.ResponseWriter, r *http.Request, req request, values map[string]string, err error) {
	kind := services.KindOf(err)
	h.metrics.AuthEvent("signin", string(kind))

	var status int
	var message string
	switch kind {
	case services.KindValidation:
		status, message = http.StatusBadRequest, errorMessage(err)
	case services.KindInvalidCredentials:
		status, message = http.StatusUnauthorized, "Invalid credentials. Please check your details and password."
	default:
		h.serverError(w, r, err)
		return
	}
	level.Debug(h.logger).Log("msg", "sign in failed", "profile", req.profile, "kind", kind)

	data := h.pageData(r, req, models.PageSignIn)
	data.Values = values
	data.Error = message
	data.ErrorField = errorField(err)
	h.views.render(w, status, "signin", data, h.logger)
}

func (h *Handler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	req, ok := h.enter(w, r, models.PageSignUp)
	if !ok {
		return
	}
	data := h.pageData(r, req, models.PageSignUp)
	data.Values = map[string]string{"role": string(models.RoleMigrant)}
	h.views.render(w, http.StatusOK, "signup", data, h.logger)
}

// SignUp registers a user in the profile and signs them in.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := h.enter(w, r, models.PageSignUp)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	f := r.PostForm
	in := services.SignUpInput{
		ID:              f.Get("id"),
		FullName:        f.Get("full_name"),
		Username:        f.Get("username"),
		Email:           f.Get("email"),
		Phone:           f.Get("phone"),
		Gender:          f.Get("gender"),
		DOB:             f.Get("dob"),
		Password:        f.Get("password"),
		ConfirmPassword: f.Get("confirm_password"),
		Role:            f.Get("role"),
		AcceptedTerms:   f.Get("terms") != "",
		MedicalLicense:  f.Get("medical_license"),
		Specialization:  f.Get("specialization"),
		Facility:        f.Get("facility"),
	}

	if _, err := h.sessions.SignUp(r.Context(), req.profile, in); err != nil {
		kind := services.KindOf(err)
		h.metrics.AuthEvent("signup", string(kind))

		var status int
		switch kind {
		case services.KindValidation:
			status = http.StatusBadRequest
		case services.KindDuplicateUser:
			status = http.StatusConflict
		default:
			h.serverError(w, r, err)
			return
		}

		data := h.pageData(r, req, models.PageSignUp)
		data.Values = map[string]string{}
		for _, k := range []string{"id", "full_name", "username", "email", "phone", "gender", "dob", "role", "terms",
			"medical_license", "specialization", "facility"} {
			data.Values[k] = f.Get(k)
		}
		data.Error = errorMessage(err)
		data.ErrorField = errorField(err)
		h.views.render(w, status, "signup", data, h.logger)
		return
	}

	h.metrics.AuthEvent("signup", "ok")
	redirect(w, r, services.FirstFormPage().Path(), NoticeRegistered)
}

// Logout ends the session. It is safe to call without one.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := h.resolve(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if err := h.sessions.SignOut(ctx, req.profile); err != nil {
		h.serverError(w, r, err)
		return
	}
	if req.user != nil {
		h.metrics.AuthEvent("signout", "ok")
	}
	redirect(w, r, models.PageHome.Path(), NoticeSignedOut)
}

// safeNext keeps only form pages as post-sign-in targets and always returns
// the canonical path, never the submitted string.
func safeNext(next string) string {
	page, ok := models.LookupPage(next)
	if !ok || page.Type != models.PageForm {
		return ""
	}
	return page.Path()
}

func errorMessage(err error) string {
	var se *services.Error
	if errors.As(err, &se) && se.Message != "" {
		return capitalize(se.Message) + "."
	}
	return "The request could not be completed."
}

func errorField(err error) string {
	var se *services.Error
	if errors.As(err, &se) {
		return se.Field
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
