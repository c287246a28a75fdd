package employees

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/innovatech/hr-portal/internal/auth"
	"github.com/innovatech/hr-portal/internal/shared"
	"github.com/innovatech/hr-portal/internal/view"
)

// Handler wires the employee pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	identity  *auth.Identity
	guard     auth.Guard
	editors   []string
	validator *validator.Validate
}

// NewHandler constructs a Handler. editorRoles are the realm roles allowed to
// mutate records.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager, identity *auth.Identity, guard auth.Guard, editorRoles []string) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		csrf:      csrf,
		identity:  identity,
		guard:     guard,
		editors:   editorRoles,
		validator: validator.New(),
	}
}

type employeeForm struct {
	Name       string `validate:"required"`
	Email      string `validate:"required"`
	Department string `validate:"required"`
	Title      string
	Manager    string
	Active     string
}

func formFromRequest(r *http.Request) employeeForm {
	return employeeForm{
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		Email:      strings.TrimSpace(r.PostFormValue("email")),
		Department: strings.TrimSpace(r.PostFormValue("department")),
		Title:      strings.TrimSpace(r.PostFormValue("title")),
		Manager:    strings.TrimSpace(r.PostFormValue("manager")),
		Active:     r.PostFormValue("active"),
	}
}

func formFromEmployee(e Employee) employeeForm {
	active := "true"
	if !e.Active {
		active = "false"
	}
	return employeeForm{
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Title:      e.Title,
		Manager:    e.Manager,
		Active:     active,
	}
}

// employee converts the form into the domain entity. An absent active field
// defaults to true; the value is matched case-insensitively.
func (f employeeForm) employee() Employee {
	activeRaw := f.Active
	if activeRaw == "" {
		activeRaw = "true"
	}
	return Employee{
		Name:       f.Name,
		Email:      f.Email,
		Department: f.Department,
		Title:      f.Title,
		Manager:    f.Manager,
		Active:     strings.EqualFold(activeRaw, "true"),
	}
}

func (h *Handler) formErrors(form employeeForm) map[string]string {
	errs := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				field := strings.ToLower(fieldErr.Field())
				errs[field] = field + " is required"
			}
		}
		errs["general"] = "Name, email, and department are required."
	}
	return errs
}

// Dashboard renders counts and the department list.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Counts(r.Context())
	if err != nil {
		h.logger.Error("dashboard counts", slog.Any("error", err))
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	departments, err := h.service.Departments(r.Context())
	if err != nil {
		h.logger.Error("dashboard departments", slog.Any("error", err))
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "pages/home.html", "Dashboard", map[string]any{
		"Total":         counts.Total,
		"ActiveCount":   counts.Active,
		"InactiveCount": counts.Inactive,
		"Departments":   departments,
	}, http.StatusOK)
}

// List renders the filtered employee table.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")
	activeRaw := r.URL.Query().Get("active")

	filters := Filters{Department: department}
	switch activeRaw {
	case "true":
		yes := true
		filters.Active = &yes
	case "false":
		no := false
		filters.Active = &no
	}

	list, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list employees", slog.Any("error", err))
		http.Error(w, "Failed to load employees", http.StatusInternalServerError)
		return
	}
	departments, err := h.service.Departments(r.Context())
	if err != nil {
		h.logger.Error("list departments", slog.Any("error", err))
		http.Error(w, "Failed to load employees", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/employees_list.html", "Employees", map[string]any{
		"Employees":         list,
		"Departments":       departments,
		"CurrentDepartment": department,
		"CurrentActive":     activeRaw,
	}, http.StatusOK)
}

// Show renders a single employee.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.render(w, r, "pages/employee_detail.html", emp.Name, map[string]any{
		"Employee": emp,
	}, http.StatusOK)
}

// NewForm renders the empty create form.
func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "create", "/employees/new", employeeForm{}, nil, http.StatusOK)
}

// Create validates and persists a new employee.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := formFromRequest(r)
	if errs := h.formErrors(form); len(errs) > 0 {
		h.renderForm(w, r, "create", "/employees/new", form, errs, http.StatusOK)
		return
	}

	created, err := h.service.Create(r.Context(), form.employee())
	if err != nil {
		h.renderForm(w, r, "create", "/employees/new", form, map[string]string{"general": err.Error()}, http.StatusOK)
		return
	}

	h.redirectWithFlash(w, r, "/employees", "success", "Employee "+created.Name+" created.")
}

// EditForm renders the edit form populated from the store.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.lookup(w, r)
	if !ok {
		return
	}
	action := "/employees/" + strconv.FormatInt(emp.ID, 10) + "/edit"
	h.renderForm(w, r, "edit", action, formFromEmployee(emp), nil, http.StatusOK)
}

// Update overwrites an existing employee in place.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	action := "/employees/" + strconv.FormatInt(emp.ID, 10) + "/edit"

	form := formFromRequest(r)
	if errs := h.formErrors(form); len(errs) > 0 {
		h.renderForm(w, r, "edit", action, form, errs, http.StatusOK)
		return
	}

	if err := h.service.Update(r.Context(), emp.ID, form.employee()); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		h.renderForm(w, r, "edit", action, form, map[string]string{"general": err.Error()}, http.StatusOK)
		return
	}

	h.redirectWithFlash(w, r, "/employees/"+strconv.FormatInt(emp.ID, 10), "success", "Employee "+form.Name+" updated.")
}

// Delete removes an employee record.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), emp.ID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		h.logger.Error("delete employee", slog.Any("error", err), slog.Int64("id", emp.ID))
		http.Error(w, "Failed to delete employee", http.StatusInternalServerError)
		return
	}
	h.redirectWithFlash(w, r, "/employees", "success", "Employee "+emp.Name+" deleted.")
}

// lookup resolves the {id} URL parameter to a stored employee, writing the
// 404 response itself when the record is missing.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (Employee, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return Employee{}, false
	}
	emp, err := h.service.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.logger.Error("get employee", slog.Any("error", err), slog.Int64("id", id))
		}
		http.Error(w, "Employee not found", http.StatusNotFound)
		return Employee{}, false
	}
	return emp, true
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, mode, action string, form employeeForm, errs map[string]string, status int) {
	if errs == nil {
		errs = map[string]string{}
	}
	title := "New employee"
	if mode == "edit" {
		title = "Edit employee"
	}
	h.render(w, r, "pages/employee_form.html", title, map[string]any{
		"Mode":   mode,
		"Action": action,
		"Form":   form,
		"Errors": errs,
	}, status)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template, title string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		UserName:    h.identity.DisplayName(sess),
		Data:        data,
	}
	w.WriteHeader(status)
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err), slog.String("template", template))
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusFound)
}
