package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/flowgate/flowgate/modules/approvals/domain/aggregates/request"
	"github.com/flowgate/flowgate/modules/approvals/domain/entities/actor"
	"github.com/flowgate/flowgate/modules/approvals/presentation/mappers"
	"github.com/flowgate/flowgate/modules/approvals/presentation/viewmodels"
	"github.com/flowgate/flowgate/modules/approvals/services"
	"github.com/flowgate/flowgate/pkg/application"
	"github.com/flowgate/flowgate/pkg/configuration"
	"github.com/flowgate/flowgate/pkg/serrors"
)

type RequestAPIController struct {
	app       application.Application
	requests  *services.RequestService
	directory actor.Directory
	basePath  string
}

func NewRequestAPIController(app application.Application, directory actor.Directory) application.Controller {
	return &RequestAPIController{
		app:       app,
		requests:  app.Service(services.RequestService{}).(*services.RequestService),
		directory: directory,
		basePath:  "/approvals/api",
	}
}

func (c *RequestAPIController) Key() string {
	return c.basePath
}

func (c *RequestAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/requests", instrumentAPI("requests_create", c.Create)).Methods(http.MethodPost)
	router.HandleFunc("/requests", instrumentAPI("requests_list", c.List)).Methods(http.MethodGet)
	router.HandleFunc("/requests/actionable", instrumentAPI("requests_actionable", c.Actionable)).Methods(http.MethodGet)
	router.HandleFunc("/requests/{id}", instrumentAPI("requests_get", c.GetByID)).Methods(http.MethodGet)
	router.HandleFunc("/requests/{id}/decision", instrumentAPI("requests_decide", c.Decide)).Methods(http.MethodPost)
	router.HandleFunc("/requests/{id}/progress", instrumentAPI("requests_progress", c.Progress)).Methods(http.MethodGet)
	router.HandleFunc("/stats", instrumentAPI("stats", c.Stats)).Methods(http.MethodGet)
	router.HandleFunc("/actors", instrumentAPI("actors", c.Actors)).Methods(http.MethodGet)
}

// actorID reads the acting user from the configured identity header.
func (c *RequestAPIController) actorID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := strings.TrimSpace(r.Header.Get(configuration.Use().ActorIDHeader))
	if raw == "" {
		writeJSONError(w, http.StatusUnauthorized, "APPROVALS_NO_ACTOR", "actor header missing")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "APPROVALS_BAD_ACTOR", "actor header is not a valid id")
		return uuid.Nil, false
	}
	return id, true
}

func (c *RequestAPIController) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := c.actorID(w, r)
	if !ok {
		return
	}

	var dto request.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeJSONError(w, http.StatusBadRequest, "APPROVALS_INVALID_JSON", "invalid json")
		return
	}
	dto.EmployeeID = actorID

	created, err := c.requests.Create(r.Context(), &dto)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}

	approvalsDecisions.WithLabelValues("employee", "submit").Inc()
	writeJSON(w, http.StatusCreated, mappers.RequestToListItem(created))
}

func (c *RequestAPIController) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := c.actorID(w, r)
	if !ok {
		return
	}

	items, err := c.requests.RelevantForActor(r.Context(), actorID)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.RequestsToListItems(items),
	})
}

func (c *RequestAPIController) Actionable(w http.ResponseWriter, r *http.Request) {
	actorID, ok := c.actorID(w, r)
	if !ok {
		return
	}

	items, err := c.requests.ActionableForActor(r.Context(), actorID)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.RequestsToListItems(items),
	})
}

func (c *RequestAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.actorID(w, r); !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "APPROVALS_BAD_ID", "request id is not a valid uuid")
		return
	}

	found, err := c.requests.GetByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.RequestToListItem(found))
}

func (c *RequestAPIController) Decide(w http.ResponseWriter, r *http.Request) {
	actorID, ok := c.actorID(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "APPROVALS_BAD_ID", "request id is not a valid uuid")
		return
	}

	var dto request.DecideDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeJSONError(w, http.StatusBadRequest, "APPROVALS_INVALID_JSON", "invalid json")
		return
	}
	dto.RequestID = id
	dto.ActorID = actorID

	updated, err := c.requests.Transition(r.Context(), &dto)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}

	if acting, derr := c.directory.ResolveActor(r.Context(), actorID); derr == nil {
		approvalsDecisions.WithLabelValues(string(acting.Role()), dto.Decision).Inc()
	}
	writeJSON(w, http.StatusOK, mappers.RequestToListItem(updated))
}

func (c *RequestAPIController) Progress(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.actorID(w, r); !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "APPROVALS_BAD_ID", "request id is not a valid uuid")
		return
	}

	found, err := c.requests.GetByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   string(found.Status()),
		"progress": mappers.ProjectStages(found.Status()),
	})
}

func (c *RequestAPIController) Stats(w http.ResponseWriter, r *http.Request) {
	actorID, ok := c.actorID(w, r)
	if !ok {
		return
	}

	stats, err := c.requests.StatsForActor(r.Context(), actorID)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &viewmodels.StatsView{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Approved:  stats.Approved,
		Rejected:  stats.Rejected,
		Important: stats.Important,
	})
}

func (c *RequestAPIController) Actors(w http.ResponseWriter, r *http.Request) {
	actors, err := c.directory.All(r.Context())
	if err != nil {
		c.writeServiceError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(actors))
	for _, a := range actors {
		out = append(out, map[string]any{
			"id":            a.ID().String(),
			"employee_code": a.EmployeeCode(),
			"name":          a.Name(),
			"email":         a.Email(),
			"role":          string(a.Role()),
			"department":    a.Department(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *RequestAPIController) writeServiceError(w http.ResponseWriter, err error) {
	var vErrs serrors.ValidationErrors
	switch {
	case errors.As(err, &vErrs):
		writeJSONError(w, http.StatusUnprocessableEntity, "APPROVALS_VALIDATION_FAILED", "validation failed", vErrs.Fields())
	case errors.Is(err, actor.ErrActorNotFound):
		writeJSONError(w, http.StatusNotFound, "APPROVALS_ACTOR_NOT_FOUND", "actor not found")
	case errors.Is(err, request.ErrRequestNotFound):
		writeJSONError(w, http.StatusNotFound, "APPROVALS_REQUEST_NOT_FOUND", "request not found")
	case errors.Is(err, request.ErrUnauthorizedRole):
		writeJSONError(w, http.StatusForbidden, "APPROVALS_UNAUTHORIZED_ROLE", "role is not allowed to act on this request")
	case errors.Is(err, services.ErrSubmitterNotEmployee):
		writeJSONError(w, http.StatusForbidden, "APPROVALS_SUBMITTER_NOT_EMPLOYEE", "only employees can submit requests")
	case errors.Is(err, request.ErrInvalidTransition):
		writeJSONError(w, http.StatusConflict, "APPROVALS_INVALID_TRANSITION", "request is not at a stage this actor can decide")
	default:
		writeJSONError(w, http.StatusInternalServerError, "APPROVALS_INTERNAL", "internal error")
	}
}
