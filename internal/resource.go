package internal

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"westwind-inventory/internal/entity"
	"westwind-inventory/internal/forms"

	"github.com/go-chi/chi/v5"
)

// resource is the HTTP face of one entity service. The eight routes per
// collection are identical, so they are mounted once here; collections that
// need joined views or form option lists supply detail/formMeta hooks.
type resource[T entity.Record] struct {
	svc *entity.Service[T]

	// detail transforms a record for detail-style responses (assignment
	// views join both referenced records). nil returns the record as is.
	detail func(ctx context.Context, rec T) (any, error)

	// formMeta supplies extra payload for form scaffolds, such as the
	// device and employee option lists on assignment forms.
	formMeta func(ctx context.Context) (map[string]any, error)
}

func mountResource[T entity.Record](r chi.Router, res resource[T]) {
	kind := res.svc.Kind()
	r.Get("/"+res.svc.Plural(), res.list)
	r.Route("/"+kind, func(r chi.Router) {
		r.Get("/create", res.createForm)
		r.Post("/create", res.createSubmit)
		r.Get("/{id}", res.detailView)
		r.Get("/{id}/update", res.updateForm)
		r.Post("/{id}/update", res.updateSubmit)
		r.Get("/{id}/delete", res.deleteForm)
		r.Post("/{id}/delete", res.deleteSubmit)
	})
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (res resource[T]) render(ctx context.Context, rec T) (any, error) {
	if res.detail == nil {
		return rec, nil
	}
	return res.detail(ctx, rec)
}

func (res resource[T]) meta(ctx context.Context) (map[string]any, error) {
	if res.formMeta == nil {
		return map[string]any{}, nil
	}
	return res.formMeta(ctx)
}

func (res resource[T]) list(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	records, err := res.svc.List(r.Context(), params.sort)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	views := make([]any, 0, len(records))
	for _, rec := range records {
		view, err := res.render(r.Context(), rec)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		views = append(views, view)
	}
	sendListResponse(w, views, len(views))
}

func (res resource[T]) detailView(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	rec, err := res.svc.Get(r.Context(), id)
	if errors.Is(err, entity.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	view, err := res.render(r.Context(), rec)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (res resource[T]) createForm(w http.ResponseWriter, r *http.Request) {
	payload, err := res.meta(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	payload["record"] = res.svc.Blank()
	writeJSON(w, http.StatusOK, payload)
}

func (res resource[T]) createSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	rec, _, err := res.svc.Create(r.Context(), r.PostForm)
	if err != nil {
		res.writeError(w, err)
		return
	}
	// Duplicate submissions land here too, redirecting to the record the
	// uniqueness key already matched.
	http.Redirect(w, r, entity.RecordPath(res.svc.Kind(), rec.RecordID()), http.StatusSeeOther)
}

func (res resource[T]) updateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	rec, err := res.svc.Get(r.Context(), id)
	if errors.Is(err, entity.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	payload, err := res.meta(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	payload["record"] = rec
	writeJSON(w, http.StatusOK, payload)
}

func (res resource[T]) updateSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	rec, err := res.svc.Update(r.Context(), id, r.PostForm)
	if err != nil {
		res.writeError(w, err)
		return
	}
	http.Redirect(w, r, entity.RecordPath(res.svc.Kind(), rec.RecordID()), http.StatusSeeOther)
}

func (res resource[T]) deleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	rec, err := res.svc.Get(r.Context(), id)
	if errors.Is(err, entity.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	refs, err := res.svc.Blockers(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	view, err := res.render(r.Context(), rec)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"record":     view,
		"blocked_by": refs,
	})
}

func (res resource[T]) deleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	err := res.svc.DeleteGuarded(r.Context(), id)
	var blocked *entity.BlockedError
	switch {
	case errors.As(err, &blocked):
		writeJSON(w, http.StatusConflict, map[string]any{"blocked_by": blocked.Refs})
	case errors.Is(err, entity.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), 500)
	default:
		http.Redirect(w, r, "/inventory/"+res.svc.Plural(), http.StatusSeeOther)
	}
}

func (res resource[T]) writeError(w http.ResponseWriter, err error) {
	var verrs forms.Errors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verrs})
	case errors.Is(err, entity.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), 500)
	}
}
