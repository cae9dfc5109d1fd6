package internal

import (
	"context"
	"errors"
	"net/http"

	"westwind-inventory/internal/config"
	"westwind-inventory/internal/entity"
	"westwind-inventory/internal/models"
	"westwind-inventory/internal/store"

	"github.com/go-chi/chi/v5"
)

// Server wires the five entity services onto the HTTP routes. The store
// handle is constructed by the caller and injected here; its lifecycle
// (open at startup, close at shutdown) stays with the caller.
type Server struct {
	Store   *store.Store
	Router  *chi.Mux
	Metrics *Metrics

	Employees           *entity.Service[models.Employee]
	Devices             *entity.Service[models.Device]
	Accessories         *entity.Service[models.Accessory]
	AssignedDevices     *entity.Service[models.AssignedDevice]
	AssignedAccessories *entity.Service[models.AssignedAccessory]
}

func NewServer(st *store.Store, cfg *config.Config) *Server {
	s := &Server{
		Store:               st,
		Router:              chi.NewRouter(),
		Metrics:             NewMetrics(),
		Employees:           newEmployeeService(st),
		Devices:             newDeviceService(st),
		Accessories:         newAccessoryService(st),
		AssignedDevices:     newAssignedDeviceService(st),
		AssignedAccessories: newAssignedAccessoryService(st),
	}

	// chi requires middleware before any route registration.
	if cfg != nil && cfg.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
	}

	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	if cfg != nil && cfg.EnableMetrics {
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	s.Router.Route("/inventory", func(r chi.Router) {
		r.Get("/", s.dashboard)
		mountResource(r, resource[models.Employee]{svc: s.Employees})
		mountResource(r, resource[models.Device]{svc: s.Devices})
		mountResource(r, resource[models.Accessory]{svc: s.Accessories})
		mountResource(r, resource[models.AssignedDevice]{
			svc:      s.AssignedDevices,
			detail:   s.assignedDeviceDetail,
			formMeta: s.deviceAssignmentFormMeta,
		})
		mountResource(r, resource[models.AssignedAccessory]{
			svc:      s.AssignedAccessories,
			detail:   s.assignedAccessoryDetail,
			formMeta: s.accessoryAssignmentFormMeta,
		})
	})

	return s
}

// dashboard reports the size of each collection.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	counts := map[string]any{"title": "Westwind I.T. Employee Devices Inventory"}
	for key, count := range map[string]func(context.Context) (int64, error){
		"employee_count":             s.Employees.Count,
		"device_count":               s.Devices.Count,
		"accessory_count":            s.Accessories.Count,
		"assigned_devices_count":     s.AssignedDevices.Count,
		"assigned_accessories_count": s.AssignedAccessories.Count,
	} {
		n, err := count(ctx)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		counts[key] = n
	}
	writeJSON(w, http.StatusOK, counts)
}

// assignedDeviceDetail joins both referenced records for display. A side
// that no longer resolves stays nil instead of failing the view.
func (s *Server) assignedDeviceDetail(ctx context.Context, rec models.AssignedDevice) (any, error) {
	view := models.AssignedDeviceDetail{AssignedDevice: rec}
	device, err := s.Devices.Get(ctx, rec.DeviceID)
	switch {
	case err == nil:
		view.Device = &device
	case !errors.Is(err, entity.ErrNotFound):
		return nil, err
	}
	employee, err := s.Employees.Get(ctx, rec.EmployeeID)
	switch {
	case err == nil:
		view.Employee = &employee
	case !errors.Is(err, entity.ErrNotFound):
		return nil, err
	}
	return view, nil
}

func (s *Server) assignedAccessoryDetail(ctx context.Context, rec models.AssignedAccessory) (any, error) {
	view := models.AssignedAccessoryDetail{AssignedAccessory: rec}
	accessory, err := s.Accessories.Get(ctx, rec.AccessoryID)
	switch {
	case err == nil:
		view.Accessory = &accessory
	case !errors.Is(err, entity.ErrNotFound):
		return nil, err
	}
	employee, err := s.Employees.Get(ctx, rec.EmployeeID)
	switch {
	case err == nil:
		view.Employee = &employee
	case !errors.Is(err, entity.ErrNotFound):
		return nil, err
	}
	return view, nil
}

// Assignment forms carry the option lists for their select boxes.
func (s *Server) deviceAssignmentFormMeta(ctx context.Context) (map[string]any, error) {
	devices, err := s.Devices.List(ctx, "name")
	if err != nil {
		return nil, err
	}
	employees, err := s.Employees.List(ctx, "name")
	if err != nil {
		return nil, err
	}
	return map[string]any{"devices": devices, "employees": employees}, nil
}

func (s *Server) accessoryAssignmentFormMeta(ctx context.Context) (map[string]any, error) {
	accessories, err := s.Accessories.List(ctx, "name")
	if err != nil {
		return nil, err
	}
	employees, err := s.Employees.List(ctx, "name")
	if err != nil {
		return nil, err
	}
	return map[string]any{"accessories": accessories, "employees": employees}, nil
}
