// internal/app/features/classes/routes.go
package classes

import (
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts class CRUD and the nested attendance reports. Reading is
// open to the staff roles; mutation needs the manage-classes capability.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authz.RequireRole(models.RoleAdmin, models.RoleClerk, models.RoleInstructor))

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeClass)
	r.Get("/{id}/attendance", h.ServeAttendance)
	r.Get("/{id}/attendance/date/{date}", h.ServeAttendanceByDate)
	r.Post("/{id}/attendance", h.HandleCreateAttendance)
	r.Put("/{id}/attendance/{attendanceID}", h.HandleUpdateAttendance)
	r.Delete("/{id}/attendance/{attendanceID}", h.HandleDeleteAttendance)

	r.Group(func(r chi.Router) {
		r.Use(authz.RequirePermission(func(c authz.Capabilities) bool { return c.ManageClasses }))
		r.Post("/", h.HandleCreate)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})

	return r
}
