package http

import (
	"net/http"

	"clinic-backend/internal/delivery/http/handler"
	"clinic-backend/internal/delivery/http/middleware"
	"clinic-backend/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	doctorHandler      *handler.DoctorHandler
	patientHandler     *handler.PatientHandler
	medicineHandler    *handler.MedicineHandler
	orderHandler       *handler.OrderHandler
	labTestHandler     *handler.LabTestHandler
	adminHandler       *handler.AdminHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	medicineHandler *handler.MedicineHandler,
	orderHandler *handler.OrderHandler,
	labTestHandler *handler.LabTestHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		doctorHandler:      doctorHandler,
		patientHandler:     patientHandler,
		medicineHandler:    medicineHandler,
		orderHandler:       orderHandler,
		labTestHandler:     labTestHandler,
		adminHandler:       adminHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Public catalog and directory
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/availability", r.doctorHandler.GetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/slots", r.appointmentHandler.GetAvailableSlots).Methods(http.MethodGet)
	api.HandleFunc("/medicines", r.medicineHandler.ListMedicines).Methods(http.MethodGet)
	api.HandleFunc("/medicines/{id}", r.medicineHandler.GetMedicine).Methods(http.MethodGet)
	api.HandleFunc("/lab-tests", r.labTestHandler.ListLabTests).Methods(http.MethodGet)

	// Appointments (any authenticated role; the usecase scopes by actor)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)

	// Booking requires the patient capability
	booking := api.PathPrefix("/appointments").Subrouter()
	booking.Use(r.authMiddleware.Authenticate)
	booking.Use(middleware.RequireCapability(entity.CapBookCare))
	booking.HandleFunc("", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)

	// Status transitions require the doctor or admin capability
	transitions := api.PathPrefix("/appointments").Subrouter()
	transitions.Use(r.authMiddleware.Authenticate)
	transitions.Use(middleware.RequireCapability(entity.CapTreatPatients, entity.CapAdminister))
	transitions.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)

	// Patient self-service
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequireCapability(entity.CapBookCare))
	patients.HandleFunc("/me", r.patientHandler.GetMyProfile).Methods(http.MethodGet)
	patients.HandleFunc("/me", r.patientHandler.UpdateMyProfile).Methods(http.MethodPut)
	patients.HandleFunc("/me/orders", r.orderHandler.GetMyOrders).Methods(http.MethodGet)
	patients.HandleFunc("/me/lab-bookings", r.labTestHandler.GetMyLabBookings).Methods(http.MethodGet)

	// Orders and lab bookings (patient)
	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(r.authMiddleware.Authenticate)
	orders.HandleFunc("/{id}", r.orderHandler.GetOrder).Methods(http.MethodGet)

	orderCreate := api.PathPrefix("/orders").Subrouter()
	orderCreate.Use(r.authMiddleware.Authenticate)
	orderCreate.Use(middleware.RequireCapability(entity.CapBookCare))
	orderCreate.HandleFunc("", r.orderHandler.CreateOrder).Methods(http.MethodPost)

	labBooking := api.PathPrefix("/lab-bookings").Subrouter()
	labBooking.Use(r.authMiddleware.Authenticate)
	labBooking.Use(middleware.RequireCapability(entity.CapBookCare))
	labBooking.HandleFunc("", r.labTestHandler.BookLabTest).Methods(http.MethodPost)

	// Doctor self-service
	doctorsMe := api.PathPrefix("/doctors/me").Subrouter()
	doctorsMe.Use(r.authMiddleware.Authenticate)
	doctorsMe.Use(middleware.RequireCapability(entity.CapTreatPatients))
	doctorsMe.HandleFunc("/profile", r.doctorHandler.UpdateMyProfile).Methods(http.MethodPut)
	doctorsMe.HandleFunc("/availability", r.doctorHandler.ReplaceMyAvailability).Methods(http.MethodPut)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireCapability(entity.CapAdminister))
	admin.HandleFunc("/doctors", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/patients", r.patientHandler.ListPatients).Methods(http.MethodGet)
	admin.HandleFunc("/medicines", r.medicineHandler.CreateMedicine).Methods(http.MethodPost)
	admin.HandleFunc("/medicines/{id}", r.medicineHandler.UpdateMedicine).Methods(http.MethodPut)
	admin.HandleFunc("/medicines/{id}", r.medicineHandler.DeleteMedicine).Methods(http.MethodDelete)
	admin.HandleFunc("/lab-tests", r.labTestHandler.CreateLabTest).Methods(http.MethodPost)
	admin.HandleFunc("/lab-tests/{id}", r.labTestHandler.UpdateLabTest).Methods(http.MethodPut)
	admin.HandleFunc("/lab-tests/{id}", r.labTestHandler.DeleteLabTest).Methods(http.MethodDelete)
	admin.HandleFunc("/orders", r.orderHandler.ListAllOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/status", r.orderHandler.UpdateOrderStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/lab-bookings", r.labTestHandler.ListAllLabBookings).Methods(http.MethodGet)
	admin.HandleFunc("/lab-bookings/{id}/status", r.labTestHandler.UpdateLabBookingStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/roles", r.adminHandler.ListRoles).Methods(http.MethodGet)
	admin.HandleFunc("/stats", r.adminHandler.GetClinicStats).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.adminHandler.ListAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
