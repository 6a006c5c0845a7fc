package handlers

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	JobHandler          *JobHandler
	ApplicationHandler  *ApplicationHandler
	BookingHandler      *BookingHandler
	ReviewHandler       *ReviewHandler
	NotificationHandler *NotificationHandler
}
