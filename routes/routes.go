package routes

import (
	"net/http"

	"eltablero/auth"
	"eltablero/calendar"
	"eltablero/freeplay"
	"eltablero/hub"
	"eltablero/middleware"
	"eltablero/news"
	"eltablero/pricing"
	"eltablero/ratelim"
	"eltablero/reports"
	"eltablero/reservations"
	"eltablero/slots"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/newspic/*filepath", http.Dir("static/newspic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", auth.Logout)
}

func AddReservationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/availability", rl.Limit(reservations.GetAvailability))
	router.GET("/api/reservations", middleware.Authenticate(reservations.GetReservations))
	router.POST("/api/reservations", rl.Limit(middleware.Authenticate(reservations.CreateReservation)))
	router.POST("/api/reservations/bulk-delete", middleware.AdminOnly(reservations.BulkDeleteReservations))
	router.PUT("/api/reservations/:id", middleware.AdminOnly(reservations.UpdateReservation))
	router.PUT("/api/reservations/:id/status", middleware.AdminOnly(reservations.UpdateReservationStatus))
	router.DELETE("/api/reservations/:id", middleware.AdminOnly(reservations.DeleteReservation))
}

func AddTimeSlotRoutes(router *httprouter.Router) {
	router.GET("/api/timeslots", slots.GetTimeSlots)
	router.POST("/api/timeslots", middleware.AdminOnly(slots.CreateTimeSlot))
	router.PUT("/api/timeslots/:id/toggle", middleware.AdminOnly(slots.ToggleTimeSlot))
	router.DELETE("/api/timeslots/:id", middleware.AdminOnly(slots.DeleteTimeSlot))
}

func AddCalendarRoutes(router *httprouter.Router) {
	router.GET("/api/calendar/blocked", calendar.GetBlockedDates)
	router.POST("/api/calendar/blocked/toggle", middleware.AdminOnly(calendar.ToggleBlockedDate))
	router.GET("/api/calendar/special", calendar.GetSpecialDates)
	router.PUT("/api/calendar/special", middleware.AdminOnly(calendar.SetSpecialDate))
	router.DELETE("/api/calendar/special/:date", middleware.AdminOnly(calendar.DeleteSpecialDate))
}

func AddSettingsRoutes(router *httprouter.Router) {
	router.GET("/api/settings/price", pricing.GetPrice)
	router.PUT("/api/settings/price", middleware.AdminOnly(pricing.SetPrice))
	router.GET("/api/settings/alias", pricing.GetAlias)
	router.PUT("/api/settings/alias", middleware.AdminOnly(pricing.SetAlias))
	router.GET("/api/settings/alias/qr", pricing.GetAliasQR)
}

func AddNewsRoutes(router *httprouter.Router) {
	router.GET("/api/news", news.GetNews)
	router.POST("/api/news", middleware.AdminOnly(news.CreateNews))
	router.DELETE("/api/news/:id", middleware.AdminOnly(news.DeleteNews))
}

func AddFreePlayRoutes(router *httprouter.Router) {
	router.GET("/api/freeplay", freeplay.GetFreePlayTables)
	router.POST("/api/freeplay", middleware.AdminOnly(freeplay.CreateFreePlayTable))
	router.PUT("/api/freeplay/:id", middleware.AdminOnly(freeplay.UpdateFreePlayTable))
	router.DELETE("/api/freeplay/:id", middleware.AdminOnly(freeplay.DeleteFreePlayTable))
	router.POST("/api/freeplay/:id/join", middleware.Authenticate(freeplay.JoinFreePlayTable))
	router.POST("/api/freeplay/:id/leave", middleware.Authenticate(freeplay.LeaveFreePlayTable))
}

func AddReportRoutes(router *httprouter.Router) {
	router.GET("/api/reports/day/:date", middleware.AdminOnly(reports.DaySheet))
}

func AddWebsocketRoutes(router *httprouter.Router, h *hub.Hub, newSession hub.SessionFactory) {
	router.GET("/ws/:room", hub.ServeWS(h, newSession))
}
