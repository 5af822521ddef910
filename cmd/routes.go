package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	adminMiddleware := standardMiddleware.Append(app.requireAdmin)

	mux := pat.New()

	// Auth
	mux.Post("/api/auth/login", standardMiddleware.ThenFunc(app.authHandler.Login))
	mux.Post("/api/auth/logout", adminMiddleware.ThenFunc(app.authHandler.Logout))
	mux.Get("/api/auth/me", adminMiddleware.ThenFunc(app.authHandler.Me))

	// Submissions
	mux.Get("/api/submissions/audit", adminMiddleware.ThenFunc(app.submissionHandler.Audit))
	mux.Get("/api/submissions", adminMiddleware.ThenFunc(app.submissionHandler.List))
	mux.Get("/api/submissions/:type/:id", adminMiddleware.ThenFunc(app.submissionHandler.Get))
	mux.Put("/api/submissions/:type/:id/approve", adminMiddleware.ThenFunc(app.submissionHandler.Approve))
	mux.Put("/api/submissions/:type/:id/reject", adminMiddleware.ThenFunc(app.submissionHandler.Reject))
	mux.Del("/api/submissions/:type/:id", adminMiddleware.ThenFunc(app.submissionHandler.Delete))

	// Products
	mux.Get("/api/products", adminMiddleware.ThenFunc(app.productHandler.List))
	mux.Get("/api/products/:id", adminMiddleware.ThenFunc(app.productHandler.Get))
	mux.Del("/api/products/:id", adminMiddleware.ThenFunc(app.productHandler.Delete))

	// Professionals
	mux.Get("/api/professionals", adminMiddleware.ThenFunc(app.professionalHandler.List))
	mux.Get("/api/professionals/:id", adminMiddleware.ThenFunc(app.professionalHandler.Get))
	mux.Del("/api/professionals/:id", adminMiddleware.ThenFunc(app.professionalHandler.Delete))

	// Businesses
	mux.Get("/api/businesses", adminMiddleware.ThenFunc(app.businessHandler.List))
	mux.Get("/api/businesses/:id", adminMiddleware.ThenFunc(app.businessHandler.Get))
	mux.Patch("/api/businesses/:id", adminMiddleware.ThenFunc(app.businessHandler.Update))
	mux.Del("/api/businesses/:id", adminMiddleware.ThenFunc(app.businessHandler.Delete))

	// Plans
	mux.Get("/api/plans", adminMiddleware.ThenFunc(app.planHandler.List))
	mux.Get("/api/plans/:id", adminMiddleware.ThenFunc(app.planHandler.Get))
	mux.Put("/api/plans/:id", adminMiddleware.ThenFunc(app.planHandler.Update))
	mux.Del("/api/plans/:id", adminMiddleware.ThenFunc(app.planHandler.Delete))

	// Users
	mux.Get("/api/users", adminMiddleware.ThenFunc(app.userHandler.List))
	mux.Get("/api/users/:id", adminMiddleware.ThenFunc(app.userHandler.Get))
	mux.Del("/api/users/:id", adminMiddleware.ThenFunc(app.userHandler.Delete))

	// Live board updates
	mux.Get("/ws", alice.New(app.recoverPanic, app.logRequest, app.requireAdmin).ThenFunc(app.WebSocketHandler))

	return mux
}
