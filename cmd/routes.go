package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.authenticate, app.rateLimit)

	mux := pat.New()

	// Users
	mux.Post("/users", standardMiddleware.ThenFunc(app.userHandler.CreateUser))
	mux.Get("/users/role", standardMiddleware.ThenFunc(app.userHandler.GetUserRole))

	// Assets
	mux.Post("/assets", authMiddleware.ThenFunc(app.assetHandler.CreateAsset))
	mux.Get("/assets", authMiddleware.ThenFunc(app.assetHandler.GetAssets))
	mux.Post("/assets/upload", authMiddleware.ThenFunc(app.assetHandler.UploadAssetImage))
	mux.Get("/assets/:id", authMiddleware.ThenFunc(app.assetHandler.GetAssetByID))
	mux.Put("/assets/:id", authMiddleware.ThenFunc(app.assetHandler.UpdateAsset))
	mux.Post("/assets/:id/restock", authMiddleware.ThenFunc(app.assetHandler.Restock))
	mux.Del("/assets/:id", authMiddleware.ThenFunc(app.assetHandler.DeleteAsset))

	// Requests
	mux.Post("/requests", authMiddleware.ThenFunc(app.requestHandler.CreateRequest))
	mux.Get("/requests", authMiddleware.ThenFunc(app.requestHandler.GetRequests))
	mux.Get("/requests/my", authMiddleware.ThenFunc(app.requestHandler.GetMyRequests))
	mux.Add("PATCH", "/requests/approve/:id", authMiddleware.ThenFunc(app.requestHandler.ApproveRequest))
	mux.Add("PATCH", "/requests/reject/:id", authMiddleware.ThenFunc(app.requestHandler.RejectRequest))
	mux.Del("/requests/:id", authMiddleware.ThenFunc(app.requestHandler.DeleteRequest))

	// Assignments
	mux.Get("/assignments", authMiddleware.ThenFunc(app.assignmentHandler.GetAssignments))

	// Affiliations
	mux.Get("/affiliations", authMiddleware.ThenFunc(app.affiliationHandler.GetAffiliations))
	mux.Del("/affiliations/:id", authMiddleware.ThenFunc(app.affiliationHandler.DeleteAffiliation))
	mux.Get("/companies", authMiddleware.ThenFunc(app.affiliationHandler.GetCompanies))

	// Packages and payments
	mux.Get("/packages", standardMiddleware.ThenFunc(app.paymentHandler.GetPackages))
	mux.Post("/payments/checkout", authMiddleware.ThenFunc(app.paymentHandler.CreateCheckout))
	mux.Post("/payments/result", standardMiddleware.ThenFunc(app.paymentHandler.PaymentResult))
	mux.Get("/payments", authMiddleware.ThenFunc(app.paymentHandler.GetPayments))

	// Websocket notifications
	mux.Get("/ws", standardMiddleware.Append(app.authenticate).ThenFunc(app.WebSocketHandler))

	mux.Get("/health", standardMiddleware.ThenFunc(app.healthCheck))

	return mux
}

func (app *application) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
