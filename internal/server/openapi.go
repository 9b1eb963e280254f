package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Rehletna API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Rehletna trivia journey.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/login")
	postLogin.SetSummary("Register device")
	postLogin.SetDescription("Registers a device under a display name. Returns a session token.")
	postLogin.AddReqStructure(LoginRequest{})
	postLogin.AddRespStructure(LoginResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postLogin)

	// POST /api/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/logout")
	postLogout.SetSummary("Log out")
	postLogout.SetDescription("Invalidates the bearer session token.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/me")
	getMe.SetSummary("Current device")
	getMe.SetDescription("Returns the device behind the bearer token.")
	getMe.AddRespStructure(Device{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/state")
	getState.SetSummary("Journey state")
	getState.SetDescription("Returns the score, stage gate, and per-category unlock map. Requires Bearer token.")
	getState.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getState)

	// GET /api/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of score and stage updates. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/riddles/current
	getRiddle, _ := r.NewOperationContext(http.MethodGet, "/api/riddles/current")
	getRiddle.SetSummary("Current riddle")
	getRiddle.SetDescription("Returns the current riddle without its answer. Requires Bearer token and an unlocked stage.")
	getRiddle.AddRespStructure(RiddleView{}, openapi.WithHTTPStatus(http.StatusOK))
	getRiddle.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(getRiddle)

	// POST /api/riddles/hint
	postHint, _ := r.NewOperationContext(http.MethodPost, "/api/riddles/hint")
	postHint.SetSummary("Request hint")
	postHint.SetDescription("Returns the current riddle's hint. The point cost applies once per riddle.")
	postHint.AddRespStructure(HintResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postHint.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postHint)

	// POST /api/riddles/answer
	postRiddleAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/riddles/answer")
	postRiddleAnswer.SetSummary("Answer riddle")
	postRiddleAnswer.SetDescription("Checks the answer with loose Arabic matching. Correct advances, wrong retries.")
	postRiddleAnswer.AddReqStructure(AnswerRequest{})
	postRiddleAnswer.AddRespStructure(AnswerResult{}, openapi.WithHTTPStatus(http.StatusOK))
	postRiddleAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postRiddleAnswer)

	// GET /api/verses
	getVerses, _ := r.NewOperationContext(http.MethodGet, "/api/verses")
	getVerses.SetSummary("Verse levels")
	getVerses.SetDescription("Returns the three difficulty levels with unlock and completion state.")
	getVerses.AddRespStructure([]VerseLevelState{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getVerses)

	// GET /api/verses/{level}/current
	getVerse, _ := r.NewOperationContext(http.MethodGet, "/api/verses/{level}/current")
	getVerse.SetSummary("Current verse challenge")
	getVerse.SetDescription("Returns the next challenge in a level and arms its countdown.")
	getVerse.AddRespStructure(VerseView{}, openapi.WithHTTPStatus(http.StatusOK))
	getVerse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(getVerse)

	// POST /api/verses/{level}/answer
	postVerseAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/verses/{level}/answer")
	postVerseAnswer.SetSummary("Answer verse challenge")
	postVerseAnswer.SetDescription("Checks the answer. A submission after the deadline reveals the solution and advances without scoring.")
	postVerseAnswer.AddReqStructure(AnswerRequest{})
	postVerseAnswer.AddRespStructure(AnswerResult{}, openapi.WithHTTPStatus(http.StatusOK))
	postVerseAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postVerseAnswer)

	// GET /api/links/current
	getLink, _ := r.NewOperationContext(http.MethodGet, "/api/links/current")
	getLink.SetSummary("Current link question")
	getLink.AddRespStructure(LinkView{}, openapi.WithHTTPStatus(http.StatusOK))
	getLink.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(getLink)

	// POST /api/links/answer
	postLinkAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/links/answer")
	postLinkAnswer.SetSummary("Answer link question")
	postLinkAnswer.SetDescription("One attempt per question; the cursor advances right or wrong.")
	postLinkAnswer.AddReqStructure(AnswerRequest{})
	postLinkAnswer.AddRespStructure(AnswerResult{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLinkAnswer)

	// GET /api/quotes/current
	getQuote, _ := r.NewOperationContext(http.MethodGet, "/api/quotes/current")
	getQuote.SetSummary("Current quote question")
	getQuote.AddRespStructure(QuoteView{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuote.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(getQuote)

	// POST /api/quotes/answer
	postQuoteAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/quotes/answer")
	postQuoteAnswer.SetSummary("Answer quote question")
	postQuoteAnswer.SetDescription("One attempt per question; the cursor advances right or wrong.")
	postQuoteAnswer.AddReqStructure(AnswerRequest{})
	postQuoteAnswer.AddRespStructure(AnswerResult{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postQuoteAnswer)

	// GET /api/math/current
	getMath, _ := r.NewOperationContext(http.MethodGet, "/api/math/current")
	getMath.SetSummary("Current math question")
	getMath.SetDescription("Returns the next question and arms its countdown.")
	getMath.AddRespStructure(MathView{}, openapi.WithHTTPStatus(http.StatusOK))
	getMath.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(getMath)

	// POST /api/math/answer
	postMathAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/math/answer")
	postMathAnswer.SetSummary("Answer math question")
	postMathAnswer.SetDescription("A submission after the deadline reveals the solution and advances without scoring.")
	postMathAnswer.AddReqStructure(AnswerRequest{})
	postMathAnswer.AddRespStructure(MathAnswerResult{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postMathAnswer)

	// GET /api/photos
	getPhotos, _ := r.NewOperationContext(http.MethodGet, "/api/photos")
	getPhotos.SetSummary("Photo missions")
	getPhotos.AddRespStructure(PhotoListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getPhotos.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(getPhotos)

	// POST /api/photos/{id}/done
	postPhotoDone, _ := r.NewOperationContext(http.MethodPost, "/api/photos/{id}/done")
	postPhotoDone.SetSummary("Mark mission done")
	postPhotoDone.SetDescription("Awards the mission's points, at most once per mission.")
	postPhotoDone.AddRespStructure(PhotoDoneResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postPhotoDone.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postPhotoDone)

	// POST /api/photos/finish
	postPhotoFinish, _ := r.NewOperationContext(http.MethodPost, "/api/photos/finish")
	postPhotoFinish.SetSummary("Finish photo stage")
	postPhotoFinish.SetDescription("Completes the photo stage. Requires at least one mission done.")
	postPhotoFinish.AddRespStructure(Device{}, openapi.WithHTTPStatus(http.StatusOK))
	postPhotoFinish.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postPhotoFinish)

	// GET /api/wheel
	getWheel, _ := r.NewOperationContext(http.MethodGet, "/api/wheel")
	getWheel.SetSummary("Reward wheel")
	getWheel.SetDescription("Returns the slice list and the spin outcome if one was made.")
	getWheel.AddRespStructure(WheelResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getWheel)

	// POST /api/wheel/spin
	postSpin, _ := r.NewOperationContext(http.MethodPost, "/api/wheel/spin")
	postSpin.SetSummary("Spin the wheel")
	postSpin.SetDescription("Performs the single permitted spin and applies the prize.")
	postSpin.AddRespStructure(WheelResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSpin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postSpin)

	// POST /api/admin/login
	postAdminLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postAdminLogin.SetSummary("Admin login")
	postAdminLogin.SetDescription("Authenticate with the shared editor password. Sets admin_session cookie.")
	postAdminLogin.AddReqStructure(AdminLoginRequest{})
	postAdminLogin.AddRespStructure(AdminStatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAdminLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postAdminLogin)

	// POST /api/admin/logout
	postAdminLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postAdminLogout.SetSummary("Admin logout")
	postAdminLogout.SetDescription("Clears admin session and cookie.")
	postAdminLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postAdminLogout)

	// GET /api/admin/me
	getAdminMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getAdminMe.SetSummary("Admin session check")
	getAdminMe.AddRespStructure(AdminStatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getAdminMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getAdminMe)

	// GET /api/admin/content/{category}
	listContent, _ := r.NewOperationContext(http.MethodGet, "/api/admin/content/{category}")
	listContent.SetSummary("List content")
	listContent.SetDescription("Returns the effective item list for a category and whether it is overridden. Requires admin_session cookie.")
	listContent.AddRespStructure(ContentListResponse[contentItemStub]{}, openapi.WithHTTPStatus(http.StatusOK))
	listContent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(listContent)

	// POST /api/admin/content/{category}
	addContent, _ := r.NewOperationContext(http.MethodPost, "/api/admin/content/{category}")
	addContent.SetSummary("Add item")
	addContent.SetDescription("Adds an item with the next free id and persists the list as an override. Requires admin_session cookie.")
	addContent.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusCreated))
	addContent.AddRespStructure(ValidationError{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(addContent)

	// PUT /api/admin/content/{category}
	replaceContent, _ := r.NewOperationContext(http.MethodPut, "/api/admin/content/{category}")
	replaceContent.SetSummary("Replace list")
	replaceContent.SetDescription("Replaces the category's override list wholesale. Items keep their ids. Requires admin_session cookie.")
	replaceContent.AddReqStructure(ReplaceRequest{})
	replaceContent.AddRespStructure(ContentListResponse[contentItemStub]{}, openapi.WithHTTPStatus(http.StatusOK))
	replaceContent.AddRespStructure(ValidationError{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(replaceContent)

	// PUT /api/admin/content/{category}/{id}
	updateContent, _ := r.NewOperationContext(http.MethodPut, "/api/admin/content/{category}/{id}")
	updateContent.SetSummary("Update item")
	updateContent.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	updateContent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updateContent.AddRespStructure(ValidationError{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(updateContent)

	// DELETE /api/admin/content/{category}/{id}
	deleteContent, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/content/{category}/{id}")
	deleteContent.SetSummary("Delete item")
	deleteContent.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteContent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteContent)

	// POST /api/admin/content/{category}/reorder
	reorderContent, _ := r.NewOperationContext(http.MethodPost, "/api/admin/content/{category}/reorder")
	reorderContent.SetSummary("Move item")
	reorderContent.SetDescription("Moves one item from fromIndex to toIndex. Both must be in range.")
	reorderContent.AddReqStructure(ReorderRequest{})
	reorderContent.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	reorderContent.AddRespStructure(ValidationError{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(reorderContent)

	// DELETE /api/admin/content/{category}/override
	resetContent, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/content/{category}/override")
	resetContent.SetSummary("Reset to defaults")
	resetContent.SetDescription("Removes the category's override so the compiled-in defaults serve again.")
	resetContent.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(resetContent)

	return r.Spec
}

// contentItemStub stands in for the per-category item shape in the spec.
type contentItemStub struct {
	ID int `json:"id"`
}

func (s contentItemStub) ItemID() int { return s.ID }

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
