// Package momotest runs an in-memory MoMo API for tests. It checks the
// headers each endpoint requires, keeps submitted transactions by reference
// id and lets a test override any route with a canned response.
package momotest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Credentials the server accepts out of the box
const (
	SubscriptionKey = "test-subscription-key"
	APIUser         = "c72025f5-5cd1-4630-99e4-8ba4722fad56"
	APIKey          = "f1db798c98df4bcf83b538175893bbf0"
	AccessToken     = "test-access-token"
	TokenExpiresIn  = 3600
)

// resources each product accepts state-changing requests on
var resources = map[string][]string{
	"collection":   {"requesttopay"},
	"disbursement": {"deposit", "transfer", "refund"},
}

// RecordedRequest is a request as the server received it
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type cannedResponse struct {
	status int
	body   string
}

// Server is a fake MoMo API mounted on an httptest.Server
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	credentials   map[string]string
	transactions  map[string]map[string]any
	users         map[string]map[string]any
	overrides     map[string]cannedResponse
	requests      []RecordedRequest
	initialStatus string
	balance       string
	currency      string
	tokensIssued  int
}

// New starts a server that is closed when the test ends
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		credentials:   map[string]string{APIUser: APIKey},
		transactions:  make(map[string]map[string]any),
		users:         make(map[string]map[string]any),
		overrides:     make(map[string]cannedResponse),
		initialStatus: "PENDING",
		balance:       "1000",
		currency:      "EUR",
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.canned)

	for product, names := range resources {
		r.Route("/"+product, func(r chi.Router) {
			r.Post("/token/", s.issueToken)

			r.Group(func(r chi.Router) {
				r.Use(s.requireBearer)
				r.Get("/v1_0/account/balance", s.getBalance)
				for _, name := range names {
					r.Post("/v1_0/"+name, s.createTransaction)
					r.Get("/v1_0/"+name+"/{referenceID}", s.getTransaction)
				}
			})
		})
	}

	r.Route("/v1_0/apiuser", func(r chi.Router) {
		r.Use(s.requireSubscriptionKey)
		r.Post("/", s.createAPIUser)
		r.Get("/{apiUser}", s.getAPIUser)
		r.Post("/{apiUser}/apikey", s.createAPIKey)
	})

	return r
}

// Respond makes every method request to path answer with status and body
func (s *Server) Respond(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = cannedResponse{status: status, body: body}
}

// SetInitialStatus sets the status new transactions start in. Defaults to PENDING.
func (s *Server) SetInitialStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialStatus = status
}

// SetStatus moves the transaction with referenceID to status
func (s *Server) SetStatus(referenceID, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.transactions {
		if tx["_referenceId"] == referenceID {
			applyStatus(tx, status)
			return true
		}
	}
	return false
}

// SetBalance sets the balance both products report
func (s *Server) SetBalance(available, currency string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance, s.currency = available, currency
}

// Requests returns every request received so far
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo returns the requests received for method and path
func (s *Server) RequestsTo(method, path string) []RecordedRequest {
	var out []RecordedRequest
	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

// LastRequest returns the most recent request, or the zero value if none arrived
func (s *Server) LastRequest() RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}
	}
	return s.requests[len(s.requests)-1]
}

// TokensIssued returns how many access tokens have been handed out
func (s *Server) TokensIssued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokensIssued
}

// Middleware

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) canned(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		resp, ok := s.overrides[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if resp.body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)
	})
}

func (s *Server) requireSubscriptionKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Ocp-Apim-Subscription-Key") != SubscriptionKey {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"statusCode": http.StatusUnauthorized,
				"message":    "Access denied due to invalid subscription key. Make sure to provide a valid key for an active subscription.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return s.requireSubscriptionKey(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+AccessToken {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"code":    "INVALID_TOKEN",
				"message": "Access token is missing or invalid",
			})
			return
		}
		if r.Header.Get("X-Target-Environment") == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"code":    "INVALID_TARGET_ENVIRONMENT",
				"message": "X-Target-Environment header is required",
			})
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// Handlers

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Ocp-Apim-Subscription-Key") != SubscriptionKey {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid subscription key"})
		return
	}

	user, key, ok := r.BasicAuth()
	s.mu.Lock()
	valid := ok && key != "" && s.credentials[user] == key
	if valid {
		s.tokensIssued++
	}
	s.mu.Unlock()

	if !valid {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "login_failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": AccessToken,
		"token_type":   "access_token",
		"expires_in":   TokenExpiresIn,
	})
}

func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	balance := map[string]any{"availableBalance": s.balance, "currency": s.currency}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, balance)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	referenceID := r.Header.Get("X-Reference-Id")
	if _, err := uuid.Parse(referenceID); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":    "INVALID_REFERENCE_ID",
			"message": "X-Reference-Id must be a UUID",
		})
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":    "INVALID_BODY",
			"message": "request body must be a JSON object",
		})
		return
	}

	key := r.URL.Path + "/" + referenceID

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.transactions[key]; exists {
		writeJSON(w, http.StatusConflict, map[string]any{
			"code":    "RESOURCE_ALREADY_EXIST",
			"message": "Duplicated reference id. Creation of resource failed.",
		})
		return
	}

	tx := make(map[string]any, len(body)+2)
	for k, v := range body {
		tx[k] = v
	}
	tx["_referenceId"] = referenceID
	applyStatus(tx, s.initialStatus)
	s.transactions[key] = tx

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tx, ok := s.transactions[r.URL.Path]
	var out map[string]any
	if ok {
		out = make(map[string]any, len(tx))
		for k, v := range tx {
			if k != "_referenceId" {
				out[k] = v
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"code":    "RESOURCE_NOT_FOUND",
			"message": "Requested resource was not found.",
		})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createAPIUser(w http.ResponseWriter, r *http.Request) {
	apiUser := r.Header.Get("X-Reference-Id")
	if apiUser == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "X-Reference-Id is required"})
		return
	}

	var body struct {
		ProviderCallbackHost string `json:"providerCallbackHost"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[apiUser]; exists {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "Conflict"})
		return
	}
	s.users[apiUser] = map[string]any{
		"providerCallbackHost": body.ProviderCallbackHost,
		"targetEnvironment":    "sandbox",
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) getAPIUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user, ok := s.users[chi.URLParam(r, "apiUser")]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not found"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) createAPIKey(w http.ResponseWriter, r *http.Request) {
	apiUser := chi.URLParam(r, "apiUser")

	s.mu.Lock()
	_, ok := s.users[apiUser]
	var apiKey string
	if ok {
		apiKey = strings.ReplaceAll(uuid.NewString(), "-", "")
		s.credentials[apiUser] = apiKey
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not found"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"apiKey": apiKey})
}

func applyStatus(tx map[string]any, status string) {
	tx["status"] = status
	delete(tx, "reason")
	switch status {
	case "SUCCESSFUL":
		tx["financialTransactionId"] = "363440463"
	case "FAILED":
		tx["reason"] = map[string]any{
			"code":    "APPROVAL_REJECTED",
			"message": "The payer rejected the request.",
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
