// Package hobbytest runs an in-memory hobbies API for tests.
//
// It mimics the real backend closely enough to exercise the client: session
// cookie auth, CSRF checks on POST, the same JSON shapes and error bodies.
package hobbytest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.mau.fi/util/exhttp"
	"go.mau.fi/util/random"

	"github.com/hobbyhub/hobbies/pkg/hobbygo/cookies"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/csrf"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/types"
)

type RecordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	CSRFHeader  string
	HasCSRF     bool
	Cookie      string
	RequestID   string
	Body        []byte
}

type injectedFailure struct {
	status int
	body   any
}

type Server struct {
	*httptest.Server

	lock      sync.Mutex
	user      types.User
	catalog   []types.Hobby
	password  string
	sessionID string
	csrfToken string
	requests  []RecordedRequest
	failures  map[string][]injectedFailure
	gates     map[string]chan struct{}
	// rotateCSRF hands out a new csrftoken cookie on every CSRF-checked POST.
	rotateCSRF bool
}

func NewServer(user types.User, catalog []types.Hobby, password string) *Server {
	s := &Server{
		user:      user,
		catalog:   slices.Clone(catalog),
		password:  password,
		sessionID: random.String(32),
		csrfToken: random.String(32),
		failures:  make(map[string][]injectedFailure),
		gates:     make(map[string]chan struct{}),
	}

	r := chi.NewRouter()
	r.Use(s.record, s.injectFailures, s.wait)
	r.Get("/get-csrf-token", s.getCSRFToken)
	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/currentuser/", s.currentUser)
		r.Get("/all-hobbies/", s.allHobbies)
		r.Get("/logout/", s.logout)
		r.Group(func(r chi.Router) {
			r.Use(s.requireCSRF)
			r.Post("/add_single_hobby/", s.addSingleHobby)
			r.Post("/updateprofile/", s.updateProfile)
			r.Post("/changepassword/", s.changePassword)
		})
	})

	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL is the origin with a trailing slash, as the client expects it.
func (s *Server) BaseURL() string {
	return s.URL + "/"
}

// CookieString returns a Cookie header for a logged-in browser session.
func (s *Server) CookieString() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return string(cookies.HobbySessionID) + "=" + s.sessionID + "; " + string(cookies.HobbyCSRFToken) + "=" + s.csrfToken
}

func (s *Server) SessionCookieString() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return string(cookies.HobbySessionID) + "=" + s.sessionID
}

func (s *Server) CSRFToken() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.csrfToken
}

func (s *Server) SetRotateCSRF(rotate bool) {
	s.lock.Lock()
	s.rotateCSRF = rotate
	s.lock.Unlock()
}

func (s *Server) User() types.User {
	s.lock.Lock()
	defer s.lock.Unlock()
	return *s.user.Clone()
}

func (s *Server) SetUser(user types.User) {
	s.lock.Lock()
	s.user = user
	s.lock.Unlock()
}

func (s *Server) Password() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.password
}

func (s *Server) Requests() []RecordedRequest {
	s.lock.Lock()
	defer s.lock.Unlock()
	return slices.Clone(s.requests)
}

// RequestsTo returns the recorded requests for one path, e.g. "/currentuser/".
func (s *Server) RequestsTo(path string) []RecordedRequest {
	var out []RecordedRequest
	for _, req := range s.Requests() {
		if req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

// FailNext makes the next request to path answer with status and body
// instead of being handled. Calls queue up.
func (s *Server) FailNext(path string, status int, body any) {
	s.lock.Lock()
	s.failures[path] = append(s.failures[path], injectedFailure{status: status, body: body})
	s.lock.Unlock()
}

// Hold blocks requests to path until the returned release func is called.
// Requests are recorded before they block.
func (s *Server) Hold(path string) (release func()) {
	gate := make(chan struct{})
	s.lock.Lock()
	s.gates[path] = gate
	s.lock.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.lock.Lock()
			delete(s.gates, path)
			s.lock.Unlock()
			close(gate)
		})
	}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
		}
		_, hasCSRF := r.Header[http.CanonicalHeaderKey(csrf.HeaderName)]
		s.lock.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			CSRFHeader:  r.Header.Get(csrf.HeaderName),
			HasCSRF:     hasCSRF,
			Cookie:      r.Header.Get("Cookie"),
			RequestID:   r.Header.Get("X-Request-ID"),
			Body:        body,
		})
		s.lock.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		queue := s.failures[r.URL.Path]
		var failure *injectedFailure
		if len(queue) > 0 {
			failure = &queue[0]
			s.failures[r.URL.Path] = queue[1:]
		}
		s.lock.Unlock()

		if failure == nil {
			next.ServeHTTP(w, r)
			return
		}
		if raw, ok := failure.body.(string); ok {
			w.WriteHeader(failure.status)
			_, _ = w.Write([]byte(raw))
			return
		}
		exhttp.WriteJSONResponse(w, failure.status, failure.body)
	})
}

func (s *Server) wait(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		gate := s.gates[r.URL.Path]
		s.lock.Unlock()
		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(string(cookies.HobbySessionID))
		s.lock.Lock()
		valid := err == nil && s.sessionID != "" && cookie.Value == s.sessionID
		s.lock.Unlock()
		if !valid {
			exhttp.WriteJSONResponse(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(string(cookies.HobbyCSRFToken))
		header := r.Header.Get(csrf.HeaderName)
		s.lock.Lock()
		valid := err == nil && header != "" && cookie.Value == header && header == s.csrfToken
		s.lock.Unlock()
		if !valid {
			exhttp.WriteJSONResponse(w, http.StatusForbidden, map[string]string{"error": "CSRF verification failed."})
			return
		}
		s.lock.Lock()
		rotate := s.rotateCSRF
		s.lock.Unlock()
		if rotate {
			s.issueCSRFToken(w)
		}
		next.ServeHTTP(w, r)
	})
}

// issueCSRFToken mints a token and sets it as a cookie. It must run before
// anything is written to w.
func (s *Server) issueCSRFToken(w http.ResponseWriter) string {
	s.lock.Lock()
	s.csrfToken = random.String(32)
	token := s.csrfToken
	s.lock.Unlock()
	http.SetCookie(w, &http.Cookie{Name: string(cookies.HobbyCSRFToken), Value: token, Path: "/"})
	return token
}

func (s *Server) getCSRFToken(w http.ResponseWriter, r *http.Request) {
	token := s.issueCSRFToken(w)
	exhttp.WriteJSONResponse(w, http.StatusOK, map[string]string{"csrfToken": token})
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	exhttp.WriteJSONResponse(w, http.StatusOK, s.User())
}

func (s *Server) allHobbies(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	catalog := slices.Clone(s.catalog)
	s.lock.Unlock()
	exhttp.WriteJSONResponse(w, http.StatusOK, catalog)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	s.sessionID = ""
	s.lock.Unlock()
	http.SetCookie(w, &http.Cookie{Name: string(cookies.HobbySessionID), Value: "", Path: "/", MaxAge: -1})
	exhttp.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Logged out."})
}

func (s *Server) addSingleHobby(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HobbyID *int `json:"hobby_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		exhttp.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON."})
		return
	} else if req.HobbyID == nil {
		exhttp.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Hobby ID is required."})
		return
	}

	s.lock.Lock()
	idx := slices.IndexFunc(s.catalog, func(h types.Hobby) bool { return h.ID == *req.HobbyID })
	if idx < 0 {
		s.lock.Unlock()
		exhttp.WriteJSONResponse(w, http.StatusNotFound, map[string]string{"error": "Hobby not found."})
		return
	}
	if !slices.ContainsFunc(s.user.Hobbies, func(h types.Hobby) bool { return h.ID == *req.HobbyID }) {
		s.user.Hobbies = append(s.user.Hobbies, s.catalog[idx])
	}
	s.lock.Unlock()
	exhttp.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Hobby added successfully."})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName   string  `json:"first_name"`
		LastName    string  `json:"last_name"`
		Email       string  `json:"email"`
		DateOfBirth *string `json:"date_of_birth"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		exhttp.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	s.lock.Lock()
	s.user.FirstName = req.FirstName
	s.user.LastName = req.LastName
	s.user.Email = req.Email
	s.user.DateOfBirth = req.DateOfBirth
	s.lock.Unlock()
	exhttp.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		exhttp.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON"})
		return
	} else if req.CurrentPassword == "" || req.NewPassword == "" {
		exhttp.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"message": "Missing required fields"})
		return
	}
	s.lock.Lock()
	if req.CurrentPassword != s.password {
		s.lock.Unlock()
		exhttp.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"message": "Current password is incorrect"})
		return
	}
	s.password = req.NewPassword
	s.lock.Unlock()
	exhttp.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
