// Package fakeapi is an in-memory implementation of the courier and order API that follows the
// documented contract. It lets the harness itself be tested without a live service.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/scooter-qa/courier-contract-tests/framework"
	"github.com/scooter-qa/courier-contract-tests/scooterapi"
	"github.com/scooter-qa/courier-contract-tests/servicedef"

	"github.com/go-chi/chi/v5"
)

const (
	messageNotEnoughDataToDelete = "Недостаточно данных для удаления курьера"
	messageCourierIDNotFound     = "Курьера с таким id нет."
	messageBadRequestBody        = "Некорректный формат запроса"
	defaultSeededOrders          = 3
)

type courier struct {
	id        int
	login     string
	password  string
	firstName string
}

type order struct {
	ID    int                `json:"id"`
	Track int                `json:"track"`
	Color []servicedef.Color `json:"color"`
}

// Server holds the state of the fake service. Its Handler can be mounted on an httptest.Server.
type Server struct {
	couriers  map[string]*courier
	lastID    int
	orders    []order
	lastTrack int
	failLogin bool
	logger    framework.Logger
	lock      sync.Mutex
}

type Option func(*Server)

// WithFailingLogin makes every login request return 500, so that no courier can be deleted.
func WithFailingLogin() Option {
	return func(s *Server) { s.failLogin = true }
}

// WithSeededOrders sets how many orders exist before any are created. The default is 3.
func WithSeededOrders(n int) Option {
	return func(s *Server) {
		s.orders = nil
		for i := 0; i < n; i++ {
			s.addOrder(nil)
		}
	}
}

func WithLogger(logger framework.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

func NewServer(options ...Option) *Server {
	s := &Server{
		couriers: make(map[string]*courier),
		logger:   framework.NullLogger(),
		lastID:   100000,
	}
	WithSeededOrders(defaultSeededOrders)(s)
	for _, o := range options {
		o(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Route(servicedef.CourierPath, func(r chi.Router) {
		r.Post("/", s.createCourier)
		r.Post("/login", s.loginCourier)
		r.Delete("/{id}", s.deleteCourier)
	})
	r.Route(servicedef.OrdersPath, func(r chi.Router) {
		r.Get("/", s.listOrders)
		r.Post("/", s.createOrder)
	})
	return r
}

// CourierCount returns the number of accounts that currently exist.
func (s *Server) CourierCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.couriers)
}

// HasCourier returns true if an account with this login exists.
func (s *Server) HasCourier(login string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, ok := s.couriers[login]
	return ok
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Printf("fake API: %s %s %s", r.Method, r.URL.Path, r.Header.Get(scooterapi.RequestIDHeader))
		next.ServeHTTP(w, r)
	})
}

type courierRequest struct {
	Login     *string `json:"login"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
}

func (s *Server) createCourier(w http.ResponseWriter, r *http.Request) {
	var req courierRequest
	if !decode(w, r, &req) {
		return
	}
	if isBlank(req.Login) || isBlank(req.Password) {
		writeMessage(w, http.StatusBadRequest, servicedef.MessageNotEnoughDataToCreate)
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, exists := s.couriers[*req.Login]; exists {
		writeMessage(w, http.StatusConflict, servicedef.MessageLoginAlreadyUsed)
		return
	}
	s.lastID++
	c := &courier{id: s.lastID, login: *req.Login, password: *req.Password}
	if req.FirstName != nil {
		c.firstName = *req.FirstName
	}
	s.couriers[c.login] = c
	writeJSON(w, http.StatusCreated, map[string]interface{}{"ok": true})
}

func (s *Server) loginCourier(w http.ResponseWriter, r *http.Request) {
	if s.failLogin {
		writeMessage(w, http.StatusInternalServerError, "login is unavailable")
		return
	}
	var req courierRequest
	if !decode(w, r, &req) {
		return
	}
	if isBlank(req.Login) || isBlank(req.Password) {
		writeMessage(w, http.StatusBadRequest, servicedef.MessageNotEnoughDataToLogin)
		return
	}
	s.lock.Lock()
	c, ok := s.couriers[*req.Login]
	s.lock.Unlock()
	if !ok || c.password != *req.Password {
		writeMessage(w, http.StatusNotFound, servicedef.MessageAccountNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": c.id})
}

func (s *Server) deleteCourier(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, messageNotEnoughDataToDelete)
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for login, c := range s.couriers {
		if c.id == id {
			delete(s.couriers, login)
			writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, messageCourierIDNotFound)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	orders := append([]order{}, s.orders...)
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"pageInfo": map[string]interface{}{
			"page":  0,
			"total": len(orders),
			"limit": 30,
		},
		"availableStations": []interface{}{},
	})
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req servicedef.OrderParams
	if !decode(w, r, &req) {
		return
	}
	s.lock.Lock()
	track := s.addOrder(req.Color)
	s.lock.Unlock()
	writeJSON(w, http.StatusCreated, map[string]interface{}{"track": track})
}

func (s *Server) addOrder(colors []servicedef.Color) int {
	s.lastTrack++
	track := 500000 + s.lastTrack
	s.orders = append(s.orders, order{ID: len(s.orders) + 1, Track: track, Color: append([]servicedef.Color{}, colors...)})
	return track
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

func decode(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeMessage(w, http.StatusBadRequest, messageBadRequestBody)
		return false
	}
	return true
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"code": status, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
