package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/uavaustin/geo-distance/api/model"
	"github.com/uavaustin/geo-distance/geo"
	"github.com/uavaustin/geo-distance/geodesy"
	"github.com/uavaustin/geo-distance/sim"
	"github.com/uavaustin/geo-distance/wind"
)

type server struct {
	winds *wind.Store
	sim   *sim.Simulator
}

// InitServer builds the router. winds and vehicle may be nil, in which case
// the matching endpoints answer 404.
func InitServer(winds *wind.Store, vehicle *sim.Simulator) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	s := server{winds: winds, sim: vehicle}

	router.HandleFunc("/geo/-/healthz", s.healthz).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/geo/api/v1").Subrouter()
	apiV1.HandleFunc("/turn", s.turn).Methods(http.MethodPost)
	apiV1.HandleFunc("/distance", s.distance).Methods(http.MethodPost)
	apiV1.HandleFunc("/destination", s.destination).Methods(http.MethodPost)
	apiV1.HandleFunc("/wind/{lat}/{lon}", s.wind).Methods(http.MethodGet)
	apiV1.HandleFunc("/vehicle", s.vehicle).Methods(http.MethodGet)
	apiV1.HandleFunc("/vehicle/route", s.route).Methods(http.MethodPost)

	return router
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status string `json:"status"`
	}

	json.NewEncoder(w).Encode(health{Status: "Ok"})
}

func badRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(model.Error{Error: err.Error()})
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s *server) turn(w http.ResponseWriter, req *http.Request) {
	requestLogger := requestLogger(req, "turn")

	var r model.TurnRequest
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		badRequest(w, err)
		return
	}

	// The solver's precondition: a real, positive turning radius.
	if !finite(r.Position.Lat, r.Position.Lon, r.Position.Alt, r.Heading,
		r.TurningRadius, r.Waypoint.Lat, r.Waypoint.Lon, r.Waypoint.Alt) {
		badRequest(w, errors.New("inputs must be finite"))
		return
	}
	if r.TurningRadius <= 0 {
		badRequest(w, errors.New("turningRadius must be > 0"))
		return
	}

	loc := r.Position.Location()
	wp := r.Waypoint.Location()
	heading := geo.Radians(r.Heading)

	angle := geo.TurnAngle(loc, heading, r.TurningRadius, wp)
	point := geo.TurnPoint(loc, heading, r.TurningRadius, wp)

	requestLogger.Infof("Turn %.1f° at radius %.0f m", geo.Degrees(angle), r.TurningRadius)

	json.NewEncoder(w).Encode(model.TurnResponse{
		Angle: geo.Degrees(angle),
		Point: model.Point{X: point.X, Y: point.Y, Z: point.Z},
	})
}

func (s *server) distance(w http.ResponseWriter, req *http.Request) {
	var r model.DistanceRequest
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		badRequest(w, err)
		return
	}

	m, err := geodesy.ByName(r.Model)
	if err != nil {
		badRequest(w, err)
		return
	}

	d, b := m.DistanceAndBearingTo(r.From.Location(), r.To.Location())

	json.NewEncoder(w).Encode(model.DistanceResponse{
		Distance: d,
		Bearing:  geo.Degrees(b),
	})
}

func (s *server) destination(w http.ResponseWriter, req *http.Request) {
	var r model.DestinationRequest
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		badRequest(w, err)
		return
	}

	m, err := geodesy.ByName(r.Model)
	if err != nil {
		badRequest(w, err)
		return
	}

	dest := m.Destination(r.From.Location(), geo.Radians(r.Bearing), r.Distance)

	json.NewEncoder(w).Encode(model.FromLocation(dest))
}

func (s *server) wind(w http.ResponseWriter, req *http.Request) {
	if s.winds == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	lat, err := strconv.ParseFloat(mux.Vars(req)["lat"], 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(mux.Vars(req)["lon"], 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	type windResult struct {
		Direction float64 `json:"direction"`
		Speed     float64 `json:"speed"`
		SpeedKt   float64 `json:"speedKt"`
	}

	dir, speed, err := s.winds.At(lat, lon, time.Now())
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	log.Infof("Wind (%f,%f) : %.1f° %.1f m/s", lat, lon, dir, speed)

	json.NewEncoder(w).Encode(windResult{
		Direction: dir,
		Speed:     speed,
		SpeedKt:   speed * 1.9438444924406,
	})
}

func (s *server) vehicle(w http.ResponseWriter, req *http.Request) {
	if s.sim == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	st := s.sim.State()

	json.NewEncoder(w).Encode(model.VehicleState{
		Position:  model.FromLocation(st.Position),
		Heading:   geo.Degrees(st.Heading),
		Waypoint:  st.Waypoint,
		Remaining: st.Remaining,
		TurnAngle: geo.Degrees(st.TurnAngle),
		Time:      st.Time.Format(time.RFC3339),
	})
}

func (s *server) route(w http.ResponseWriter, req *http.Request) {
	if s.sim == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	requestLogger := requestLogger(req, "route")

	var r model.RouteRequest
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		badRequest(w, err)
		return
	}
	if len(r.Waypoints) == 0 {
		badRequest(w, errors.New("route needs at least one waypoint"))
		return
	}

	route := make([]geo.Location, len(r.Waypoints))
	for i, p := range r.Waypoints {
		if !finite(p.Lat, p.Lon, p.Alt) {
			badRequest(w, errors.New("waypoints must be finite"))
			return
		}
		route[i] = p.Location()
	}

	s.sim.SetRoute(route)
	requestLogger.Infof("Route with %d waypoints", len(route))

	w.WriteHeader(http.StatusNoContent)
}

func requestLogger(req *http.Request, action string) *log.Entry {
	fields := log.Fields{
		"action": action,
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	return log.WithFields(fields)
}

func getIp(r *http.Request) (string, error) {
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP := net.ParseIP(ip)
		if netIP != nil {
			return ip, nil
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
