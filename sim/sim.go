// Package sim flies a simulated fixed-wing vehicle along a route of
// waypoints. Each tick it asks the turn solver how far the vehicle still has
// to turn, slews the heading at the rate the turning radius allows, and
// advances the position, with wind drift when a wind store is available.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/uavaustin/geo-distance/geo"
	"github.com/uavaustin/geo-distance/wind"
)

// Notifier receives waypoint arrival messages.
type Notifier interface {
	Send(message string) error
}

type Config struct {
	Start         geo.Location
	Heading       float64 // radians
	Speed         float64 // m/s airspeed
	TurningRadius float64 // m, > 0
	ClimbRate     float64 // m/s, max vertical speed
	ArrivalRadius float64 // m, horizontal arrival threshold
	Tick          time.Duration

	Winds    *wind.Store // optional
	Notifier Notifier    // optional
}

// State is a snapshot of the simulated vehicle.
type State struct {
	Position  geo.Location `json:"position"`
	Heading   float64      `json:"heading"` // radians
	Waypoint  int          `json:"waypoint"`
	Remaining int          `json:"remaining"`
	TurnAngle float64      `json:"turnAngle"` // radians, last solver output
	Time      time.Time    `json:"time"`
}

type Simulator struct {
	cfg Config

	mu    sync.RWMutex
	state State
	route []geo.Location
}

func New(cfg Config) (*Simulator, error) {
	if cfg.TurningRadius <= 0 {
		return nil, errors.New("turning radius must be > 0")
	}
	if cfg.Speed <= 0 {
		return nil, errors.New("speed must be > 0")
	}
	if cfg.ClimbRate <= 0 {
		cfg.ClimbRate = 5
	}
	if cfg.ArrivalRadius <= 0 {
		cfg.ArrivalRadius = 50
	}
	if cfg.Tick <= 0 {
		cfg.Tick = 100 * time.Millisecond
	}

	return &Simulator{
		cfg: cfg,
		state: State{
			Position: cfg.Start,
			Heading:  cfg.Heading,
			Time:     time.Now(),
		},
	}, nil
}

// SetRoute replaces the route. The vehicle heads for the first waypoint of
// the new route from wherever it currently is.
func (s *Simulator) SetRoute(route []geo.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.route = append([]geo.Location(nil), route...)
	s.state.Waypoint = 0
	s.state.Remaining = len(s.route)
}

func (s *Simulator) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Progress is a one-line status report for periodic notifications.
func (s *Simulator) Progress() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	if st.Remaining == 0 {
		return fmt.Sprintf("Vehicle at (%.5f, %.5f) %.0f m, heading %.0f°, no route",
			geo.Degrees(st.Position.Lat), geo.Degrees(st.Position.Lon),
			st.Position.Alt, geo.Degrees(st.Heading))
	}

	return fmt.Sprintf("Vehicle at (%.5f, %.5f) %.0f m, heading %.0f°, %d waypoints remaining",
		geo.Degrees(st.Position.Lat), geo.Degrees(st.Position.Lon),
		st.Position.Alt, geo.Degrees(st.Heading), st.Remaining)
}

// Run ticks the simulation until ctx is done.
func (s *Simulator) Run(ctx context.Context) error {
	tick := time.NewTicker(s.cfg.Tick)
	defer tick.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tick.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = s.cfg.Tick.Seconds()
			}
			last = now

			s.step(dt, now)
		}
	}
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func wrap2π(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func (s *Simulator) step(dt float64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.state.Position
	heading := s.state.Heading
	climb := 0.0

	if s.state.Waypoint < len(s.route) {
		wp := s.route[s.state.Waypoint]

		θ := geo.TurnAngle(pos, heading, s.cfg.TurningRadius, wp)
		s.state.TurnAngle = θ

		// The tightest turn available is speed/radius rad/s.
		heading = wrap2π(heading + clamp(θ, s.cfg.Speed/s.cfg.TurningRadius*dt))

		climb = clamp(wp.Alt-pos.Alt, s.cfg.ClimbRate*dt)
	}

	d := geo.FromMagnitudeBearing(s.cfg.Speed*dt, heading, climb)

	if s.cfg.Winds != nil {
		u, v, err := s.cfg.Winds.UV(geo.Degrees(pos.Lat), geo.Degrees(pos.Lon), now)
		if err == nil {
			d = d.Add(geo.Distance{X: u * dt, Y: v * dt})
		}
	}

	pos = pos.Offset(d)

	s.state.Position = pos
	s.state.Heading = heading
	s.state.Time = now

	if s.state.Waypoint < len(s.route) {
		wp := s.route[s.state.Waypoint]
		if pos.DistanceTo(wp, 0).MagnitudeXY() <= s.cfg.ArrivalRadius {
			s.reach(wp)
		}
	}
}

// reach advances to the next waypoint, called with the lock held.
func (s *Simulator) reach(wp geo.Location) {
	s.state.Waypoint++
	s.state.Remaining = len(s.route) - s.state.Waypoint

	msg := fmt.Sprintf("Reached waypoint %d (%.5f, %.5f), %d remaining",
		s.state.Waypoint, geo.Degrees(wp.Lat), geo.Degrees(wp.Lon), s.state.Remaining)
	log.Info(msg)

	if s.cfg.Notifier != nil {
		if err := s.cfg.Notifier.Send(msg); err != nil {
			log.WithError(err).Debug("Error sending notification")
		}
	}
}
