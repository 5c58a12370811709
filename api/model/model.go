// Package model holds the wire types of the geo API. Angles are degrees on
// the wire and radians inside.
package model

import "github.com/uavaustin/geo-distance/geo"

// Position is a geographic position, degrees and meters.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Alt float64 `json:"alt"`
}

func (p Position) Location() geo.Location {
	return geo.Location{Lat: geo.Radians(p.Lat), Lon: geo.Radians(p.Lon), Alt: p.Alt}
}

func FromLocation(l geo.Location) Position {
	return Position{Lat: geo.Degrees(l.Lat), Lon: geo.Degrees(l.Lon), Alt: l.Alt}
}

// Point is a displacement in the vehicle frame, meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type TurnRequest struct {
	Position      Position `json:"position"`
	Heading       float64  `json:"heading"` // degrees
	TurningRadius float64  `json:"turningRadius"`
	Waypoint      Position `json:"waypoint"`
}

type TurnResponse struct {
	// Angle the vehicle must turn, degrees, negative for left turns.
	Angle float64 `json:"angle"`
	// Point where the turn ends and the straight leg begins.
	Point Point `json:"point"`
}

type DistanceRequest struct {
	From  Position `json:"from"`
	To    Position `json:"to"`
	Model string   `json:"model"`
}

type DistanceResponse struct {
	Distance float64 `json:"distance"` // meters
	Bearing  float64 `json:"bearing"`  // degrees
}

type DestinationRequest struct {
	From     Position `json:"from"`
	Bearing  float64  `json:"bearing"`  // degrees
	Distance float64  `json:"distance"` // meters
	Model    string   `json:"model"`
}

type RouteRequest struct {
	Waypoints []Position `json:"waypoints"`
}

type VehicleState struct {
	Position  Position `json:"position"`
	Heading   float64  `json:"heading"` // degrees
	Waypoint  int      `json:"waypoint"`
	Remaining int      `json:"remaining"`
	TurnAngle float64  `json:"turnAngle"` // degrees
	Time      string   `json:"time"`
}

type Error struct {
	Error string `json:"error"`
}
