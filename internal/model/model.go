// Package model defines the core data types shared across callguard.
package model

import "fmt"

// RiskLevel is the traffic-light output of the risk engine.
type RiskLevel int

const (
	RiskGreen RiskLevel = iota
	RiskYellow
	RiskRed
)

func (r RiskLevel) String() string {
	switch r {
	case RiskGreen:
		return "green"
	case RiskYellow:
		return "yellow"
	case RiskRed:
		return "red"
	default:
		return "unknown"
	}
}

// Label returns the display label shown on the risk meter and in exports.
func (r RiskLevel) Label() string {
	switch r {
	case RiskGreen:
		return "เขียว"
	case RiskYellow:
		return "เหลือง"
	case RiskRed:
		return "แดง"
	default:
		return "?"
	}
}

// ParseRiskLevel is the inverse of RiskLevel.String.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case "green":
		return RiskGreen, nil
	case "yellow":
		return RiskYellow, nil
	case "red":
		return RiskRed, nil
	}
	return RiskGreen, fmt.Errorf("unknown risk level %q", s)
}

// MarshalText encodes the level by name.
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a level name.
func (r *RiskLevel) UnmarshalText(b []byte) error {
	level, err := ParseRiskLevel(string(b))
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// CallState is the lifecycle of the simulated call.
type CallState int

const (
	CallIdle CallState = iota
	CallIncoming
	CallActive
)

func (c CallState) String() string {
	switch c {
	case CallIdle:
		return "idle"
	case CallIncoming:
		return "incoming"
	case CallActive:
		return "active"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (c CallState) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Badge is the short status shown at the top of the call screen.
func (c CallState) Badge() string {
	switch c {
	case CallIncoming:
		return "Incoming Call"
	case CallActive:
		return "Live Call"
	default:
		return "No Active Call"
	}
}
