package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RiskLevel is the ergonomic risk classification of a workstation.
// The ordinal is what gets persisted, so Low < Medium < High sorts naturally.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

// Distance window (cm) outside of which the monitor placement is penalized.
const (
	MinSafeMonitorDistanceCm = 40
	MaxSafeMonitorDistanceCm = 75
)

// ComputeRisk scores a workstation setup and classifies it.
func ComputeRisk(monitorDistanceCm int, hasAdjustableChair, hasFootrest bool) RiskLevel {
	score := 0
	if monitorDistanceCm < MinSafeMonitorDistanceCm || monitorDistanceCm > MaxSafeMonitorDistanceCm {
		score += 2
	}
	if !hasAdjustableChair {
		score += 2
	}
	if !hasFootrest {
		score++
	}

	switch {
	case score <= 1:
		return RiskLow
	case score <= 3:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	default:
		return "RiskLevel(" + strconv.Itoa(int(r)) + ")"
	}
}

func (r RiskLevel) Valid() bool {
	return r >= RiskLow && r <= RiskHigh
}

// ParseRiskLevel accepts a level name (any case) or its ordinal.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "low":
		return RiskLow, true
	case "medium":
		return RiskMedium, true
	case "high":
		return RiskHigh, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		lvl := RiskLevel(n)
		if lvl.Valid() {
			return lvl, true
		}
	}
	return 0, false
}

func (r RiskLevel) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid risk level %d", int(r))
	}
	return json.Marshal(r.String())
}

func (r *RiskLevel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int
		if nErr := json.Unmarshal(b, &n); nErr != nil {
			return err
		}
		s = strconv.Itoa(n)
	}
	lvl, ok := ParseRiskLevel(s)
	if !ok {
		return fmt.Errorf("invalid risk level %q", s)
	}
	*r = lvl
	return nil
}
