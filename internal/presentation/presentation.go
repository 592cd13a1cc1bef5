// Package presentation maps record status and priority values to the
// badge a list row renders for them.
package presentation

import (
	"strings"

	"fieldrep/internal/model"
)

// Badge is the display semantics of one status or priority value.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var neutral = Badge{Label: "Unknown", Color: "#6B7280", Icon: "help-circle-outline"}

var statusBadges = map[string]Badge{
	model.StatusPending:  {Label: "Pending", Color: "#F59E0B", Icon: "time-outline"},
	model.StatusApproved: {Label: "Approved", Color: "#10B981", Icon: "checkmark-circle-outline"},
	model.StatusRejected: {Label: "Rejected", Color: "#EF4444", Icon: "close-circle-outline"},
}

var priorityBadges = map[string]Badge{
	model.PriorityHigh:   {Label: "High", Color: "#EF4444", Icon: "arrow-up-circle-outline"},
	model.PriorityMedium: {Label: "Medium", Color: "#F59E0B", Icon: "remove-circle-outline"},
	model.PriorityLow:    {Label: "Low", Color: "#10B981", Icon: "arrow-down-circle-outline"},
}

// ForStatus is case-insensitive; unknown values get a neutral badge.
func ForStatus(status string) Badge {
	if b, ok := statusBadges[strings.ToLower(strings.TrimSpace(status))]; ok {
		return b
	}
	return neutral
}

func ForPriority(priority string) Badge {
	if p, ok := model.ParsePriority(priority); ok {
		return priorityBadges[p]
	}
	return neutral
}

// Legend lists every known badge, keyed by kind then value.
func Legend() map[string]map[string]Badge {
	out := map[string]map[string]Badge{
		"status":   make(map[string]Badge, len(statusBadges)),
		"priority": make(map[string]Badge, len(priorityBadges)),
	}
	for k, v := range statusBadges {
		out["status"][k] = v
	}
	for k, v := range priorityBadges {
		out["priority"][k] = v
	}
	return out
}
