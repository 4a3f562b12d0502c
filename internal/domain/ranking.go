package domain

import "sort"

// Availability classifies an employee's workload.
type Availability string

const (
	AvailabilityAvailable Availability = "Available"
	AvailabilityLow       Availability = "Low Load"
	AvailabilityModerate  Availability = "Moderate Load"
	AvailabilityHigh      Availability = "High Load"
)

// ClassifyAvailability maps an active project count onto the fixed step function:
// 0 is Available, 1-2 Low Load, 3-4 Moderate Load, 5 and above High Load.
func ClassifyAvailability(activeProjects int) Availability {
	switch {
	case activeProjects <= 0:
		return AvailabilityAvailable
	case activeProjects <= 2:
		return AvailabilityLow
	case activeProjects <= 4:
		return AvailabilityModerate
	default:
		return AvailabilityHigh
	}
}

// RankedEmployee is an employee annotated with its 1-based rank.
type RankedEmployee struct {
	Rank         int
	Employee     Employee
	Availability Availability
}

// RankEmployees orders employees by ascending workload.
// The sort is stable, so ties keep collection order. The input is not modified.
func RankEmployees(employees []*Employee) []RankedEmployee {
	sorted := make([]*Employee, 0, len(employees))
	for _, e := range employees {
		if e != nil {
			sorted = append(sorted, e)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ActiveProjects < sorted[j].ActiveProjects
	})

	ranked := make([]RankedEmployee, len(sorted))
	for i, e := range sorted {
		ranked[i] = RankedEmployee{
			Rank:         i + 1,
			Employee:     *e,
			Availability: ClassifyAvailability(e.ActiveProjects),
		}
	}
	return ranked
}
