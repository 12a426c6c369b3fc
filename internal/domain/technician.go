package domain

// Workload counts the open tickets held by a technician.
type Workload struct {
	Assigned   int
	InProgress int
}

// TechnicianWorkload pairs a technician with their current workload.
type TechnicianWorkload struct {
	Technician User
	Workload   Workload
}

// TechnicianStats is the performance snapshot of one technician.
type TechnicianStats struct {
	Technician             User
	TotalAssigned          int
	InProgress             int
	Resolved               int
	Closed                 int
	ResolvedThisMonth      int
	ResolvedToday          int
	AvgResolutionTimeDays  float64
	AvgResponseTimeMinutes int64
	SuccessRate            float64
	AvailabilityStatus     string
	WorkloadRatio          string
	WorkHours              string
}
