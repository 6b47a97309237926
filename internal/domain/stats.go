package domain

type DashboardStats struct {
	TotalTechnicians     int64 `json:"totalTechnicians"`
	FreelanceTechnicians int64 `json:"freelanceTechnicians"`
	ActiveAssignments    int64 `json:"activeAssignments"`
	PendingAssignments   int64 `json:"pendingAssignments"`
	CompletedAssignments int64 `json:"completedAssignments"`
	TotalClients         int64 `json:"totalClients"`
	UpcomingJobs         int64 `json:"upcomingJobs"`
}
