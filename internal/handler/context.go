package handler

type ContextKey string

var (
	TechnicianCtx  ContextKey = "technician"
	ClientCtx      ContextKey = "client"
	ServiceTypeCtx ContextKey = "serviceType"
	EquipmentCtx   ContextKey = "equipment"
	AssignmentCtx  ContextKey = "assignment"
)
