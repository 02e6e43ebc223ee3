package models

// Success Response Models

type CreateStaffSuccessResponse struct {
	Message string `json:"message" example:"Staff member created"`
	ID      string `json:"id" example:"507f1f77bcf86cd799439011"`
	StaffID string `json:"staff_id" example:"FAC001"`
}

type GetStaffSuccessResponse struct {
	Message string      `json:"message" example:"Staff member found"`
	Staff   StaffMember `json:"staff"`
}

type GetAllStaffSuccessResponse struct {
	Message string        `json:"message" example:"Staff list retrieved"`
	Staff   []StaffMember `json:"staff"`
	Total   int64         `json:"total" example:"10"`
}

type UpdateStaffSuccessResponse struct {
	Message string `json:"message" example:"Staff member updated"`
	ID      string `json:"id" example:"507f1f77bcf86cd799439011"`
}

type DeleteStaffSuccessResponse struct {
	Message string `json:"message" example:"Staff member deleted"`
	ID      string `json:"id" example:"507f1f77bcf86cd799439011"`
}

type BulkMarkSuccessResponse struct {
	Message string `json:"message" example:"Attendance marked"`
	Marked  int    `json:"marked" example:"2"`
	Skipped int    `json:"skipped" example:"1"`
}

type ProcessBatchSuccessResponse struct {
	Message string          `json:"message" example:"Payroll batch processed"`
	Created []PayrollRecord `json:"created"`
	Skipped []string        `json:"skipped"`
}

// Error Response Models

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

type ValidationErrorResponse struct {
	Error  string `json:"error" example:"Validation failed"`
	Errors string `json:"errors" example:"email: invalid email format"`
}

type NotFoundErrorResponse struct {
	Error string `json:"error" example:"Staff member not found"`
}

type ConflictErrorResponse struct {
	Error string `json:"error" example:"Leave request has already been decided"`
}
