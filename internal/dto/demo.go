package dto

// CreateDemoRequest submits a demonstration request.
type CreateDemoRequest struct {
	Title         string `json:"title" binding:"required,max=200"`
	DemoManager   string `json:"demo_manager" binding:"required,max=100"`
	DemoStartDate string `json:"demo_start_date" binding:"required"` // YYYY-MM-DD
	DemoEndDate   string `json:"demo_end_date" binding:"required"`   // YYYY-MM-DD
	Remarks       string `json:"remarks,omitempty" binding:"max=500"`
}

// UpdateDemoRequest partially updates a demo. Nil fields are untouched.
type UpdateDemoRequest struct {
	Title         *string `json:"title,omitempty" binding:"omitempty,max=200"`
	DemoManager   *string `json:"demo_manager,omitempty" binding:"omitempty,max=100"`
	DemoStartDate *string `json:"demo_start_date,omitempty"`
	DemoEndDate   *string `json:"demo_end_date,omitempty"`
	Remarks       *string `json:"remarks,omitempty" binding:"omitempty,max=500"`
}

// DemoResponse is the demo view.
type DemoResponse struct {
	ID            int64  `json:"id"`
	TeamID        int64  `json:"team_id"`
	Title         string `json:"title"`
	DemoManager   string `json:"demo_manager"`
	DemoStartDate string `json:"demo_start_date"`
	DemoEndDate   string `json:"demo_end_date"`
	Status        string `json:"status"`
	Remarks       string `json:"remarks,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}
