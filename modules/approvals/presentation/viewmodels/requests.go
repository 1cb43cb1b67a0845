package viewmodels

// StageState is the display state of one step in the approval tracker.
type StageState string

const (
	StageComplete StageState = "complete"
	StageActive   StageState = "active"
	StageRejected StageState = "rejected"
	StagePending  StageState = "pending"
)

// Progress is the three-step tracker shown next to every request.
type Progress struct {
	Employee StageState `json:"employee"`
	POC      StageState `json:"poc"`
	Manager  StageState `json:"manager"`
}

type RequestListItem struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  string   `json:"employee_name"`
	POCID         string   `json:"poc_id,omitempty"`
	ManagerID     string   `json:"manager_id,omitempty"`
	Status        string   `json:"status"`
	Important     bool     `json:"important"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	POCRemark     string   `json:"poc_remark,omitempty"`
	ManagerRemark string   `json:"manager_remark,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	EndDate       string   `json:"end_date,omitempty"`
	Progress      Progress `json:"progress"`
}

type StatsView struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Important int `json:"important"`
}
