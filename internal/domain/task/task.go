package task

import "time"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// SortKey orders task lists. Unrecognized keys fall back to newest-first.
type SortKey string

const (
	SortCreatedDesc SortKey = "CREATED_DESC"
	SortCreatedAsc  SortKey = "CREATED_ASC"
	SortDueAsc      SortKey = "DUE_ASC"
	SortDueDesc     SortKey = "DUE_DESC"
	SortNameAsc     SortKey = "NAME_ASC"
	SortNameDesc    SortKey = "NAME_DESC"
)

func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortCreatedAsc, SortDueAsc, SortDueDesc, SortNameAsc, SortNameDesc:
		return SortKey(raw)
	default:
		return SortCreatedDesc
	}
}

type Task struct {
	ID          int64      `json:"id"`
	Name        string     `json:"taskName"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	OwnerID     int64      `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateRequest holds validated task creation input. The owner is never part
// of it; services assign the authenticated caller as owner.
type CreateRequest struct {
	Name        string
	Description string
	Status      Status
	DueDate     *time.Time
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Status      *Status
	DueDate     *time.Time
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil && p.DueDate == nil
}

// Filters narrows and orders ListByOwner results.
type Filters struct {
	Status *Status
	Sort   SortKey
}
