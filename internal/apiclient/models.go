// ABOUTME: Request and response models for the academy API
// ABOUTME: Create/update payloads carry validation tags checked before any request

package apiclient

import "time"

// Student is an enrolled or prospective student account.
type Student struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	DNI         string     `json:"dni"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	Enrolled    bool       `json:"enrolled"`
	Enabled     bool       `json:"enabled"`
	ClassIDs    []int64    `json:"classIds,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

type StudentCreate struct {
	Username    string `json:"username" validate:"required,username"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"firstName" validate:"required,name"`
	LastName    string `json:"lastName" validate:"required,name"`
	DNI         string `json:"dni" validate:"required,dni"`
	Email       string `json:"email" validate:"required,email,max=254"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
}

// StudentUpdate is a partial update; nil fields are left unchanged.
type StudentUpdate struct {
	FirstName   *string `json:"firstName,omitempty" validate:"omitempty,name"`
	LastName    *string `json:"lastName,omitempty" validate:"omitempty,name"`
	DNI         *string `json:"dni,omitempty" validate:"omitempty,dni"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
}

type Professor struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	DNI         string  `json:"dni"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber,omitempty"`
	Enabled     bool    `json:"enabled"`
	ClassIDs    []int64 `json:"classIds,omitempty"`
}

type ProfessorCreate struct {
	Username    string `json:"username" validate:"required,username"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"firstName" validate:"required,name"`
	LastName    string `json:"lastName" validate:"required,name"`
	DNI         string `json:"dni" validate:"required,dni"`
	Email       string `json:"email" validate:"required,email,max=254"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
}

type ProfessorUpdate struct {
	FirstName   *string `json:"firstName,omitempty" validate:"omitempty,name"`
	LastName    *string `json:"lastName,omitempty" validate:"omitempty,name"`
	DNI         *string `json:"dni,omitempty" validate:"omitempty,dni"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
}

// Class kinds map to separate creation endpoints.
const (
	ClassKindCourse   = "COURSE"
	ClassKindWorkshop = "WORKSHOP"
)

type Class struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency,omitempty"`
	Level        string  `json:"level,omitempty"`
	Kind         string  `json:"kind,omitempty"`
	ProfessorIDs []int64 `json:"professorIds,omitempty"`
	StudentIDs   []int64 `json:"studentIds,omitempty"`
}

type ClassCreate struct {
	Title        string  `json:"title" validate:"required,max=100"`
	Description  string  `json:"description,omitempty" validate:"max=500"`
	Price        float64 `json:"price" validate:"price"`
	Currency     string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	Level        string  `json:"level,omitempty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Kind         string  `json:"kind" validate:"required,oneof=COURSE WORKSHOP"`
	ProfessorIDs []int64 `json:"professorIds,omitempty"`
}

type ClassUpdate struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,price"`
	Level       *string  `json:"level,omitempty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
}

// Exercise statuses.
const (
	ExerciseActive            = "ACTIVE"
	ExerciseExpired           = "EXPIRED"
	ExerciseFuture            = "FUTURE"
	ExerciseWithDeliveries    = "WITH_DELIVERIES"
	ExerciseWithoutDeliveries = "WITHOUT_DELIVERIES"
)

type Exercise struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Statement string     `json:"statement,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	ClassID   int64      `json:"classId"`
	Status    string     `json:"status,omitempty"`
}

type ExerciseCreate struct {
	Name      string     `json:"name" validate:"required,max=200"`
	Statement string     `json:"statement" validate:"required"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	ClassID   int64      `json:"classId" validate:"required,gt=0"`
}

type ExerciseUpdate struct {
	Name      *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Statement *string    `json:"statement,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Delivery statuses.
const (
	DeliveryPending   = "PENDING"
	DeliveryDelivered = "DELIVERED"
	DeliveryGraded    = "GRADED"
)

type Delivery struct {
	ID          int64      `json:"id"`
	StudentID   int64      `json:"studentId"`
	ExerciseID  int64      `json:"exerciseId"`
	Status      string     `json:"status"`
	Grade       *float64   `json:"grade,omitempty"`
	Comments    string     `json:"comments,omitempty"`
	Files       []string   `json:"files,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

type DeliveryCreate struct {
	StudentID  int64    `json:"studentId" validate:"required,gt=0"`
	ExerciseID int64    `json:"exerciseId" validate:"required,gt=0"`
	Files      []string `json:"files,omitempty"`
	Comments   string   `json:"comments,omitempty" validate:"max=1000"`
}

type DeliveryUpdate struct {
	Status   *string  `json:"status,omitempty" validate:"omitempty,oneof=PENDING DELIVERED GRADED"`
	Grade    *float64 `json:"grade,omitempty" validate:"omitempty,grade"`
	Comments *string  `json:"comments,omitempty" validate:"omitempty,max=1000"`
	Files    []string `json:"files,omitempty"`
}

type Material struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

type MaterialCreate struct {
	Name string `json:"name" validate:"required,max=200"`
	URL  string `json:"url" validate:"required,url"`
	Type string `json:"type,omitempty" validate:"omitempty,oneof=DOCUMENT IMAGE VIDEO"`
}

type MaterialUpdate = MaterialCreate

// Payment statuses.
const (
	PaymentSuccess    = "SUCCESS"
	PaymentPending    = "PENDING"
	PaymentProcessing = "PROCESSING"
	PaymentError      = "ERROR"
	PaymentRefunded   = "REFUNDED"
)

type Payment struct {
	ID          int64      `json:"id"`
	StudentID   int64      `json:"studentId"`
	ClassID     int64      `json:"classId,omitempty"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency,omitempty"`
	Status      string     `json:"status"`
	Description string     `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

type PaymentCreate struct {
	StudentID   int64   `json:"studentId" validate:"required,gt=0"`
	ClassID     int64   `json:"classId,omitempty"`
	Amount      float64 `json:"amount" validate:"gt=0,price"`
	Currency    string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	Description string  `json:"description,omitempty" validate:"max=500"`
}

type PaymentUpdate struct {
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=SUCCESS PENDING PROCESSING ERROR REFUNDED"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// PaymentStatus is the reply of GET /api/pagos/{id}/status.
type PaymentStatus struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// EnrollmentRequest identifies a student/class pair.
type EnrollmentRequest struct {
	StudentID int64 `json:"studentId" validate:"required,gt=0"`
	ClassID   int64 `json:"classId" validate:"required,gt=0"`
}

type EnrollmentResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	StudentID int64  `json:"studentId"`
	ClassID   int64  `json:"classId"`
}

type EnrollmentStatus struct {
	StudentID int64 `json:"studentId"`
	ClassID   int64 `json:"classId"`
	Enrolled  bool  `json:"enrolled"`
}

// Count is the shape of the statistics total endpoints.
type Count struct {
	Total int64 `json:"total"`
}

// EnrollmentCounts splits students by enrollment.
type EnrollmentCounts struct {
	Enrolled    int64 `json:"enrolled"`
	NotEnrolled int64 `json:"notEnrolled"`
}

// EnabledCounts splits professors by account state.
type EnabledCounts struct {
	Enabled  int64 `json:"enabled"`
	Disabled int64 `json:"disabled"`
}
