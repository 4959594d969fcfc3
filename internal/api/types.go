package api

import (
	"time"

	"github.com/codeorbit/codeorbit-client/internal/session"
)

// Internship is a published internship offering.
type Internship struct {
	ID          string `json:"_id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Domain      string `json:"domain" yaml:"domain"`
	Duration    string `json:"duration" yaml:"duration"`
	Mode        string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Price       int    `json:"price" yaml:"price"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ContactMessage is the public contact form.
type ContactMessage struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Message string `json:"message" yaml:"message" validate:"notblank"`
}

// Registration creates a student account.
type Registration struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
	Phone    string `json:"phone,omitempty"`
	College  string `json:"college,omitempty"`
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
	StatusCompleted ApplicationStatus = "completed"
)

// Valid reports whether s is a status the backend accepts.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Application is a student's internship application.
type Application struct {
	ID            string            `json:"_id,omitempty" yaml:"id"`
	InternshipID  string            `json:"internshipId" yaml:"internship_id" validate:"notblank"`
	Internship    string            `json:"internshipTitle,omitempty" yaml:"internship,omitempty"`
	Name          string            `json:"name" yaml:"name" validate:"notblank"`
	Email         string            `json:"email" yaml:"email" validate:"required,email"`
	Phone         string            `json:"phone,omitempty" yaml:"phone,omitempty"`
	College       string            `json:"college,omitempty" yaml:"college,omitempty"`
	Year          string            `json:"year,omitempty" yaml:"year,omitempty"`
	ResumeURL     string            `json:"resumeUrl,omitempty" yaml:"resume_url,omitempty" validate:"omitempty,url"`
	CouponCode    string            `json:"couponCode,omitempty" yaml:"coupon_code,omitempty"`
	Status        ApplicationStatus `json:"status,omitempty" yaml:"status"`
	PaymentStatus string            `json:"paymentStatus,omitempty" yaml:"payment_status,omitempty"`
	CreatedAt     time.Time         `json:"createdAt,omitempty" yaml:"created_at"`
}

// ApplicationFilter narrows the admin application list.
type ApplicationFilter struct {
	Status ApplicationStatus
	Search string
	Page   int
	Limit  int
}

// CouponQuote is the backend's price for an internship after a coupon.
type CouponQuote struct {
	Valid           bool   `json:"valid" yaml:"valid"`
	Code            string `json:"code" yaml:"code"`
	DiscountPercent int    `json:"discountPercent" yaml:"discount_percent"`
	OriginalPrice   int    `json:"originalPrice" yaml:"original_price"`
	FinalPrice      int    `json:"finalPrice" yaml:"final_price"`
	Message         string `json:"message,omitempty" yaml:"message,omitempty"`
}

type couponCheck struct {
	Code         string `json:"code" validate:"notblank"`
	InternshipID string `json:"internshipId" validate:"notblank"`
}

// Coupon is an admin-managed discount code.
type Coupon struct {
	ID              string     `json:"_id,omitempty" yaml:"id"`
	Code            string     `json:"code" yaml:"code" validate:"notblank"`
	DiscountPercent int        `json:"discountPercent" yaml:"discount_percent" validate:"min=1,max=100"`
	MaxUses         int        `json:"maxUses,omitempty" yaml:"max_uses,omitempty" validate:"min=0"`
	UsedCount       int        `json:"usedCount,omitempty" yaml:"used_count"`
	Active          bool       `json:"active" yaml:"active"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty" yaml:"expires_at,omitempty"`
}

// Task is an assignment attached to an approved application.
type Task struct {
	ID          string    `json:"_id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate     time.Time `json:"dueDate,omitempty" yaml:"due_date"`
	Submitted   bool      `json:"submitted" yaml:"submitted"`
}

// TaskSubmission is a student's answer to a Task.
type TaskSubmission struct {
	TaskID string `json:"taskId" validate:"notblank"`
	Link   string `json:"link" validate:"required,url"`
	Notes  string `json:"notes,omitempty"`
}

// DocumentKind names a document the backend can render for an application.
type DocumentKind string

const (
	DocumentOfferLetter DocumentKind = "offer-letter"
	DocumentCertificate DocumentKind = "certificate"
	DocumentCompletion  DocumentKind = "completion-letter"
)

// Dashboard is the student landing view.
type Dashboard struct {
	User         session.User  `json:"user" yaml:"user"`
	Applications []Application `json:"applications" yaml:"applications"`
	Tasks        []Task        `json:"tasks" yaml:"tasks"`
}

// User is an account as seen by admins.
type User struct {
	session.User `yaml:",inline"`
	Phone        string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty" yaml:"created_at"`
}

// Message is a contact form submission in the admin inbox.
type Message struct {
	ID             string `json:"_id" yaml:"id"`
	ContactMessage `yaml:",inline"`
	Read           bool      `json:"read" yaml:"read"`
	CreatedAt      time.Time `json:"createdAt,omitempty" yaml:"created_at"`
}

// AuditLog records an admin action.
type AuditLog struct {
	ID        string    `json:"_id" yaml:"id"`
	Actor     string    `json:"actor" yaml:"actor"`
	Action    string    `json:"action" yaml:"action"`
	Target    string    `json:"target,omitempty" yaml:"target,omitempty"`
	Details   string    `json:"details,omitempty" yaml:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// AuditFilter narrows the audit log.
type AuditFilter struct {
	Actor  string
	Action string
	Since  time.Time
	Page   int
	Limit  int
}

// Page is a server-side paginated list.
type Page[T any] struct {
	Items []T `json:"items" yaml:"items"`
	Total int `json:"total" yaml:"total"`
	Page  int `json:"page" yaml:"page"`
	Limit int `json:"limit" yaml:"limit"`
}

// Program groups courses. Programs contain courses, courses contain modules,
// modules contain lessons and lessons contain activities.
type Program struct {
	ID          string   `json:"_id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Courses     []Course `json:"courses,omitempty" yaml:"courses,omitempty"`
}

type Course struct {
	ID        string         `json:"_id" yaml:"id"`
	ProgramID string         `json:"programId,omitempty" yaml:"program_id,omitempty"`
	Title     string         `json:"title" yaml:"title"`
	Modules   []CourseModule `json:"modules,omitempty" yaml:"modules,omitempty"`
}

// CourseModule is a chapter of a course.
type CourseModule struct {
	ID      string   `json:"_id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Lessons []Lesson `json:"lessons,omitempty" yaml:"lessons,omitempty"`
}

type Lesson struct {
	ID         string     `json:"_id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	Content    string     `json:"content,omitempty" yaml:"content,omitempty"`
	Activities []Activity `json:"activities,omitempty" yaml:"activities,omitempty"`
}

// ActivityType is the kind of a lesson activity.
type ActivityType string

const (
	ActivityVideo      ActivityType = "video"
	ActivityReading    ActivityType = "reading"
	ActivityQuiz       ActivityType = "quiz"
	ActivityAssignment ActivityType = "assignment"
)

type Activity struct {
	ID        string       `json:"_id" yaml:"id"`
	Type      ActivityType `json:"type" yaml:"type"`
	Title     string       `json:"title" yaml:"title"`
	Completed bool         `json:"completed" yaml:"completed"`
	Questions []Question   `json:"questions,omitempty" yaml:"questions,omitempty"`
}

// Question is a multiple-choice quiz question. Correct answers stay server-side.
type Question struct {
	ID      string   `json:"_id" yaml:"id"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []string `json:"options" yaml:"options"`
}

// QuizAnswer selects an option index for a question.
type QuizAnswer struct {
	QuestionID string `json:"questionId"`
	Option     int    `json:"option"`
}

type QuizResult struct {
	Score  int  `json:"score" yaml:"score"`
	Total  int  `json:"total" yaml:"total"`
	Passed bool `json:"passed" yaml:"passed"`
}

// Progress is a student's completion of a course.
type Progress struct {
	CourseID            string   `json:"courseId" yaml:"course_id"`
	CompletedActivities []string `json:"completedActivities" yaml:"completed_activities"`
	TotalActivities     int      `json:"totalActivities" yaml:"total_activities"`
	Percent             float64  `json:"percent" yaml:"percent"`
}
