package mailer

// NoticeKind names the notification being sent.
type NoticeKind string

const (
	// KindEmailChanged is sent to the previous address when a user changes
	// the email on their account.
	KindEmailChanged NoticeKind = "email_changed"
)

// NotificationJob is the JSON payload put on the RabbitMQ queue for the
// notify worker.
type NotificationJob struct {
	To       string     `json:"to"`
	Kind     NoticeKind `json:"kind"`
	UserID   string     `json:"user_id"`
	NewEmail string     `json:"new_email,omitempty"`
}
