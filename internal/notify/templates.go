package notify

import (
	"fmt"

	"github.com/brookfield/admissions/internal/domain/application"
)

type template struct {
	subject string
	body    string
}

// Message templates per status. The %s placeholder receives the child's name.
var templates = map[application.Status]template{
	application.StatusSubmitted: {
		subject: "Application received",
		body:    "We have received the admissions application for %s. We will be in touch as it moves through review.",
	},
	application.StatusUnderReview: {
		subject: "Application under review",
		body:    "The application for %s is now under review by our admissions team.",
	},
	application.StatusInterviewPending: {
		subject: "Interview invitation",
		body:    "The application for %s has moved forward. Please sign in to the family portal to book an interview time.",
	},
	application.StatusInterviewScheduled: {
		subject: "Interview scheduled",
		body:    "An interview has been scheduled for %s. The date and time are shown in the family portal.",
	},
	application.StatusAdmitted: {
		subject: "Admissions decision",
		body:    "Congratulations! We are delighted to offer %s a place. Details are available in the family portal.",
	},
	application.StatusWaitlist: {
		subject: "Admissions decision",
		body:    "The application for %s has been placed on our waitlist. We will contact you if a place opens.",
	},
	application.StatusRejected: {
		subject: "Admissions decision",
		body:    "After careful consideration, we are unable to offer %s a place this year.",
	},
	application.StatusDeclined: {
		subject: "Offer declined",
		body:    "We have recorded that the offer for %s was declined. Thank you for considering us.",
	},
	application.StatusWithdrawn: {
		subject: "Application withdrawn",
		body:    "The application for %s has been withdrawn. You are welcome to apply again in a future cycle.",
	},
}

// Render produces the subject and body for a status message.
func Render(app *application.Application, status application.Status) (subject, body string) {
	tmpl, ok := templates[status]
	if !ok {
		return "Application update", fmt.Sprintf("The application for %s has been updated.", app.ChildName)
	}
	return tmpl.subject, fmt.Sprintf(tmpl.body, app.ChildName)
}
