package enum

// Transition names a user action that advances a quote's lifecycle
type Transition string

const (
	TransitionCallJ0Done         Transition = "call_j0_done"
	TransitionCallJ2Done         Transition = "call_j2_done"
	TransitionContactEstablished Transition = "contact_established"
	TransitionReminderJ2Sent     Transition = "reminder_j2_sent"
	TransitionEmailJ4Sent        Transition = "email_j4_sent"
	TransitionConvert            Transition = "convert"
	TransitionMarkLost           Transition = "mark_lost"
	TransitionSaveNotes          Transition = "save_notes"
)

func (t Transition) String() string {
	return string(t)
}
