package lifecycle

import (
	"slices"
	"time"

	"github.com/nikolayk812/foodfleet/internal/domain"
)

type Step struct {
	Status domain.OrderStatus
	Label  string
}

var steps = []Step{
	{Status: domain.OrderStatusConfirmed, Label: "Order Confirmed"},
	{Status: domain.OrderStatusPreparing, Label: "Preparing Food"},
	{Status: domain.OrderStatusOutForDelivery, Label: "Out for Delivery"},
	{Status: domain.OrderStatusDelivered, Label: "Delivered"},
}

// Steps is the delivery progress track shown to the customer.
func Steps() []Step {
	return slices.Clone(steps)
}

// ProgressIndex is the position of status on the progress track, or -1 when the
// order is not on it (still pending, or cancelled/failed).
func ProgressIndex(status domain.OrderStatus) int {
	return slices.IndexFunc(steps, func(s Step) bool {
		return s.Status == status
	})
}

type StepView struct {
	Step
	Reached bool
	// At is when the step was entered; zero if it was not.
	At      time.Time
	Current bool
}

// View is everything a renderer needs to draw the tracker without knowing the
// status set: when Failure is set the track should be replaced by a failure
// notice, and Current is -1 while the order waits for confirmation.
type View struct {
	Status   domain.OrderStatus
	Steps    []StepView
	Current  int
	Terminal bool
	Failure  bool
}

func Progress(order domain.Order) View {
	current := ProgressIndex(order.Status)

	views := make([]StepView, len(steps))
	for i, s := range steps {
		views[i] = StepView{
			Step:    s,
			Reached: current >= 0 && i <= current,
			Current: i == current,
		}

		for _, change := range order.History {
			if change.Status == s.Status {
				views[i].At = change.At
				break
			}
		}
	}

	return View{
		Status:   order.Status,
		Steps:    views,
		Current:  current,
		Terminal: IsTerminal(order.Status),
		Failure:  IsFailure(order.Status),
	}
}
