package jobs

import (
	"log"
	"time"

	"github.com/emrekoc/pilates_studio/scheduling"
)

// CloseOutEndedClasses marks confirmed bookings on classes that ended more
// than fifteen minutes ago as no-shows, then completes those classes. Staff
// check members in during class; whoever is still CONFIRMED after the grace
// window did not turn up.
func CloseOutEndedClasses(desk *scheduling.BookingDesk, catalog *scheduling.ClassCatalog, ledger *scheduling.BookingLedger) func() {
	return func() {
		log.Println("Running job: CloseOutEndedClasses...")

		ended := catalog.EndedClasses(15 * time.Minute)
		if len(ended) == 0 {
			return
		}

		classIDs := make([]string, 0, len(ended))
		for _, cls := range ended {
			classIDs = append(classIDs, cls.ID)
		}

		marked := 0
		for _, booking := range ledger.StaleConfirmed(classIDs) {
			if _, err := desk.MarkNoShow(booking.ID); err != nil {
				log.Printf("🔥 Failed to mark booking %s as no-show: %v", booking.ID, err)
				continue
			}
			marked++
		}

		completed := 0
		for _, cls := range ended {
			if err := catalog.Complete(cls.ID); err != nil {
				log.Printf("🔥 Failed to complete class %s: %v", cls.ID, err)
				continue
			}
			completed++
		}

		log.Printf("✅ Closed out %d class(es), marked %d booking(s) as no-show", completed, marked)
	}
}
