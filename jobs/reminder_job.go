package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/emrekoc/pilates_studio/database"
	"github.com/emrekoc/pilates_studio/models"
	"github.com/emrekoc/pilates_studio/notifications"
	"github.com/emrekoc/pilates_studio/scheduling"
)

// SendClassReminders emails every confirmed member whose class starts
// within the next hour. Runs on a five minute tick, so the window is kept
// narrow to avoid double sends.
func SendClassReminders(catalog *scheduling.ClassCatalog, ledger *scheduling.BookingLedger) func() {
	return func() {
		log.Println("Running job: SendClassReminders...")

		now := time.Now()
		lowerBound := now.Add(55 * time.Minute)
		upperBound := now.Add(60 * time.Minute)

		for _, cls := range catalog.UpcomingClasses() {
			if cls.StartTime.Before(lowerBound) || cls.StartTime.After(upperBound) {
				continue
			}
			for _, booking := range ledger.GetBookingsByClass(cls.ID) {
				if booking.Status != scheduling.BookingConfirmed {
					continue
				}

				var member models.Member
				if err := database.DB.First(&member, "id = ?", booking.MemberID).Error; err != nil {
					log.Printf("🔥 Reminder skipped, member %s not found: %v", booking.MemberID, err)
					continue
				}

				emailBody := fmt.Sprintf(
					"<h1>Class Reminder</h1><p>Hi %s,</p><p>Your <b>%s</b> class starts at %s. See you at the studio!</p>",
					member.FirstName,
					cls.Title,
					cls.StartTime.Format(time.Kitchen),
				)
				go notifications.SendEmail(
					member.FirstName+" "+member.LastName,
					member.Email,
					"Reminder: Your Class Starts in 1 Hour!",
					emailBody,
				)
			}
		}
	}
}
