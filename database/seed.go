package database

import (
	"log"
	"time"

	"festival_manager/constants"
	"festival_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("festival-admin"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	accounts := []model.Account{
		{Name: "Administrator", Username: "admin", Email: "admin@festival.local", Password: hashPassword, Role: constants.ROLE_ADMIN, Active: true},
		{Name: "Gate Staff", Username: "gate", Email: "gate@festival.local", Password: hashPassword, Role: constants.ROLE_STAFF, Active: true},
	}
	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed account:", account.Username, "error:", err)
		}
	}

	festivals := []model.Festival{
		{Name: "Jazz Festival", Slug: "jazz-festival", Category: "jazz", Description: "Four days of jazz in the city centre",
			StartDate: parseDate("2026-07-24"), EndDate: parseDate("2026-07-27"), Price: 35.00, TicketAmount: 5000, Status: constants.FESTIVAL_UPCOMING},
		{Name: "Food Festival", Slug: "food-festival", Category: "food", Description: "Local restaurants and street food",
			StartDate: parseDate("2026-07-24"), EndDate: parseDate("2026-07-27"), Price: 25.00, TicketAmount: 8000, Status: constants.FESTIVAL_UPCOMING},
		{Name: "History Walking Tour", Slug: "history-walking-tour", Category: "history", Description: "Guided tours along the old town",
			StartDate: parseDate("2026-07-25"), EndDate: parseDate("2026-07-26"), Price: 12.50, TicketAmount: 400, Status: constants.FESTIVAL_UPCOMING},
		{Name: "Scavenger Hunt", Slug: "scavenger-hunt", Category: "game", Description: "City-wide puzzle hunt",
			StartDate: parseDate("2026-07-24"), EndDate: parseDate("2026-07-27"), Price: 7.50, TicketAmount: 2000, Status: constants.FESTIVAL_UPCOMING},
	}
	for i := range festivals {
		if err := db.Where(model.Festival{Slug: festivals[i].Slug}).FirstOrCreate(&festivals[i]).Error; err != nil {
			log.Println("failed to seed festival:", festivals[i].Name, "error:", err)
		}
	}

	var jazz model.Festival
	if err := db.Where("slug = ?", "jazz-festival").First(&jazz).Error; err != nil {
		log.Println("jazz festival missing, skipping performance seed:", err)
		return
	}

	performances := []model.JazzEvent{
		{FestivalId: jazz.ID, BandName: "The Midnight Quartet", PerformanceDay: 1, TicketPrice: 20.00,
			StartTime: parseDate("2026-07-24").Add(20 * time.Hour), EndTime: parseDate("2026-07-24").Add(22 * time.Hour), Status: constants.PERFORMANCE_SCHEDULED},
		{FestivalId: jazz.ID, BandName: "Blue Note Collective", PerformanceDay: 2, TicketPrice: 22.50,
			StartTime: parseDate("2026-07-25").Add(19 * time.Hour), EndTime: parseDate("2026-07-25").Add(21 * time.Hour), Status: constants.PERFORMANCE_SCHEDULED},
	}
	for _, p := range performances {
		if err := db.Where(model.JazzEvent{FestivalId: p.FestivalId, BandName: p.BandName}).FirstOrCreate(&p).Error; err != nil {
			log.Println("failed to seed performance:", p.BandName, "error:", err)
		}
	}
}
