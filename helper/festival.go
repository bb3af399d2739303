package helper

import (
	"fmt"
	"log"
	"time"

	"festival_manager/constants"
	"festival_manager/database"
	"festival_manager/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/gosimple/slug"
	"github.com/robfig/cron/v3"
)

// UniqueFestivalSlug derives a slug from the name, suffixing on collision.
func UniqueFestivalSlug(name string, excludeId *uint) string {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		query := database.DB.Model(&model.Festival{}).Where("slug = ?", candidate)
		if excludeId != nil {
			query = query.Where("id != ?", *excludeId)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil || count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

var festivalScheduler gocron.Scheduler

// AutoUpdateFestivalStatus rolls festival status with the calendar:
// UPCOMING -> RUNNING on the start date, RUNNING -> ENDED past the end date.
func AutoUpdateFestivalStatus() {
	log.Println("[CRON] AutoUpdateFestivalStatus triggered")

	db := database.DB
	today := time.Now().Truncate(24 * time.Hour)

	var festivals []model.Festival
	if err := db.Find(&festivals).Error; err != nil {
		log.Printf("Failed to scan festivals: %v", err)
		return
	}

	for _, f := range festivals {
		updated := false
		start := f.StartDate.Truncate(24 * time.Hour)
		end := f.EndDate.Truncate(24 * time.Hour)

		if !today.Before(start) && f.Status == constants.FESTIVAL_UPCOMING {
			f.Status = constants.FESTIVAL_RUNNING
			updated = true
		}
		if today.After(end) && f.Status == constants.FESTIVAL_RUNNING {
			f.Status = constants.FESTIVAL_ENDED
			updated = true
		}

		if updated {
			if err := db.Save(&f).Error; err != nil {
				log.Printf("Failed to update festival %q status: %v", f.Name, err)
			} else {
				log.Printf("Festival %q -> %s", f.Name, f.Status)
			}
		}
	}
}

func StartFestivalStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}
	festivalScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(AutoUpdateFestivalStatus),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Festival status scheduler started (daily 00:05)")
}

func StopFestivalStatusScheduler() {
	if festivalScheduler != nil {
		_ = festivalScheduler.Shutdown()
	}
}

var performanceSweeper *cron.Cron

// StartPerformanceSweeper marks finished jazz performances every 5 minutes so
// the catalog listings stay accurate without touching the request path.
func StartPerformanceSweeper() {
	performanceSweeper = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := performanceSweeper.AddFunc("*/5 * * * *", sweepFinishedPerformances)
	if err != nil {
		log.Printf("Failed to start performance sweeper: %v", err)
		return
	}

	performanceSweeper.Start()
	log.Println("Performance sweeper started (every 5 minutes)")
}

func sweepFinishedPerformances() {
	now := time.Now()
	result := database.DB.Model(&model.JazzEvent{}).
		Where("status = ? AND end_time < ?", constants.PERFORMANCE_SCHEDULED, now).
		Update("status", constants.PERFORMANCE_FINISHED)

	if result.Error != nil {
		log.Printf("Failed to sweep performances: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Marked %d performances as finished", result.RowsAffected)
	}
}

func StopPerformanceSweeper() {
	if performanceSweeper != nil {
		performanceSweeper.Stop()
	}
}
