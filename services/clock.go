package services

import (
	"time"

	"lodge-backend/utils"
)

// The front desk runs on lodge-local wall time regardless of where the
// server is deployed.
var lodgeTZ = loadLodgeTZ()

func loadLodgeTZ() *time.Location {
	name := utils.EnvOrDefault("LODGE_TZ", "Asia/Kolkata")
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

func lodgeDate(t time.Time) string {
	return t.In(lodgeTZ).Format("2006-01-02")
}

func lodgeClock(t time.Time) string {
	return t.In(lodgeTZ).Format("15:04")
}

func lodgeStamp(t time.Time) string {
	return t.In(lodgeTZ).Format("2006-01-02 15:04:05")
}

func validDate(s string) bool {
	_, err := time.ParseInLocation("2006-01-02", s, lodgeTZ)
	return err == nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, lodgeTZ)
}
