package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"lodge-backend/domain"
	"lodge-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// roomGrid is the lodge's physical layout: ground floor 1-5, first floor
// 13-20 and 23-27, second floor 200-228.
func roomGrid() []string {
	var numbers []string
	for i := 1; i <= 5; i++ {
		numbers = append(numbers, strconv.Itoa(i))
	}
	for i := 13; i <= 20; i++ {
		numbers = append(numbers, strconv.Itoa(i))
	}
	for i := 23; i <= 27; i++ {
		numbers = append(numbers, strconv.Itoa(i))
	}
	for i := 200; i <= 228; i++ {
		numbers = append(numbers, strconv.Itoa(i))
	}
	return numbers
}

// SeedDatabase creates the room grid, the default admin and the lodge
// settings row on first boot. Re-running is a no-op.
func SeedDatabase() {
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		numbers := roomGrid()
		rooms := make([]models.Room, 0, len(numbers))
		for _, n := range numbers {
			rooms = append(rooms, models.Room{
				RoomNumber: n,
				Status:     models.RoomVacant,
				Floor:      domain.Floor(n),
			})
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Printf("✅ Seeded %d rooms", len(rooms))
		}
	}

	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Front Desk",
				Username: "admin@lodge.local",
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("✅ Default admin seeded")
			}
		}
	}

	var settingCount int64
	DB.Model(&models.LodgeSetting{}).Count(&settingCount)
	if settingCount == 0 {
		if err := DB.Create(&models.LodgeSetting{Name: "Lodge"}).Error; err != nil {
			log.Printf("warning: failed to seed lodge settings: %v", err)
		}
	}
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "lodge_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	// Parent tables before children.
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.LodgeSetting{},
		&models.Room{},
		&models.OccupancyEpisode{},
		&models.LedgerEntry{},
		&models.Booking{},
		&models.Settlement{},
		&models.SettlementPayment{},
		&models.RoomShift{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
