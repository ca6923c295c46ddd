package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stitchtees/storefront-api/cache"
	"github.com/stitchtees/storefront-api/models"
	"github.com/stitchtees/storefront-api/routes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	log.Println("starting storefront api...")

	// Load environment variables
	_ = godotenv.Load()

	db := initDatabase()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.FlashDeal{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("automigrate failed: %v", err)
	}

	catalog := cache.NewCatalogFromEnv()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Session-Id"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, catalog)

	// Deactivate finished flash deals at 2 AM daily
	go startDailyDealCleanup(db, 2, 0)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM MySQL connection from the environment.
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("db connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbname,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(10)

	return db
}

// startDailyDealCleanup flips is_active off on flash deals whose window has
// fully passed, once a day at the given local time.
func startDailyDealCleanup(db *gorm.DB, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("next flash deal cleanup scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		res := db.Model(&models.FlashDeal{}).
			Where("is_active = ? AND end_time < ?", true, time.Now()).
			Update("is_active", false)
		if res.Error != nil {
			log.Printf("flash deal cleanup failed: %v", res.Error)
		} else if res.RowsAffected > 0 {
			log.Printf("deactivated %d finished flash deals", res.RowsAffected)
		}
	}
}
